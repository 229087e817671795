package ports

import (
	"context"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
)

// AuditRepository stores the authentication audit trail.
type AuditRepository interface {
	InsertAuthEvent(ctx context.Context, event *domain.AuthEvent) error
}
