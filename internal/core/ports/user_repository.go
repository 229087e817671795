package ports

import (
	"context"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
)

// UserRepository defines persistence for designers and clients. Lookups
// return domain.ErrNotFound when no row matches.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByEmailAndRole(ctx context.Context, email, role string) (*domain.User, error)
	FindClientByCode(ctx context.Context, email, code string) (*domain.User, error)
	ClientCodeExists(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
