package ports

import (
	"context"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
)

type AuthService interface {
	RegisterDesigner(ctx context.Context, name, email, password string) (*domain.User, error)
	// RegisterClient returns the plaintext access code. It is shown once to
	// the designer, who relays it to the client.
	RegisterClient(ctx context.Context, name, email string) (*domain.User, string, error)
	LoginDesigner(ctx context.Context, email, password string) (*domain.Session, error)
	LoginClient(ctx context.Context, email, code string) (*domain.Session, error)
}
