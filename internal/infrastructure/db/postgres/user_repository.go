package postgres

import (
	"context"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

const usersTable = "users"

// UserRepository implements ports.UserRepository on the gateway.
type UserRepository struct {
	gw *Gateway
}

func NewUserRepository(gw *Gateway) ports.UserRepository {
	return &UserRepository{gw: gw}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, Predicate{"email": email})
}

func (r *UserRepository) FindByEmailAndRole(ctx context.Context, email, role string) (*domain.User, error) {
	return r.findOne(ctx, Predicate{"email": email, "role": role})
}

// FindClientByCode matches the code with text equality, so case matters.
func (r *UserRepository) FindClientByCode(ctx context.Context, email, code string) (*domain.User, error) {
	return r.findOne(ctx, Predicate{"email": email, "client_code": code, "role": domain.RoleClient})
}

func (r *UserRepository) ClientCodeExists(ctx context.Context, code string) (bool, error) {
	rows, err := r.gw.Find(ctx, usersTable, Predicate{"client_code": code})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	fields := Fields{
		"name":          user.Name,
		"email":         user.Email,
		"role":          user.Role,
		"password_hash": nullable(user.PasswordHash),
		"client_code":   nullable(user.ClientCode),
	}
	if !user.CreatedAt.IsZero() {
		fields["created_at"] = user.CreatedAt
	}

	id, err := r.gw.Insert(ctx, usersTable, fields)
	if err != nil {
		return nil, err
	}

	created := *user
	created.ID = id
	return &created, nil
}

func (r *UserRepository) findOne(ctx context.Context, where Predicate) (*domain.User, error) {
	row, err := r.gw.FindOne(ctx, usersTable, where)
	if err != nil {
		return nil, err
	}
	return userFromRow(row), nil
}

func userFromRow(row Row) *domain.User {
	return &domain.User{
		ID:           row.Int64("id"),
		Name:         row.String("name"),
		Email:        row.String("email"),
		PasswordHash: row.String("password_hash"),
		Role:         row.String("role"),
		ClientCode:   row.String("client_code"),
		CreatedAt:    row.Time("created_at"),
	}
}

// nullable maps the empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
