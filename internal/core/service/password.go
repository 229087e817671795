package service

import (
	"strconv"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
)

// bcrypt ignores input past 72 bytes.
const maxPasswordBytes = 72

// PasswordPolicy is the minimum strength a designer password must meet.
type PasswordPolicy struct {
	MinLength     int
	RequireUpper  bool
	RequireLower  bool
	RequireDigit  bool
	RequireSymbol bool
}

// DefaultPasswordPolicy accepts "Password1!" and rejects "password".
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: 8, RequireUpper: true, RequireLower: true, RequireDigit: true}
}

// Check returns a *domain.PasswordPolicyError naming every failed rule.
func (p PasswordPolicy) Check(password string) error {
	var upper, lower, digit, symbol bool
	runes := 0
	for _, r := range password {
		runes++
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}

	var failed []string
	if runes < p.MinLength {
		failed = append(failed, "at least "+strconv.Itoa(p.MinLength)+" characters")
	}
	if len(password) > maxPasswordBytes {
		failed = append(failed, "at most 72 bytes")
	}
	if p.RequireUpper && !upper {
		failed = append(failed, "an uppercase letter")
	}
	if p.RequireLower && !lower {
		failed = append(failed, "a lowercase letter")
	}
	if p.RequireDigit && !digit {
		failed = append(failed, "a digit")
	}
	if p.RequireSymbol && !symbol {
		failed = append(failed, "a symbol")
	}
	if len(failed) > 0 {
		return &domain.PasswordPolicyError{Failed: failed}
	}
	return nil
}

// PasswordHasher wraps bcrypt with a fixed cost. Every Hash call draws a
// fresh salt.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compares in constant time.
func (h *PasswordHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
