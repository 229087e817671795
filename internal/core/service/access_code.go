package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
)

const (
	DefaultCodeLength      = 6
	DefaultCodeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultCodeMaxAttempts = 32
)

// CodeConfig controls client access code allocation.
//
// With the defaults there are 36^6 (about 2.18e9) codes. When n codes are
// already issued each attempt collides with probability n/36^6, so 32
// consecutive collisions are practically impossible for any realistic
// client count; hitting the cap means the store is misbehaving.
type CodeConfig struct {
	Length      int
	Alphabet    string
	MaxAttempts int
}

// CodeExistsFunc reports whether a code is already issued.
type CodeExistsFunc func(ctx context.Context, code string) (bool, error)

// CodeGenerator draws codes uniformly from the alphabet and retries until
// one is not yet issued.
type CodeGenerator struct {
	cfg    CodeConfig
	exists CodeExistsFunc
	random io.Reader
}

func NewCodeGenerator(cfg CodeConfig, exists CodeExistsFunc) *CodeGenerator {
	if cfg.Length <= 0 {
		cfg.Length = DefaultCodeLength
	}
	if cfg.Alphabet == "" {
		cfg.Alphabet = DefaultCodeAlphabet
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultCodeMaxAttempts
	}
	return &CodeGenerator{cfg: cfg, exists: exists, random: rand.Reader}
}

// Generate returns a code absent from the store, or domain.ErrCodeAllocation
// after MaxAttempts collisions.
func (g *CodeGenerator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < g.cfg.MaxAttempts; attempt++ {
		code, err := g.candidate()
		if err != nil {
			return "", fmt.Errorf("generate access code: %w", err)
		}
		taken, err := g.exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", domain.ErrCodeAllocation, g.cfg.MaxAttempts)
}

func (g *CodeGenerator) candidate() (string, error) {
	alphabet := []rune(g.cfg.Alphabet)
	max := big.NewInt(int64(len(alphabet)))
	out := make([]rune, g.cfg.Length)
	for i := range out {
		n, err := rand.Int(g.random, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
