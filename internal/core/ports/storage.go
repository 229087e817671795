package ports

import (
	"context"
	"io"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
)

// ProjectFiles manages the upload area of a project. Files are addressed by
// the base name SaveFile stored them under.
type ProjectFiles interface {
	CreateProjectDirs(ctx context.Context, projectID int64) error
	DeleteProjectFiles(ctx context.Context, projectID int64) error
	// SaveFile stores content and returns its path relative to the upload root.
	SaveFile(ctx context.Context, projectID int64, kind domain.FileKind, name string, content io.Reader) (string, error)
	ListFiles(ctx context.Context, projectID int64, kind domain.FileKind) ([]string, error)
	// ReadFile and DeleteFile return domain.ErrNotFound for a missing file.
	ReadFile(ctx context.Context, projectID int64, kind domain.FileKind, name string) ([]byte, error)
	DeleteFile(ctx context.Context, projectID int64, kind domain.FileKind, name string) error
}

// BudgetRenderer renders a printable budget statement.
type BudgetRenderer interface {
	RenderBudget(project *domain.Project, report *BudgetReport) ([]byte, error)
}
