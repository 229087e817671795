package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strconv"
	"time"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

const uploadTimeLayout = "20060102_150405"

// ProjectFiles lays uploads out as projects/{id}/{kind}/{timestamp}_{name}.
type ProjectFiles struct {
	disk Disk
	now  func() time.Time
}

func NewProjectFiles(disk Disk) *ProjectFiles {
	return &ProjectFiles{disk: disk, now: time.Now}
}

var _ ports.ProjectFiles = (*ProjectFiles)(nil)

func (f *ProjectFiles) CreateProjectDirs(ctx context.Context, projectID int64) error {
	for _, kind := range domain.FileKinds {
		if err := f.disk.MakeDirectory(ctx, kindDir(projectID, kind)); err != nil {
			return err
		}
	}
	return nil
}

func (f *ProjectFiles) DeleteProjectFiles(ctx context.Context, projectID int64) error {
	return f.disk.DeleteDirectory(ctx, projectDir(projectID))
}

func (f *ProjectFiles) SaveFile(ctx context.Context, projectID int64, kind domain.FileKind, name string, content io.Reader) (string, error) {
	base := path.Base("/" + name)
	if base == "/" || base == "." {
		return "", fmt.Errorf("save file: %w", domain.ErrInvalidFileType)
	}
	p := UploadPath(projectID, kind, base, f.now())
	if err := f.disk.Put(ctx, p, content); err != nil {
		return "", err
	}
	return p, nil
}

func (f *ProjectFiles) ListFiles(ctx context.Context, projectID int64, kind domain.FileKind) ([]string, error) {
	return f.disk.Files(ctx, kindDir(projectID, kind))
}

func (f *ProjectFiles) ReadFile(ctx context.Context, projectID int64, kind domain.FileKind, name string) ([]byte, error) {
	p, err := storedPath(projectID, kind, name)
	if err != nil {
		return nil, err
	}
	data, err := f.disk.Get(ctx, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("file %s: %w", name, domain.ErrNotFound)
	}
	return data, err
}

func (f *ProjectFiles) DeleteFile(ctx context.Context, projectID int64, kind domain.FileKind, name string) error {
	p, err := storedPath(projectID, kind, name)
	if err != nil {
		return err
	}
	ok, err := f.disk.Exists(ctx, p)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("file %s: %w", name, domain.ErrNotFound)
	}
	return f.disk.Delete(ctx, p)
}

// UploadPath is where an upload named name lands at time ts.
func UploadPath(projectID int64, kind domain.FileKind, name string, ts time.Time) string {
	return path.Join(kindDir(projectID, kind), ts.Format(uploadTimeLayout)+"_"+name)
}

// storedPath resolves a stored base name. Names with directory parts never
// match a stored file.
func storedPath(projectID int64, kind domain.FileKind, name string) (string, error) {
	if name == "" || path.Base("/"+name) != name {
		return "", fmt.Errorf("file %q: %w", name, domain.ErrNotFound)
	}
	return path.Join(kindDir(projectID, kind), name), nil
}

func projectDir(projectID int64) string {
	return path.Join("projects", strconv.FormatInt(projectID, 10))
}

func kindDir(projectID int64, kind domain.FileKind) string {
	return path.Join(projectDir(projectID), kind.Dir())
}
