package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// localDisk stores files below an absolute root directory.
type localDisk struct {
	root string
}

func newLocalDisk(root string) (*localDisk, error) {
	if root == "" {
		root = "uploads"
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage/local: root %s: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage/local: mkdir root: %w", err)
	}
	return &localDisk{root: abs}, nil
}

// abs resolves p under the root. Cleaning against "/" keeps ".." from
// escaping it.
func (d *localDisk) abs(p string) string {
	clean := path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	return filepath.Join(d.root, filepath.FromSlash(clean))
}

// Put removes a partially written file when the copy or the close fails.
func (d *localDisk) Put(_ context.Context, p string, r io.Reader) (err error) {
	full := d.abs(p)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", p, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("storage/local: close %s: %w", p, cerr)
		}
		if err != nil {
			_ = os.Remove(full)
		}
	}()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", p, err)
	}
	return nil
}

func (d *localDisk) Get(_ context.Context, p string) ([]byte, error) {
	data, err := os.ReadFile(d.abs(p))
	if err != nil {
		return nil, fmt.Errorf("storage/local: get %s: %w", p, err)
	}
	return data, nil
}

func (d *localDisk) Exists(_ context.Context, p string) (bool, error) {
	info, err := os.Stat(d.abs(p))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("storage/local: stat %s: %w", p, err)
	}
	return !info.IsDir(), nil
}

func (d *localDisk) Delete(_ context.Context, p string) error {
	err := os.Remove(d.abs(p))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage/local: delete %s: %w", p, err)
	}
	return nil
}

func (d *localDisk) Files(_ context.Context, directory string) ([]string, error) {
	entries, err := os.ReadDir(d.abs(directory))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage/local: files %s: %w", directory, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, path.Join(directory, e.Name()))
		}
	}
	return out, nil
}

func (d *localDisk) MakeDirectory(_ context.Context, p string) error {
	if err := os.MkdirAll(d.abs(p), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir %s: %w", p, err)
	}
	return nil
}

func (d *localDisk) DeleteDirectory(_ context.Context, p string) error {
	if err := os.RemoveAll(d.abs(p)); err != nil {
		return fmt.Errorf("storage/local: rmdir %s: %w", p, err)
	}
	return nil
}
