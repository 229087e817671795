// Package storage keeps project uploads on a local directory or an
// S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Disk is the filesystem driver interface. Paths are slash separated and
// relative to the disk root. Get on a missing file returns an error
// wrapping fs.ErrNotExist.
type Disk interface {
	Put(ctx context.Context, path string, r io.Reader) error
	Get(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
	// Delete removes a file. A missing file is not an error.
	Delete(ctx context.Context, path string) error
	// Files lists the files directly inside directory.
	Files(ctx context.Context, directory string) ([]string, error)
	MakeDirectory(ctx context.Context, path string) error
	// DeleteDirectory removes directory and everything below it.
	DeleteDirectory(ctx context.Context, path string) error
}

// Config selects and configures the disk driver.
type Config struct {
	Driver    string
	LocalRoot string

	S3Bucket   string
	S3Region   string
	S3Endpoint string
	S3Key      string
	S3Secret   string
}

// New opens the disk named by cfg.Driver. An empty driver means local.
func New(cfg Config) (Disk, error) {
	switch cfg.Driver {
	case "", DriverLocal:
		return newLocalDisk(cfg.LocalRoot)
	case DriverS3:
		return newS3Disk(context.Background(), cfg)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
