package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
)

func TestNew_Drivers(t *testing.T) {
	disk, err := New(Config{LocalRoot: t.TempDir()})
	require.NoError(t, err)
	require.IsType(t, &localDisk{}, disk)

	_, err = New(Config{Driver: DriverS3})
	require.ErrorContains(t, err, "S3_BUCKET")

	_, err = New(Config{Driver: "ftp"})
	require.Error(t, err)
}

func TestLocalDisk_RoundTrip(t *testing.T) {
	disk, err := newLocalDisk(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, disk.Put(ctx, "a/b/c.txt", strings.NewReader("hello")))
	ok, err := disk.Exists(ctx, "a/b/c.txt")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = disk.Exists(ctx, "a/b")
	require.NoError(t, err)
	require.False(t, ok, "directories are not files")

	data, err := disk.Get(ctx, "a/b/c.txt")
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	files, err := disk.Files(ctx, "a/b")
	require.NoError(t, err)
	require.Equal(t, []string{"a/b/c.txt"}, files)

	require.NoError(t, disk.Delete(ctx, "a/b/c.txt"))
	require.NoError(t, disk.Delete(ctx, "a/b/c.txt"))
	_, err = disk.Get(ctx, "a/b/c.txt")
	require.ErrorIs(t, err, fs.ErrNotExist)

	files, err = disk.Files(ctx, "missing")
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestLocalDisk_FailedWriteLeavesNoFile(t *testing.T) {
	root := t.TempDir()
	disk, err := newLocalDisk(root)
	require.NoError(t, err)

	boom := errors.New("connection reset")
	err = disk.Put(context.Background(), "p/half.png", iotest.ErrReader(boom))
	require.ErrorIs(t, err, boom)

	_, err = os.Stat(filepath.Join(root, "p", "half.png"))
	require.True(t, os.IsNotExist(err))
}

func TestLocalDisk_StaysUnderRoot(t *testing.T) {
	root := t.TempDir()
	disk, err := newLocalDisk(filepath.Join(root, "uploads"))
	require.NoError(t, err)

	require.NoError(t, disk.Put(context.Background(), "../../escape.txt", strings.NewReader("x")))
	_, err = os.Stat(filepath.Join(root, "uploads", "escape.txt"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "escape.txt"))
	require.True(t, os.IsNotExist(err))
}

func TestProjectFiles(t *testing.T) {
	root := t.TempDir()
	disk, err := newLocalDisk(root)
	require.NoError(t, err)
	files := NewProjectFiles(disk)
	files.now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 15, 0, time.UTC) }
	ctx := context.Background()

	require.NoError(t, files.CreateProjectDirs(ctx, 7))
	for _, dir := range []string{"reference", "drawings", "gallery", "whiteboard"} {
		info, err := os.Stat(filepath.Join(root, "projects", "7", dir))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}

	p, err := files.SaveFile(ctx, 7, domain.FileKindDrawing, "../plan.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	require.Equal(t, "projects/7/drawings/20260301_093015_plan.pdf", p)

	listed, err := files.ListFiles(ctx, 7, domain.FileKindDrawing)
	require.NoError(t, err)
	require.Equal(t, []string{p}, listed)

	require.NoError(t, files.DeleteProjectFiles(ctx, 7))
	_, err = os.Stat(filepath.Join(root, "projects", "7"))
	require.True(t, os.IsNotExist(err))
}

func TestProjectFiles_ReadAndDelete(t *testing.T) {
	disk, err := newLocalDisk(t.TempDir())
	require.NoError(t, err)
	files := NewProjectFiles(disk)
	files.now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 15, 0, time.UTC) }
	ctx := context.Background()

	_, err = files.SaveFile(ctx, 7, domain.FileKindGallery, "after.jpg", strings.NewReader("jpeg"))
	require.NoError(t, err)
	name := "20260301_093015_after.jpg"

	data, err := files.ReadFile(ctx, 7, domain.FileKindGallery, name)
	require.NoError(t, err)
	require.Equal(t, "jpeg", string(data))

	_, err = files.ReadFile(ctx, 7, domain.FileKindReference, name)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = files.ReadFile(ctx, 8, domain.FileKindGallery, name)
	require.ErrorIs(t, err, domain.ErrNotFound)
	for _, bad := range []string{"", "../7/gallery/" + name, "gallery/" + name} {
		_, err = files.ReadFile(ctx, 7, domain.FileKindGallery, bad)
		require.ErrorIs(t, err, domain.ErrNotFound, bad)
	}

	require.NoError(t, files.DeleteFile(ctx, 7, domain.FileKindGallery, name))
	require.ErrorIs(t, files.DeleteFile(ctx, 7, domain.FileKindGallery, name), domain.ErrNotFound)
	_, err = files.ReadFile(ctx, 7, domain.FileKindGallery, name)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
