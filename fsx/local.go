package fsx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/imagetext/errx"
)

// LocalFS is a FileSystem rooted at a directory on disk. Paths are relative
// to the root and may not escape it.
type LocalFS struct {
	root string
}

// NewLocalFS creates a LocalFS rooted at dir, creating the directory if needed
func NewLocalFS(dir string) (*LocalFS, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fsErrors.NewWithCause(ErrWriteFailed, err).WithDetail("path", dir)
	}
	return &LocalFS{root: dir}, nil
}

// Root returns the directory the file system is rooted at
func (l *LocalFS) Root() string {
	return l.root
}

func (l *LocalFS) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	if clean == "/" || strings.Contains(path, "..") {
		return "", fsErrors.New(ErrInvalidPath).WithDetail("path", path)
	}
	return filepath.Join(l.root, clean), nil
}

func (l *LocalFS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	rc, err := l.ReadFileStream(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fsErrors.NewWithCause(ErrReadFailed, err).WithDetail("path", path)
	}
	return data, nil
}

func (l *LocalFS) ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error) {
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fsErrors.NewWithCause(ErrNotFound, err).WithDetail("path", path)
	}
	if err != nil {
		return nil, fsErrors.NewWithCause(ErrReadFailed, err).WithDetail("path", path)
	}
	return f, nil
}

func (l *LocalFS) Stat(ctx context.Context, path string) (FileInfo, error) {
	full, err := l.resolve(path)
	if err != nil {
		return FileInfo{}, err
	}
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return FileInfo{}, fsErrors.NewWithCause(ErrNotFound, err).WithDetail("path", path)
	}
	if err != nil {
		return FileInfo{}, fsErrors.NewWithCause(ErrReadFailed, err).WithDetail("path", path)
	}
	return FileInfo{
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

func (l *LocalFS) WriteFile(ctx context.Context, path string, data []byte, opts ...WriteOption) error {
	return l.WriteFileStream(ctx, path, bytes.NewReader(data), opts...)
}

// WriteFileStream writes r to path with 0600 permissions. Content type and
// metadata are not kept on disk.
func (l *LocalFS) WriteFileStream(ctx context.Context, path string, r io.Reader, _ ...WriteOption) error {
	full, err := l.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fsErrors.NewWithCause(ErrWriteFailed, err).WithDetail("path", path)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fsErrors.NewWithCause(ErrWriteFailed, err).WithDetail("path", path)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fsErrors.NewWithCause(ErrWriteFailed, err).WithDetail("path", path)
	}
	if err := f.Close(); err != nil {
		return fsErrors.NewWithCause(ErrWriteFailed, err).WithDetail("path", path)
	}
	return nil
}

func (l *LocalFS) DeleteFile(ctx context.Context, path string) error {
	full, err := l.resolve(path)
	if err != nil {
		return err
	}
	err = os.Remove(full)
	if errors.Is(err, fs.ErrNotExist) {
		return fsErrors.NewWithCause(ErrNotFound, err).WithDetail("path", path)
	}
	if err != nil {
		return fsErrors.NewWithCause(ErrDeleteFailed, err).WithDetail("path", path)
	}
	return nil
}

func (l *LocalFS) Join(elem ...string) string {
	return filepath.Join(elem...)
}

func (l *LocalFS) Exists(ctx context.Context, path string) (bool, error) {
	_, err := l.Stat(ctx, path)
	if errx.IsCode(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
