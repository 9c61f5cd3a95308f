package fsx

import (
	"bytes"
	"context"
	"io"
	"path"
	"sort"
	"sync"
	"time"
)

type memFile struct {
	data        []byte
	contentType string
	metadata    map[string]string
	modTime     time.Time
}

// MemFS is an in-memory FileSystem, safe for concurrent use
type MemFS struct {
	mu    sync.RWMutex
	files map[string]memFile
}

// NewMemFS creates an empty MemFS
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string]memFile)}
}

func (m *MemFS) ReadFile(ctx context.Context, p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.files[path.Clean(p)]
	if !ok {
		return nil, fsErrors.New(ErrNotFound).WithDetail("path", p)
	}
	return bytes.Clone(f.data), nil
}

func (m *MemFS) ReadFileStream(ctx context.Context, p string) (io.ReadCloser, error) {
	data, err := m.ReadFile(ctx, p)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemFS) Stat(ctx context.Context, p string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.files[path.Clean(p)]
	if !ok {
		return FileInfo{}, fsErrors.New(ErrNotFound).WithDetail("path", p)
	}
	return FileInfo{
		Name:        path.Base(p),
		Size:        int64(len(f.data)),
		ModTime:     f.modTime,
		ContentType: f.contentType,
		Metadata:    f.metadata,
	}, nil
}

func (m *MemFS) WriteFile(ctx context.Context, p string, data []byte, opts ...WriteOption) error {
	return m.WriteFileStream(ctx, p, bytes.NewReader(data), opts...)
}

func (m *MemFS) WriteFileStream(ctx context.Context, p string, r io.Reader, opts ...WriteOption) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fsErrors.NewWithCause(ErrWriteFailed, err).WithDetail("path", p)
	}
	o := applyWriteOptions(opts)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path.Clean(p)] = memFile{
		data:        data,
		contentType: o.ContentType,
		metadata:    o.Metadata,
		modTime:     time.Now(),
	}
	return nil
}

func (m *MemFS) DeleteFile(ctx context.Context, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := path.Clean(p)
	if _, ok := m.files[key]; !ok {
		return fsErrors.New(ErrNotFound).WithDetail("path", p)
	}
	delete(m.files, key)
	return nil
}

func (m *MemFS) Join(elem ...string) string {
	return path.Join(elem...)
}

func (m *MemFS) Exists(ctx context.Context, p string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[path.Clean(p)]
	return ok, nil
}

// Paths lists stored paths in sorted order
func (m *MemFS) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
