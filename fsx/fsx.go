// Package fsx abstracts the places image bytes are written to: the local
// scratch directory, an S3 bucket, or memory.
package fsx

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/Abraxas-365/imagetext/errx"
)

var (
	fsErrors = errx.NewRegistry("FS")

	ErrNotFound     = fsErrors.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
	ErrInvalidPath  = fsErrors.Register("INVALID_PATH", errx.TypeValidation, http.StatusBadRequest, "Invalid path")
	ErrReadFailed   = fsErrors.Register("READ_FAILED", errx.TypeSystem, http.StatusInternalServerError, "Failed to read file")
	ErrWriteFailed  = fsErrors.Register("WRITE_FAILED", errx.TypeSystem, http.StatusInternalServerError, "Failed to write file")
	ErrDeleteFailed = fsErrors.Register("DELETE_FAILED", errx.TypeSystem, http.StatusInternalServerError, "Failed to delete file")
)

// FileInfo represents information about a file
type FileInfo struct {
	Name        string            // Base name of the file
	Size        int64             // File size in bytes
	ModTime     time.Time         // Modification time
	ContentType string            // MIME type (when available)
	Metadata    map[string]string // Additional metadata
}

// FileSystem defines the interface for file operations
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
	Stat(ctx context.Context, path string) (FileInfo, error)

	WriteFile(ctx context.Context, path string, data []byte, opts ...WriteOption) error
	WriteFileStream(ctx context.Context, path string, r io.Reader, opts ...WriteOption) error

	DeleteFile(ctx context.Context, path string) error

	Join(elem ...string) string
	Exists(ctx context.Context, path string) (bool, error)
}

// WriteOptions carries per-write attributes. Backends ignore what they
// cannot store.
type WriteOptions struct {
	ContentType string
	Metadata    map[string]string
}

// WriteOption configures a single write
type WriteOption func(*WriteOptions)

// WithContentType sets the MIME type stored with the file
func WithContentType(contentType string) WriteOption {
	return func(o *WriteOptions) {
		o.ContentType = contentType
	}
}

// WithMetadata attaches user metadata to the file
func WithMetadata(metadata map[string]string) WriteOption {
	return func(o *WriteOptions) {
		o.Metadata = metadata
	}
}

func applyWriteOptions(opts []WriteOption) WriteOptions {
	var o WriteOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
