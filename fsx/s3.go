package fsx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/Abraxas-365/imagetext/errx"
)

var ErrUploadFailed = fsErrors.Register("UPLOAD_FAILED", errx.TypeExternal, http.StatusInternalServerError, "Failed to put object")

// S3API is the subset of the S3 client used by S3FS
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3FS is a FileSystem backed by one bucket; paths are object keys
type S3FS struct {
	client S3API
	bucket string
}

// NewS3FS creates a FileSystem for bucket
func NewS3FS(client S3API, bucket string) *S3FS {
	return &S3FS{client: client, bucket: bucket}
}

// Bucket returns the bucket name
func (s *S3FS) Bucket() string {
	return s.bucket
}

func (s *S3FS) key(p string) (string, error) {
	k := strings.TrimPrefix(p, "/")
	if k == "" {
		return "", fsErrors.New(ErrInvalidPath).WithDetail("path", p)
	}
	return k, nil
}

func (s *S3FS) ReadFile(ctx context.Context, p string) ([]byte, error) {
	rc, err := s.ReadFileStream(ctx, p)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fsErrors.NewWithCause(ErrReadFailed, err).WithDetail("bucket", s.bucket).WithDetail("key", p)
	}
	return data, nil
}

func (s *S3FS) ReadFileStream(ctx context.Context, p string) (io.ReadCloser, error) {
	key, err := s.key(p)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s.classify(err, ErrReadFailed, key)
	}
	return out.Body, nil
}

func (s *S3FS) Stat(ctx context.Context, p string) (FileInfo, error) {
	key, err := s.key(p)
	if err != nil {
		return FileInfo{}, err
	}
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return FileInfo{}, s.classify(err, ErrReadFailed, key)
	}
	info := FileInfo{
		Name:        path.Base(key),
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
		Metadata:    out.Metadata,
	}
	if out.LastModified != nil {
		info.ModTime = *out.LastModified
	}
	return info, nil
}

func (s *S3FS) WriteFile(ctx context.Context, p string, data []byte, opts ...WriteOption) error {
	return s.WriteFileStream(ctx, p, bytes.NewReader(data), opts...)
}

// WriteFileStream uploads r with a single PutObject call. Readers that are
// not seekable are buffered so the SDK can sign the payload.
func (s *S3FS) WriteFileStream(ctx context.Context, p string, r io.Reader, opts ...WriteOption) error {
	key, err := s.key(p)
	if err != nil {
		return err
	}
	o := applyWriteOptions(opts)

	body, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return fsErrors.NewWithCause(ErrReadFailed, err).WithDetail("key", key)
		}
		body = bytes.NewReader(data)
	}

	input := &s3.PutObjectInput{
		Bucket:   aws.String(s.bucket),
		Key:      aws.String(key),
		Body:     body,
		Metadata: o.Metadata,
	}
	if o.ContentType != "" {
		input.ContentType = aws.String(o.ContentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fsErrors.NewWithCause(ErrUploadFailed, err).
			WithDetail("bucket", s.bucket).
			WithDetail("key", key)
	}
	return nil
}

func (s *S3FS) DeleteFile(ctx context.Context, p string) error {
	key, err := s.key(p)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return s.classify(err, ErrDeleteFailed, key)
	}
	return nil
}

func (s *S3FS) Join(elem ...string) string {
	return path.Join(elem...)
}

func (s *S3FS) Exists(ctx context.Context, p string) (bool, error) {
	_, err := s.Stat(ctx, p)
	if errx.IsCode(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// classify maps S3's missing-object errors to ErrNotFound
func (s *S3FS) classify(err error, fallback errx.Code, key string) error {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	var apiErr smithy.APIError
	code := fallback
	switch {
	case errors.As(err, &nsk), errors.As(err, &nf):
		code = ErrNotFound
	case errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound":
		code = ErrNotFound
	}
	return fsErrors.NewWithCause(code, err).
		WithDetail("bucket", s.bucket).
		WithDetail("key", key)
}
