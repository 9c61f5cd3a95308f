package fsx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Abraxas-365/imagetext/errx"
)

type fakeS3 struct {
	objects map[string][]byte
	puts    []*s3.PutObjectInput
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(data)))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3FSWriteSetsBucketKeyAndContentType(t *testing.T) {
	client := newFakeS3()
	s := NewS3FS(client, "uploads")

	err := s.WriteFileStream(context.Background(), "/images/a.png", strings.NewReader("png-bytes"), WithContentType("image/png"))
	if err != nil {
		t.Fatalf("WriteFileStream() error = %v", err)
	}

	if len(client.puts) != 1 {
		t.Fatalf("expected one PutObject call, got %d", len(client.puts))
	}
	in := client.puts[0]
	if aws.ToString(in.Bucket) != "uploads" || aws.ToString(in.Key) != "images/a.png" || aws.ToString(in.ContentType) != "image/png" {
		t.Fatalf("unexpected input: bucket=%s key=%s ct=%s", aws.ToString(in.Bucket), aws.ToString(in.Key), aws.ToString(in.ContentType))
	}
	if string(client.objects["images/a.png"]) != "png-bytes" {
		t.Fatalf("unexpected body: %q", client.objects["images/a.png"])
	}
}

func TestS3FSUploadFailure(t *testing.T) {
	client := newFakeS3()
	client.putErr = errors.New("AccessDenied")
	s := NewS3FS(client, "uploads")

	err := s.WriteFile(context.Background(), "a.png", []byte("x"))
	if !errx.IsCode(err, ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "AccessDenied") {
		t.Fatalf("cause missing from %q", err.Error())
	}
}

func TestS3FSReadStatDelete(t *testing.T) {
	ctx := context.Background()
	client := newFakeS3()
	s := NewS3FS(client, "uploads")

	if _, err := s.ReadFile(ctx, "missing.png"); !errx.IsCode(err, ErrNotFound) {
		t.Fatalf("ReadFile() error = %v, want ErrNotFound", err)
	}
	ok, err := s.Exists(ctx, "missing.png")
	if err != nil || ok {
		t.Fatalf("Exists() = %v, %v", ok, err)
	}

	_ = s.WriteFile(ctx, "a.png", []byte("abc"))
	st, err := s.Stat(ctx, "a.png")
	if err != nil || st.Size != 3 || st.Name != "a.png" {
		t.Fatalf("Stat() = %+v, %v", st, err)
	}
	data, err := s.ReadFile(ctx, "a.png")
	if err != nil || string(data) != "abc" {
		t.Fatalf("ReadFile() = %q, %v", data, err)
	}
	if err := s.DeleteFile(ctx, "a.png"); err != nil {
		t.Fatalf("DeleteFile() error = %v", err)
	}
	if _, err := s.Stat(ctx, "a.png"); !errx.IsCode(err, ErrNotFound) {
		t.Fatalf("Stat() after delete error = %v", err)
	}
}

func TestS3FSRejectsEmptyKey(t *testing.T) {
	s := NewS3FS(newFakeS3(), "uploads")
	if err := s.WriteFile(context.Background(), "/", []byte("x")); !errx.IsCode(err, ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
}
