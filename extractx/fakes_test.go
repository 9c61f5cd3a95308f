package extractx

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/Abraxas-365/imagetext/ai/ocr"
	"github.com/Abraxas-365/imagetext/fsx"
)

// trackingFS wraps MemFS and counts calls, failing on demand
type trackingFS struct {
	*fsx.MemFS

	mu        sync.Mutex
	writes    int
	deletes   int
	writeErr  error
	deleteErr error
}

func newTrackingFS() *trackingFS {
	return &trackingFS{MemFS: fsx.NewMemFS()}
}

func (f *trackingFS) WriteFile(ctx context.Context, p string, data []byte, opts ...fsx.WriteOption) error {
	f.mu.Lock()
	f.writes++
	err := f.writeErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.MemFS.WriteFile(ctx, p, data, opts...)
}

func (f *trackingFS) WriteFileStream(ctx context.Context, p string, r io.Reader, opts ...fsx.WriteOption) error {
	f.mu.Lock()
	f.writes++
	err := f.writeErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.MemFS.WriteFileStream(ctx, p, r, opts...)
}

func (f *trackingFS) DeleteFile(ctx context.Context, p string) error {
	f.mu.Lock()
	f.deletes++
	err := f.deleteErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.MemFS.DeleteFile(ctx, p)
}

// fakeOCR returns canned lines and records the bytes it was given
type fakeOCR struct {
	mu     sync.Mutex
	calls  int
	images [][]byte
	lines  []string
	err    error
	panic  any
}

func (f *fakeOCR) Name() string { return "fake" }

func (f *fakeOCR) ExtractText(ctx context.Context, imageData []byte, opts ...ocr.Option) (ocr.Result, error) {
	f.mu.Lock()
	f.calls++
	f.images = append(f.images, imageData)
	f.mu.Unlock()

	if f.panic != nil {
		panic(f.panic)
	}
	if f.err != nil {
		return ocr.Result{}, f.err
	}

	blocks := []ocr.TextBlock{{Type: ocr.BlockPage}}
	for _, l := range f.lines {
		blocks = append(blocks, ocr.TextBlock{Type: ocr.BlockLine, Text: l, Confidence: 0.9})
		blocks = append(blocks, ocr.TextBlock{Type: ocr.BlockWord, Text: l})
	}
	return ocr.Result{Text: ocr.JoinLines(blocks), Blocks: blocks, Confidence: 0.9}, nil
}

var errBoom = errors.New("boom")
