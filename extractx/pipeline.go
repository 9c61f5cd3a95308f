package extractx

import (
	"context"
	"time"

	"github.com/Abraxas-365/imagetext/ai/ocr"
	"github.com/Abraxas-365/imagetext/errx"
	"github.com/Abraxas-365/imagetext/eventx"
	"github.com/Abraxas-365/imagetext/fsx"
	"github.com/Abraxas-365/imagetext/logx"
)

// EventTextExtracted is published after every successful run
const EventTextExtracted = "image.text_extracted"

// Output is the result of one pipeline run
type Output struct {
	Text        string
	Key         string
	ContentType string
	Provider    string
	Lines       int
	Confidence  float32
}

// TextExtracted is the payload of EventTextExtracted
type TextExtracted struct {
	Key         string  `json:"key"`
	ContentType string  `json:"content_type"`
	Provider    string  `json:"provider"`
	Lines       int     `json:"lines"`
	Confidence  float32 `json:"confidence,omitempty"`
	Text        string  `json:"text"`
}

// Pipeline runs decode, scratch write, upload, OCR and cleanup in sequence
type Pipeline struct {
	scratch     fsx.FileSystem
	store       fsx.FileSystem
	ocr         ocr.Provider
	publisher   eventx.Publisher
	prefix      string
	contentType string
	ocrOptions  []ocr.Option
	newName     func(contentType string) string
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithPrefix prepends prefix to every uploaded key
func WithPrefix(prefix string) Option {
	return func(p *Pipeline) { p.prefix = prefix }
}

// WithContentType sets the upload content type, ContentTypeAuto sniffs it
func WithContentType(contentType string) Option {
	return func(p *Pipeline) { p.contentType = contentType }
}

// WithPublisher enables result notifications
func WithPublisher(publisher eventx.Publisher) Option {
	return func(p *Pipeline) { p.publisher = publisher }
}

// WithOCROptions sets options passed to every OCR call
func WithOCROptions(opts ...ocr.Option) Option {
	return func(p *Pipeline) { p.ocrOptions = append(p.ocrOptions, opts...) }
}

// WithNameFunc overrides temp file naming
func WithNameFunc(fn func(contentType string) string) Option {
	return func(p *Pipeline) { p.newName = fn }
}

// NewPipeline creates a pipeline. scratch holds temp files, store receives
// the uploads.
func NewPipeline(scratch, store fsx.FileSystem, provider ocr.Provider, opts ...Option) *Pipeline {
	p := &Pipeline{
		scratch:     scratch,
		store:       store,
		ocr:         provider,
		contentType: "image/png",
		newName:     NewObjectName,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Provider returns the OCR provider name
func (p *Pipeline) Provider() string {
	return p.ocr.Name()
}

// Run processes one base64 payload. No step is retried.
func (p *Pipeline) Run(ctx context.Context, payload string) (*Output, error) {
	log := logx.FromContext(ctx)
	start := time.Now()

	image, declared, err := DecodePayload(payload)
	if err != nil {
		return nil, extractErrors.NewWithCause(ErrDecode, err)
	}

	contentType := resolveContentType(p.contentType, declared, image)
	name := p.newName(contentType)

	if err := p.scratch.WriteFile(ctx, name, image); err != nil {
		return nil, extractErrors.NewWithCause(ErrScratch, err).WithDetail("file", name)
	}
	defer p.cleanup(ctx, log, name)

	key := p.prefix + name
	if err := p.upload(ctx, name, key, contentType); err != nil {
		return nil, err
	}
	log.Debug("uploaded %s (%d bytes, %s)", key, len(image), contentType)

	res, err := p.ocr.ExtractText(ctx, image, p.ocrOptions...)
	if err != nil {
		return nil, extractErrors.NewWithCause(ErrOCR, err).
			WithDetail("provider", p.ocr.Name()).
			WithDetail("key", key)
	}

	out := &Output{
		Text:        res.Text,
		Key:         key,
		ContentType: contentType,
		Provider:    p.ocr.Name(),
		Lines:       len(res.Lines()),
		Confidence:  res.Confidence,
	}
	log.Info("extracted %d lines from %s with %s in %s", out.Lines, key, out.Provider, time.Since(start).Round(time.Millisecond))

	p.publish(ctx, log, out)
	return out, nil
}

func (p *Pipeline) upload(ctx context.Context, name, key, contentType string) error {
	rc, err := p.scratch.ReadFileStream(ctx, name)
	if err != nil {
		return extractErrors.NewWithCause(ErrScratch, err).WithDetail("file", name)
	}
	defer rc.Close()

	if err := p.store.WriteFileStream(ctx, key, rc, fsx.WithContentType(contentType)); err != nil {
		return extractErrors.NewWithCause(ErrStorage, err).WithDetail("key", key)
	}
	return nil
}

// cleanup removes the temp file. Failures are only logged.
func (p *Pipeline) cleanup(ctx context.Context, log *logx.Logger, name string) {
	if err := p.scratch.DeleteFile(context.WithoutCancel(ctx), name); err != nil {
		log.Warn("failed to delete temporary file %s: %s", name, errx.Print(err))
	}
}

func (p *Pipeline) publish(ctx context.Context, log *logx.Logger, out *Output) {
	if p.publisher == nil {
		return
	}
	event := eventx.NewEvent(EventTextExtracted, TextExtracted{
		Key:         out.Key,
		ContentType: out.ContentType,
		Provider:    out.Provider,
		Lines:       out.Lines,
		Confidence:  out.Confidence,
		Text:        out.Text,
	}, eventx.WithSource("imagetext"))

	if err := p.publisher.Publish(ctx, event); err != nil {
		log.Warn("failed to publish %s for %s: %s", EventTextExtracted, out.Key, errx.Print(err))
	}
}
