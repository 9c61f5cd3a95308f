package ocr

import (
	"context"
	"net/http"
	"strings"

	"github.com/Abraxas-365/imagetext/errx"
)

var (
	ocrErrors = errx.NewRegistry("OCR")

	ErrEmptyImage     = ocrErrors.Register("EMPTY_IMAGE", errx.TypeValidation, http.StatusBadRequest, "Image is empty")
	ErrProviderFailed = ocrErrors.Register("PROVIDER_FAILED", errx.TypeExternal, http.StatusInternalServerError, "OCR service call failed")
	ErrNoResponse     = ocrErrors.Register("NO_RESPONSE", errx.TypeExternal, http.StatusInternalServerError, "OCR service returned no content")
	ErrUnsupported    = ocrErrors.Register("UNSUPPORTED_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Image format is not supported by the OCR provider")
)

// NewProviderError wraps a failed service call. Providers use it so callers
// can match every provider's failures with ErrProviderFailed.
func NewProviderError(provider string, cause error) *errx.Error {
	return ocrErrors.NewWithCause(ErrProviderFailed, cause).WithDetail("provider", provider)
}

// NewNoResponseError reports a call that succeeded without usable content
func NewNoResponseError(provider string) *errx.Error {
	return ocrErrors.New(ErrNoResponse).WithDetail("provider", provider)
}

// NewEmptyImageError rejects zero-length input before any service call
func NewEmptyImageError(provider string) *errx.Error {
	return ocrErrors.New(ErrEmptyImage).WithDetail("provider", provider)
}

// NewUnsupportedFormatError rejects an image type the provider cannot read
func NewUnsupportedFormatError(provider, mediaType string) *errx.Error {
	return ocrErrors.New(ErrUnsupported).
		WithDetail("provider", provider).
		WithDetail("media_type", mediaType)
}

// Provider extracts text from image bytes
type Provider interface {
	// Name identifies the provider in logs and events
	Name() string

	// ExtractText extracts text from an image
	ExtractText(ctx context.Context, imageData []byte, opts ...Option) (Result, error)
}

// BlockType tags a detected block
type BlockType string

const (
	BlockPage BlockType = "PAGE"
	BlockLine BlockType = "LINE"
	BlockWord BlockType = "WORD"
)

// Result represents the output of an OCR operation
type Result struct {
	// Text is the concatenation of the LINE blocks, each followed by a newline
	Text string

	// Confidence is the mean LINE confidence (0-1), zero when unknown
	Confidence float32

	Blocks []TextBlock

	Usage Usage
}

// Lines returns the text of the LINE blocks in order
func (r Result) Lines() []string {
	var lines []string
	for _, b := range r.Blocks {
		if b.Type == BlockLine {
			lines = append(lines, b.Text)
		}
	}
	return lines
}

// TextBlock represents a block of text detected in the image
type TextBlock struct {
	Type BlockType

	Text string

	// Confidence is the confidence score for this block (0-1)
	Confidence float32

	// BoundingBox is the location of the block (if the provider reports it)
	BoundingBox BoundingBox
}

// BoundingBox represents the position of text in an image
type BoundingBox struct {
	X      float32 // Left coordinate (normalized 0-1)
	Y      float32 // Top coordinate (normalized 0-1)
	Width  float32 // Width (normalized 0-1)
	Height float32 // Height (normalized 0-1)
}

// Usage represents resource usage statistics for OCR operations
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	ProcessingTime   int // in milliseconds
}

// JoinLines concatenates LINE blocks, appending a newline after each one
func JoinLines(blocks []TextBlock) string {
	var b strings.Builder
	for _, block := range blocks {
		if block.Type != BlockLine {
			continue
		}
		b.WriteString(block.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// LinesFromText turns free-form model output into LINE blocks, dropping
// blank lines
func LinesFromText(text string) []TextBlock {
	var blocks []TextBlock
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		blocks = append(blocks, TextBlock{Type: BlockLine, Text: line})
	}
	return blocks
}

// MeanLineConfidence averages LINE confidences that are set
func MeanLineConfidence(blocks []TextBlock) float32 {
	var total float32
	var n int
	for _, b := range blocks {
		if b.Type == BlockLine && b.Confidence > 0 {
			total += b.Confidence
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float32(n)
}

// Client represents a configured OCR client
type Client struct {
	provider Provider
	defaults []Option
}

// NewClient creates a new OCR client. defaults are applied before the
// options of each call.
func NewClient(provider Provider, defaults ...Option) *Client {
	return &Client{provider: provider, defaults: defaults}
}

// Provider returns the wrapped provider
func (c *Client) Provider() Provider {
	return c.provider
}

// ExtractText extracts text from an image
func (c *Client) ExtractText(ctx context.Context, imageData []byte, opts ...Option) (Result, error) {
	if len(imageData) == 0 {
		return Result{}, NewEmptyImageError(c.provider.Name())
	}
	all := make([]Option, 0, len(c.defaults)+len(opts))
	all = append(all, c.defaults...)
	all = append(all, opts...)
	return c.provider.ExtractText(ctx, imageData, all...)
}
