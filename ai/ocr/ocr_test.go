package ocr

import (
	"context"
	"testing"

	"github.com/Abraxas-365/imagetext/errx"
)

type recordingProvider struct {
	calls int
	opts  *OCROptions
}

func (p *recordingProvider) Name() string { return "recording" }

func (p *recordingProvider) ExtractText(ctx context.Context, imageData []byte, opts ...Option) (Result, error) {
	p.calls++
	p.opts = Apply(opts...)
	return Result{Text: "ok\n"}, nil
}

func TestJoinLinesUsesOnlyLineBlocks(t *testing.T) {
	blocks := []TextBlock{
		{Type: BlockPage},
		{Type: BlockLine, Text: "COME ON"},
		{Type: BlockWord, Text: "COME"},
		{Type: BlockWord, Text: "ON"},
		{Type: BlockLine, Text: "LET'S PARTY"},
	}

	if got := JoinLines(blocks); got != "COME ON\nLET'S PARTY\n" {
		t.Fatalf("JoinLines() = %q", got)
	}
	if got := (Result{Blocks: blocks}).Lines(); len(got) != 2 || got[1] != "LET'S PARTY" {
		t.Fatalf("Lines() = %v", got)
	}
}

func TestJoinLinesEmpty(t *testing.T) {
	if got := JoinLines([]TextBlock{{Type: BlockPage}}); got != "" {
		t.Fatalf("JoinLines() = %q", got)
	}
}

func TestLinesFromText(t *testing.T) {
	blocks := LinesFromText("  first \r\n\n second\n")
	if len(blocks) != 2 || blocks[0].Text != "first" || blocks[1].Text != "second" || blocks[0].Type != BlockLine {
		t.Fatalf("LinesFromText() = %+v", blocks)
	}
}

func TestMeanLineConfidence(t *testing.T) {
	blocks := []TextBlock{
		{Type: BlockLine, Confidence: 0.9},
		{Type: BlockLine, Confidence: 0.7},
		{Type: BlockWord, Confidence: 0.1},
		{Type: BlockLine},
	}
	got := MeanLineConfidence(blocks)
	if got < 0.799 || got > 0.801 {
		t.Fatalf("MeanLineConfidence() = %v", got)
	}
	if MeanLineConfidence(nil) != 0 {
		t.Fatalf("expected zero for no blocks")
	}
}

func TestClientMergesDefaults(t *testing.T) {
	p := &recordingProvider{}
	c := NewClient(p, WithModel("default-model"), WithLanguage("en"))

	if _, err := c.ExtractText(context.Background(), []byte{1}, WithModel("override")); err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if p.opts.Model != "override" || p.opts.Language != "en" || p.opts.MaxTokens != 1024 {
		t.Fatalf("unexpected options: %+v", p.opts)
	}
}

func TestClientRejectsEmptyImage(t *testing.T) {
	p := &recordingProvider{}
	_, err := NewClient(p).ExtractText(context.Background(), nil)
	if !errx.IsCode(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
	if p.calls != 0 {
		t.Fatalf("provider should not be called")
	}
}
