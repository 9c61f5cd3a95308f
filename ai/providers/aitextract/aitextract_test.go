package aitextract

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Abraxas-365/imagetext/ai/ocr"
	"github.com/Abraxas-365/imagetext/errx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

type fakeTextract struct {
	calls int
	input *textract.DetectDocumentTextInput
	out   *textract.DetectDocumentTextOutput
	err   error
}

func (f *fakeTextract) DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error) {
	f.calls++
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func line(text string, confidence float32) types.Block {
	return types.Block{
		BlockType:  types.BlockTypeLine,
		Text:       aws.String(text),
		Confidence: aws.Float32(confidence),
		Geometry: &types.Geometry{
			BoundingBox: &types.BoundingBox{Left: 0.1, Top: 0.2, Width: 0.5, Height: 0.05},
		},
	}
}

func TestExtractTextJoinsLineBlocks(t *testing.T) {
	fake := &fakeTextract{out: &textract.DetectDocumentTextOutput{
		Blocks: []types.Block{
			{BlockType: types.BlockTypePage},
			line("COME ON", 99),
			{BlockType: types.BlockTypeWord, Text: aws.String("COME"), Confidence: aws.Float32(99)},
			line("LET'S PARTY", 97),
			{BlockType: types.BlockTypeWord, Text: aws.String("PARTY"), Confidence: aws.Float32(97)},
		},
	}}
	image := []byte("image-bytes")

	res, err := NewTextractProvider(fake).ExtractText(context.Background(), image)
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}

	if res.Text != "COME ON\nLET'S PARTY\n" {
		t.Fatalf("Text = %q", res.Text)
	}
	if !bytes.Equal(fake.input.Document.Bytes, image) {
		t.Fatalf("document bytes differ from input")
	}
	if len(res.Blocks) != 5 || res.Blocks[2].Type != ocr.BlockWord {
		t.Fatalf("Blocks = %+v", res.Blocks)
	}
	if res.Blocks[1].BoundingBox.Width != 0.5 {
		t.Fatalf("BoundingBox = %+v", res.Blocks[1].BoundingBox)
	}
	if res.Confidence < 0.979 || res.Confidence > 0.981 {
		t.Fatalf("Confidence = %v", res.Confidence)
	}
}

func TestExtractTextNoLines(t *testing.T) {
	fake := &fakeTextract{out: &textract.DetectDocumentTextOutput{
		Blocks: []types.Block{{BlockType: types.BlockTypePage}},
	}}

	res, err := NewTextractProvider(fake).ExtractText(context.Background(), []byte("blank"))
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if res.Text != "" {
		t.Fatalf("Text = %q", res.Text)
	}
}

func TestExtractTextServiceError(t *testing.T) {
	cause := &types.UnsupportedDocumentException{Message: aws.String("bad format")}
	fake := &fakeTextract{err: cause}

	_, err := NewTextractProvider(fake).ExtractText(context.Background(), []byte("x"))
	if !errx.IsCode(err, ocr.ErrProviderFailed) {
		t.Fatalf("expected ErrProviderFailed, got %v", err)
	}
	var unsupported *types.UnsupportedDocumentException
	if !errors.As(err, &unsupported) {
		t.Fatalf("cause not preserved: %v", err)
	}
}

func TestExtractTextEmptyImageSkipsService(t *testing.T) {
	fake := &fakeTextract{}
	_, err := NewTextractProvider(fake).ExtractText(context.Background(), nil)
	if !errx.IsCode(err, ocr.ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
	if fake.calls != 0 {
		t.Fatalf("service should not be called")
	}
}
