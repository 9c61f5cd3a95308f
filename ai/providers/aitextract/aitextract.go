package aitextract

import (
	"context"
	"time"

	"github.com/Abraxas-365/imagetext/ai/ocr"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

const providerName = "textract"

// TextractAPI is the subset of the Textract client used here
type TextractAPI interface {
	DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

// TextractProvider implements ocr.Provider with synchronous DetectDocumentText.
// The image bytes are sent inline.
type TextractProvider struct {
	client TextractAPI
}

// NewTextractProvider creates a provider from a Textract client
func NewTextractProvider(client TextractAPI) *TextractProvider {
	return &TextractProvider{client: client}
}

// NewFromConfig builds the Textract client from an AWS config
func NewFromConfig(cfg aws.Config) *TextractProvider {
	return NewTextractProvider(textract.NewFromConfig(cfg))
}

// Name implements ocr.Provider
func (p *TextractProvider) Name() string {
	return providerName
}

// ExtractText implements ocr.Provider. Model options do not apply to Textract.
func (p *TextractProvider) ExtractText(ctx context.Context, imageData []byte, opts ...ocr.Option) (ocr.Result, error) {
	if len(imageData) == 0 {
		return ocr.Result{}, ocr.NewEmptyImageError(providerName)
	}

	startTime := time.Now()

	out, err := p.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: imageData},
	})
	if err != nil {
		return ocr.Result{}, ocr.NewProviderError(providerName, err)
	}

	blocks := make([]ocr.TextBlock, 0, len(out.Blocks))
	for _, b := range out.Blocks {
		blocks = append(blocks, convertBlock(b))
	}

	return ocr.Result{
		Text:       ocr.JoinLines(blocks),
		Confidence: ocr.MeanLineConfidence(blocks),
		Blocks:     blocks,
		Usage: ocr.Usage{
			ProcessingTime: int(time.Since(startTime).Milliseconds()),
		},
	}, nil
}

func convertBlock(b types.Block) ocr.TextBlock {
	block := ocr.TextBlock{
		Type: blockType(b.BlockType),
		Text: aws.ToString(b.Text),
		// Textract reports 0-100
		Confidence: aws.ToFloat32(b.Confidence) / 100,
	}
	if b.Geometry != nil && b.Geometry.BoundingBox != nil {
		box := b.Geometry.BoundingBox
		block.BoundingBox = ocr.BoundingBox{
			X:      box.Left,
			Y:      box.Top,
			Width:  box.Width,
			Height: box.Height,
		}
	}
	return block
}

func blockType(t types.BlockType) ocr.BlockType {
	switch t {
	case types.BlockTypePage:
		return ocr.BlockPage
	case types.BlockTypeLine:
		return ocr.BlockLine
	case types.BlockTypeWord:
		return ocr.BlockWord
	default:
		return ocr.BlockType(t)
	}
}
