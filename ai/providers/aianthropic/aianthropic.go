package aianthropic

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Abraxas-365/imagetext/ai/ocr"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	providerName = "anthropic"
	defaultModel = "claude-3-5-sonnet-latest"
)

// mediaTypes accepted by image blocks of the Messages API
var mediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// AnthropicProvider implements ocr.Provider with the Messages API
type AnthropicProvider struct {
	client anthropic.Client
}

// NewAnthropicProvider creates a new Anthropic provider with SDK retries disabled
func NewAnthropicProvider(apiKey string, opts ...option.RequestOption) *AnthropicProvider {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	options := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &AnthropicProvider{client: anthropic.NewClient(options...)}
}

// Name implements ocr.Provider
func (p *AnthropicProvider) Name() string {
	return providerName
}

// ExtractText implements ocr.Provider
func (p *AnthropicProvider) ExtractText(ctx context.Context, imageData []byte, opts ...ocr.Option) (ocr.Result, error) {
	if len(imageData) == 0 {
		return ocr.Result{}, ocr.NewEmptyImageError(providerName)
	}
	mediaType := http.DetectContentType(imageData)
	if !mediaTypes[mediaType] {
		return ocr.Result{}, ocr.NewUnsupportedFormatError(providerName, mediaType)
	}
	options := ocr.Apply(opts...)

	model := defaultModel
	if options.Model != "" {
		model = options.Model
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(options.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: ocr.SystemPrompt(options)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(
					mediaType,
					base64.StdEncoding.EncodeToString(imageData),
				),
				anthropic.NewTextBlock(ocr.UserPrompt()),
			),
		},
	}

	startTime := time.Now()

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return ocr.Result{}, ocr.NewProviderError(providerName, err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
			text.WriteString("\n")
		}
	}
	if text.Len() == 0 {
		return ocr.Result{}, ocr.NewNoResponseError(providerName)
	}

	blocks := ocr.LinesFromText(text.String())

	return ocr.Result{
		Text:   ocr.JoinLines(blocks),
		Blocks: blocks,
		Usage: ocr.Usage{
			PromptTokens:     int(message.Usage.InputTokens),
			CompletionTokens: int(message.Usage.OutputTokens),
			TotalTokens:      int(message.Usage.InputTokens + message.Usage.OutputTokens),
			ProcessingTime:   int(time.Since(startTime).Milliseconds()),
		},
	}, nil
}
