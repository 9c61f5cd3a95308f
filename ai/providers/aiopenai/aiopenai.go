package aiopenai

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Abraxas-365/imagetext/ai/ocr"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared/constant"
)

const (
	providerName = "openai"
	defaultModel = "gpt-4o"
)

// OpenAIProvider implements ocr.Provider with the Chat Completions vision API
type OpenAIProvider struct {
	client openai.Client
}

// NewOpenAIProvider creates a new OpenAI provider. SDK retries are disabled,
// a failed call is reported to the caller as is.
func NewOpenAIProvider(apiKey string, opts ...option.RequestOption) *OpenAIProvider {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	options := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &OpenAIProvider{client: openai.NewClient(options...)}
}

// Name implements ocr.Provider
func (p *OpenAIProvider) Name() string {
	return providerName
}

// ExtractText implements ocr.Provider
func (p *OpenAIProvider) ExtractText(ctx context.Context, imageData []byte, opts ...ocr.Option) (ocr.Result, error) {
	if len(imageData) == 0 {
		return ocr.Result{}, ocr.NewEmptyImageError(providerName)
	}
	options := ocr.Apply(opts...)

	dataURL := fmt.Sprintf("data:%s;base64,%s",
		http.DetectContentType(imageData),
		base64.StdEncoding.EncodeToString(imageData))

	contentParts := []openai.ChatCompletionContentPartUnionParam{
		{
			OfText: &openai.ChatCompletionContentPartTextParam{
				Type: constant.Text("text"),
				Text: ocr.UserPrompt(),
			},
		},
		{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				Type: constant.ImageURL("image_url"),
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL:    dataURL,
					Detail: "high",
				},
			},
		},
	}

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(ocr.SystemPrompt(options)),
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: contentParts,
					},
				},
			},
		},
	}

	params.Model = defaultModel
	if options.Model != "" {
		params.Model = options.Model
	}
	params.MaxTokens = openai.Int(int64(options.MaxTokens))
	if options.User != "" {
		params.User = openai.String(options.User)
	}

	startTime := time.Now()

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return ocr.Result{}, ocr.NewProviderError(providerName, err)
	}

	if len(completion.Choices) == 0 {
		return ocr.Result{}, ocr.NewNoResponseError(providerName)
	}

	blocks := ocr.LinesFromText(completion.Choices[0].Message.Content)

	return ocr.Result{
		Text:   ocr.JoinLines(blocks),
		Blocks: blocks,
		Usage: ocr.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
			ProcessingTime:   int(time.Since(startTime).Milliseconds()),
		},
	}, nil
}
