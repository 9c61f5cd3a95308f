package extractx

import (
	"context"

	"github.com/Abraxas-365/imagetext/ai/ocr"
	"github.com/Abraxas-365/imagetext/ai/providers/aianthropic"
	"github.com/Abraxas-365/imagetext/ai/providers/aiopenai"
	"github.com/Abraxas-365/imagetext/ai/providers/aitextract"
	"github.com/Abraxas-365/imagetext/eventx"
	"github.com/Abraxas-365/imagetext/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// LoadAWSConfig loads the default credential chain for region. SDK retries
// are disabled so a transient failure is terminal.
func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	)
	if err != nil {
		return aws.Config{}, extractErrors.NewWithCause(ErrAWSConfig, err).WithDetail("region", region)
	}
	return cfg, nil
}

// NewProvider builds the OCR provider named in s
func NewProvider(s Settings, awsCfg aws.Config) (ocr.Provider, error) {
	switch s.OCRProvider {
	case "", ProviderTextract:
		return aitextract.NewFromConfig(awsCfg), nil
	case ProviderOpenAI:
		return aiopenai.NewOpenAIProvider(s.OpenAIAPIKey), nil
	case ProviderAnthropic:
		return aianthropic.NewAnthropicProvider(s.AnthropicAPIKey), nil
	default:
		return nil, extractErrors.New(ErrUnknownProvider).WithDetail("provider", s.OCRProvider)
	}
}

// Build wires a Pipeline against AWS from s
func Build(ctx context.Context, s Settings) (*Pipeline, error) {
	awsCfg, err := LoadAWSConfig(ctx, s.Region)
	if err != nil {
		return nil, err
	}

	scratch, err := fsx.NewLocalFS(s.TmpDir)
	if err != nil {
		return nil, err
	}
	store := fsx.NewS3FS(s3.NewFromConfig(awsCfg), s.Bucket)

	provider, err := NewProvider(s, awsCfg)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithPrefix(s.Prefix),
		WithContentType(s.ContentType),
		WithOCROptions(ocr.WithModel(s.OCRModel), ocr.WithLanguage(s.OCRLanguage)),
	}
	if s.ResultQueueURL != "" {
		opts = append(opts, WithPublisher(eventx.NewSQSPublisher(sqs.NewFromConfig(awsCfg), s.ResultQueueURL)))
	}

	return NewPipeline(scratch, store, provider, opts...), nil
}
