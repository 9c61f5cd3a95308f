package extractx

import (
	"os"

	"github.com/Abraxas-365/imagetext/configx"
	"github.com/Abraxas-365/imagetext/validatex"
)

const (
	ProviderTextract  = "textract"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	// ContentTypeAuto sniffs the content type from the decoded bytes
	ContentTypeAuto = "auto"
)

// Settings holds the runtime configuration of the function
type Settings struct {
	Region      string `validatex:"required"`
	Bucket      string `validatex:"required"`
	Prefix      string
	ContentType string `validatex:"required"`
	TmpDir      string

	OCRProvider string `validatex:"required,oneof=textract openai anthropic"`
	OCRModel    string
	OCRLanguage string

	OpenAIAPIKey    string
	AnthropicAPIKey string

	// ResultQueueURL enables result notifications when set
	ResultQueueURL string `validatex:"url"`

	ServerPort int `validatex:"min=1,max=65535"`
	JWTSecret  string
}

// Validate checks the provider credentials
func (s Settings) Validate() error {
	switch s.OCRProvider {
	case ProviderOpenAI:
		if s.OpenAIAPIKey == "" {
			return extractErrors.New(ErrMissingAPIKey).WithDetail("provider", s.OCRProvider)
		}
	case ProviderAnthropic:
		if s.AnthropicAPIKey == "" {
			return extractErrors.New(ErrMissingAPIKey).WithDetail("provider", s.OCRProvider)
		}
	}
	return nil
}

func defaults() map[string]any {
	return map[string]any{
		"aws":    map[string]any{"region": "us-west-2"},
		"image":  map[string]any{"content": map[string]any{"type": "image/png"}},
		"tmp":    map[string]any{"dir": os.TempDir()},
		"ocr":    map[string]any{"provider": ProviderTextract, "language": "auto"},
		"server": map[string]any{"port": 8080},
	}
}

// NewConfig layers defaults, an optional .env file and the environment
func NewConfig(dotEnvPath string) (configx.Config, error) {
	b := configx.NewBuilder().WithDefaults(defaults())
	if dotEnvPath != "" {
		b = b.FromDotEnv(dotEnvPath)
	}
	return b.FromEnv("").Build()
}

// SettingsFromConfig reads and validates Settings
func SettingsFromConfig(cfg configx.Config) (Settings, error) {
	s := Settings{
		Region:          cfg.Get("aws.region").AsStringDefault("us-west-2"),
		Bucket:          cfg.Get("image.bucket").AsString(),
		Prefix:          cfg.Get("image.prefix").AsString(),
		ContentType:     cfg.Get("image.content.type").AsStringDefault("image/png"),
		TmpDir:          cfg.Get("tmp.dir").AsStringDefault(os.TempDir()),
		OCRProvider:     cfg.Get("ocr.provider").AsStringDefault(ProviderTextract),
		OCRModel:        cfg.Get("ocr.model").AsString(),
		OCRLanguage:     cfg.Get("ocr.language").AsStringDefault("auto"),
		OpenAIAPIKey:    cfg.Get("openai.api.key").AsString(),
		AnthropicAPIKey: cfg.Get("anthropic.api.key").AsString(),
		ResultQueueURL:  cfg.Get("result.queue.url").AsString(),
		ServerPort:      cfg.Get("server.port").AsIntDefault(8080),
		JWTSecret:       cfg.Get("auth.jwt.secret").AsString(),
	}

	if err := validatex.Validate(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadSettings reads Settings from the environment
func LoadSettings() (Settings, error) {
	cfg, err := NewConfig(".env")
	if err != nil {
		return Settings{}, err
	}
	return SettingsFromConfig(cfg)
}
