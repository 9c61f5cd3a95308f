package ocr

// OCROptions contains options for OCR operations. Managed OCR services
// ignore the model-related fields.
type OCROptions struct {
	// Model is the model to use for vision-LLM providers
	Model string

	// Language hints the expected language, "auto" lets the provider decide
	Language string

	// MaxTokens caps the response of vision-LLM providers
	MaxTokens int

	// User is an optional user identifier for tracking and rate limiting
	User string
}

// Option is a function type to modify OCROptions
type Option func(*OCROptions)

// WithModel sets the OCR model to use
func WithModel(model string) Option {
	return func(o *OCROptions) {
		if model != "" {
			o.Model = model
		}
	}
}

// WithLanguage sets the expected language
func WithLanguage(language string) Option {
	return func(o *OCROptions) {
		if language != "" {
			o.Language = language
		}
	}
}

// WithMaxTokens sets the response token limit
func WithMaxTokens(n int) Option {
	return func(o *OCROptions) {
		if n > 0 {
			o.MaxTokens = n
		}
	}
}

// WithUser sets the user identifier
func WithUser(user string) Option {
	return func(o *OCROptions) {
		o.User = user
	}
}

// DefaultOptions returns the default OCR options
func DefaultOptions() *OCROptions {
	return &OCROptions{
		Language:  "auto",
		MaxTokens: 1024,
	}
}

// Apply builds options from the defaults plus opts
func Apply(opts ...Option) *OCROptions {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}
