package configx

import (
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/Abraxas-365/imagetext/errx"
)

var (
	configErrors = errx.NewRegistry("CONFIG")

	ErrMissingEnv   = configErrors.Register("MISSING_ENV", errx.TypeSystem, http.StatusInternalServerError, "Missing required environment variables")
	ErrSourceFailed = configErrors.Register("SOURCE_FAILED", errx.TypeSystem, http.StatusInternalServerError, "Failed to load configuration source")
)

// Config represents the main configuration interface
type Config interface {
	// Get retrieves a configuration value by key, nested keys use dot notation
	Get(key string) Value

	// Set sets a configuration value
	Set(key string, val any)

	// Has checks if a configuration key exists
	Has(key string) bool

	// AllSettings returns a copy of all settings
	AllSettings() map[string]any

	// AddSource adds a configuration source and merges it immediately
	AddSource(source Source) error

	// LoadAll reloads all configuration sources in priority order
	LoadAll() error
}

// Source represents a configuration source
type Source interface {
	Load() (map[string]any, error)
	Name() string
	// Priority orders sources, higher values override lower
	Priority() int
}

const (
	PriorityDefault = 10
	PriorityEnv     = 20
	PriorityDotEnv  = 25
	PriorityMap     = 40
)

// configuration is the concrete implementation of Config
type configuration struct {
	sync.RWMutex
	values  map[string]any
	sources []Source
}

// New creates an empty Config
func New() Config {
	return &configuration{
		values: make(map[string]any),
	}
}

func (c *configuration) Get(key string) Value {
	c.RLock()
	defer c.RUnlock()

	if key == "" {
		return newValue("", c.values)
	}
	return newValue(key, c.findValue(key))
}

// findValue walks nested maps following the dot separated key
func (c *configuration) findValue(key string) any {
	current := c.values
	parts := strings.Split(key, ".")

	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return nil
		}
		if i == len(parts)-1 {
			return v
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		current = m
	}
	return nil
}

// Set overrides a value in memory; the next LoadAll discards it
func (c *configuration) Set(key string, val any) {
	c.Lock()
	defer c.Unlock()

	parts := strings.Split(key, ".")
	current := c.values
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = val
}

func (c *configuration) Has(key string) bool {
	c.RLock()
	defer c.RUnlock()
	return c.findValue(key) != nil
}

func (c *configuration) AllSettings() map[string]any {
	c.RLock()
	defer c.RUnlock()
	return deepCopyMap(c.values)
}

func (c *configuration) AddSource(source Source) error {
	c.Lock()
	c.sources = append(c.sources, source)
	sort.SliceStable(c.sources, func(i, j int) bool {
		return c.sources[i].Priority() < c.sources[j].Priority()
	})
	c.Unlock()

	return c.LoadAll()
}

func (c *configuration) LoadAll() error {
	c.Lock()
	defer c.Unlock()

	merged := make(map[string]any)
	for _, source := range c.sources {
		data, err := source.Load()
		if err != nil {
			return configErrors.NewWithCause(ErrSourceFailed, err).
				WithDetail("source", source.Name())
		}
		mergeMapRecursive(merged, data)
	}
	c.values = merged
	return nil
}

// mergeMapRecursive merges src into dst, nested maps are merged key by key.
// A scalar never replaces a nested map already in dst.
func mergeMapRecursive(dst, src map[string]any) {
	for k, v := range src {
		srcMap, ok := v.(map[string]any)
		if !ok {
			if _, nested := dst[k].(map[string]any); !nested {
				dst[k] = v
			}
			continue
		}
		if dstMap, ok := dst[k].(map[string]any); ok {
			mergeMapRecursive(dstMap, srcMap)
			continue
		}
		dst[k] = deepCopyMap(srcMap)
	}
}

func deepCopyMap(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case map[string]any:
			result[k] = deepCopyMap(val)
		case []any:
			cp := make([]any, len(val))
			copy(cp, val)
			result[k] = cp
		default:
			result[k] = val
		}
	}
	return result
}

// RequireEnv fails when any of the variables is unset or empty
func RequireEnv(envVars ...string) error {
	var missing []string
	for _, env := range envVars {
		if os.Getenv(env) == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return configErrors.New(ErrMissingEnv).
			WithDetail("variables", strings.Join(missing, ", "))
	}
	return nil
}

//-----------------------------------------------------------------------------
// Builder
//-----------------------------------------------------------------------------

// Builder provides a fluent API for building configuration
type Builder interface {
	FromEnv(prefix string) Builder
	FromDotEnv(path string) Builder
	FromMap(values map[string]any, name string) Builder
	WithDefaults(defaults map[string]any) Builder
	RequireEnv(envVars ...string) Builder
	Build() (Config, error)
}

type builder struct {
	sources     []Source
	requiredEnv []string
}

// NewBuilder creates a new configuration builder
func NewBuilder() Builder {
	return &builder{}
}

func (b *builder) FromEnv(prefix string) Builder {
	b.sources = append(b.sources, NewEnvSource(prefix, PriorityEnv))
	return b
}

// FromDotEnv adds a .env file. A missing file is ignored.
func (b *builder) FromDotEnv(path string) Builder {
	b.sources = append(b.sources, NewDotEnvSource(path, PriorityDotEnv))
	return b
}

func (b *builder) FromMap(values map[string]any, name string) Builder {
	b.sources = append(b.sources, NewMapSource(values, name, PriorityMap))
	return b
}

func (b *builder) WithDefaults(defaults map[string]any) Builder {
	b.sources = append(b.sources, NewMapSource(defaults, "defaults", PriorityDefault))
	return b
}

func (b *builder) RequireEnv(envVars ...string) Builder {
	b.requiredEnv = append(b.requiredEnv, envVars...)
	return b
}

func (b *builder) Build() (Config, error) {
	if err := RequireEnv(b.requiredEnv...); err != nil {
		return nil, err
	}

	cfg := &configuration{values: make(map[string]any)}
	cfg.sources = append(cfg.sources, b.sources...)
	sort.SliceStable(cfg.sources, func(i, j int) bool {
		return cfg.sources[i].Priority() < cfg.sources[j].Priority()
	})

	if err := cfg.LoadAll(); err != nil {
		return nil, err
	}
	return cfg, nil
}
