package configx

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// EnvSource loads configuration from environment variables. FOO_BAR=1 becomes
// {"foo": {"bar": 1}}.
type EnvSource struct {
	prefix   string
	priority int
	environ  func() []string
}

// NewEnvSource creates a new environment variable source
func NewEnvSource(prefix string, priority int) Source {
	return &EnvSource{
		prefix:   prefix,
		priority: priority,
		environ:  os.Environ,
	}
}

func (s *EnvSource) Load() (map[string]any, error) {
	result := make(map[string]any)

	for _, env := range s.environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if s.prefix != "" {
			if !strings.HasPrefix(key, s.prefix) {
				continue
			}
			key = strings.TrimPrefix(key, s.prefix)
		}
		key = strings.Trim(strings.ToLower(key), "_")
		if key == "" {
			continue
		}
		setNested(result, strings.Split(key, "_"), convertValue(value))
	}

	return result, nil
}

func (s *EnvSource) Name() string {
	return fmt.Sprintf("env(%s)", s.prefix)
}

func (s *EnvSource) Priority() int {
	return s.priority
}

// DotEnvSource loads configuration from a .env file using the same key
// nesting as EnvSource
type DotEnvSource struct {
	path     string
	priority int
}

// NewDotEnvSource creates a new .env file source
func NewDotEnvSource(path string, priority int) Source {
	return &DotEnvSource{
		path:     path,
		priority: priority,
	}
}

func (s *DotEnvSource) Load() (map[string]any, error) {
	result := make(map[string]any)

	file, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open .env file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if len(value) > 1 && (value[0] == '"' && value[len(value)-1] == '"' ||
			value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}

		setNested(result, strings.Split(key, "_"), convertValue(value))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}
	return result, nil
}

func (s *DotEnvSource) Name() string {
	return fmt.Sprintf("dotenv(%s)", s.path)
}

func (s *DotEnvSource) Priority() int {
	return s.priority
}

// MapSource loads configuration from a map, keys may use dot notation
type MapSource struct {
	values   map[string]any
	name     string
	priority int
}

// NewMapSource creates a new map source
func NewMapSource(values map[string]any, name string, priority int) Source {
	expanded := make(map[string]any)
	for k, v := range values {
		setNested(expanded, strings.Split(k, "."), v)
	}
	return &MapSource{
		values:   expanded,
		name:     name,
		priority: priority,
	}
}

func (s *MapSource) Load() (map[string]any, error) {
	return deepCopyMap(s.values), nil
}

func (s *MapSource) Name() string {
	return s.name
}

func (s *MapSource) Priority() int {
	return s.priority
}

// setNested stores value under the path. Nested keys win over a scalar at
// the same position: TMP=/tmp never hides TMP_DIR, whatever the order.
func setNested(result map[string]any, path []string, value any) {
	current := result
	for _, part := range path[:len(path)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	last := path[len(path)-1]
	if existing, ok := current[last].(map[string]any); ok {
		if m, ok := value.(map[string]any); ok {
			mergeMapRecursive(existing, m)
		}
		return
	}
	current[last] = value
}

// convertValue turns booleans and plain integers into typed values
func convertValue(value string) any {
	switch strings.ToLower(value) {
	case "true", "yes":
		return true
	case "false", "no":
		return false
	}
	if i, err := strconv.Atoi(value); err == nil {
		// leading zeros stay strings, e.g. account ids
		if value == "0" || !strings.HasPrefix(value, "0") {
			return i
		}
	}
	return value
}
