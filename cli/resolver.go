package cli

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// loadConfig is a [kong.ConfigurationLoader] that reads a flat YAML mapping
// of flag names to values:
//
//	log-level: debug
//	log_pretty: true
//	max-input: 500
//	grammar: commands.yaml
//
// Keys may use hyphens or underscores. An empty file configures nothing.
// Command-line flags override config file values.
func loadConfig(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var values map[string]any

	if len(bytes.TrimSpace(data)) == 0 {
		return config{}, nil
	}

	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, err
	}

	cfg := make(config, len(values))

	for key, value := range values {
		cfg[strings.ReplaceAll(key, "_", "-")] = native(value)
	}

	return cfg, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// native converts a decoded YAML value to the form kong expects: numbers as
// strings and sequences as string slices.
func native(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = toString(native(item))
		}

		return out
	default:
		return v
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}
