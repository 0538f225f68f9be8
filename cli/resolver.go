package cli

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tnsora/log"
)

// resolveYAML is a [kong.ConfigurationLoader] for YAML configuration files.
//
// Keys name flags without the leading dashes. Hyphens and underscores are
// interchangeable:
//
//	log-level: debug
//	log_format: text
//	encoding: windows-1252
//	source:
//	  - /etc/oracle/tnsnames.ora
//
// Command-line flags and environment variables override file values.
// A file that does not parse yields an empty configuration.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	var raw map[string]any

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		log.Warn("ignoring invalid configuration", slog.Any("error", err))

		return config{}, nil
	}

	cfg := make(config, len(raw))
	for key, value := range raw {
		cfg[strings.ReplaceAll(key, "_", "-")] = normalize(value)
	}

	return cfg, nil
}

// config implements [kong.Resolver] over a flat map keyed by flag name.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	return nil, nil
}

// normalize converts decoded YAML scalars to the forms kong parses: numbers
// become strings and sequences are normalized element-wise.
func normalize(value any) any {
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
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}

		return out
	default:
		return v
	}
}
