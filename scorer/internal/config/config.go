package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultLogLevel = "info"
	DefaultOutput   = "text"
)

// Config is the top-level scorer configuration.
// Fields map 1:1 to config.example.yaml.
type Config struct {
	// LogLevel is one of: debug | info | warn | error.
	LogLevel string `yaml:"log_level"`

	// Output selects the report format: text | json | yaml | prometheus.
	Output string `yaml:"output"`

	// Guide holds the scoring guide policy.
	Guide GuideConfig `yaml:"guide"`
}

// GuideConfig describes which jurisdictions the scoring guide treats as
// low-certification.
type GuideConfig struct {
	// LowCertificationStates lists state codes, e.g. ["FL", "NV"].
	// Matching is case-insensitive.
	LowCertificationStates []string `yaml:"low_certification_states"`

	// StatesEnv is the name of an environment variable holding additional
	// comma-separated state codes. Useful for per-deployment overrides.
	StatesEnv string `yaml:"states_env"`
}

// States returns the configured state codes merged with any resolved from
// StatesEnv, normalised to upper case with duplicates removed.
func (g GuideConfig) States() []string {
	all := append([]string(nil), g.LowCertificationStates...)
	if g.StatesEnv != "" {
		if v := os.Getenv(g.StatesEnv); v != "" {
			all = append(all, strings.Split(v, ",")...)
		}
	}

	seen := make(map[string]bool, len(all))
	out := make([]string, 0, len(all))
	for _, s := range all {
		code := normaliseState(s)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

// SlogLevel converts LogLevel to a slog.Level. Unknown values map to Info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a Config pre-populated with default values and an empty
// guide. It is what the scorer runs with when no config file is given.
func Defaults() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Output:   DefaultOutput,
	}
}

// validate checks enums and state codes.
func validate(cfg *Config) error {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	if err := ValidateOutput(cfg.Output); err != nil {
		return err
	}
	for i, s := range cfg.Guide.LowCertificationStates {
		code := normaliseState(s)
		if code == "" {
			return fmt.Errorf("guide.low_certification_states[%d]: empty state code", i)
		}
		if len(code) != 2 {
			return fmt.Errorf("guide.low_certification_states[%d]: %q is not a two-letter state code", i, s)
		}
	}
	return nil
}

// ValidateOutput reports whether format names a supported report format.
func ValidateOutput(format string) error {
	switch format {
	case "text", "json", "yaml", "prometheus":
		return nil
	default:
		return fmt.Errorf("unknown output %q", format)
	}
}

func normaliseState(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
