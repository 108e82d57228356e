// Package config loads and validates the host configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/modelfusion/llamacpp-bindings/hostfuncs"
)

// validate is shared across calls; it caches struct metadata.
var validate = validator.New()

// Config is the host configuration.
type Config struct {
	// ModuleName is the import module guests use for the bindings.
	ModuleName string `yaml:"module_name" validate:"required,printascii,max=128"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`

	// MaxRequestSize bounds a single invocation read from guest memory.
	MaxRequestSize uint32 `yaml:"max_request_size" validate:"gte=64,lte=67108864"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ModuleName:     "llamacpp",
		LogLevel:       "info",
		LogFormat:      "text",
		MaxRequestSize: hostfuncs.DefaultMaxRequestSize,
	}
}

// Load reads the YAML file at path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against its validation tags.
func (c Config) Validate() error {
	if strings.ContainsAny(c.ModuleName, " \t") {
		return fmt.Errorf("config validation failed: ModuleName: must not contain whitespace")
	}

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config validation failed: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(msgs, "; "))
}

// SlogLevel returns LogLevel as a slog.Level.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger builds the host logger writing to w.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
