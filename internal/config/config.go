// Package config loads run configuration from an optional labelscan.yaml
// file, LABELSCAN_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/shelfscan/labelscan/internal/preprocess"
)

// Config holds every tunable of a run. Values are resolved once at
// startup; the pipeline receives them by value and never mutates them.
type Config struct {
	Mode              string   `mapstructure:"mode"`
	MinConfidence     float64  `mapstructure:"min_confidence"`
	ResizeWidth       int      `mapstructure:"resize_width"`
	Denoise           bool     `mapstructure:"denoise"`
	Language          string   `mapstructure:"language"`
	OCRTimeoutSeconds int      `mapstructure:"ocr_timeout_seconds"`
	Workers           int      `mapstructure:"workers"`
	OutputDir         string   `mapstructure:"output_dir"`
	Formats           []string `mapstructure:"formats"`
}

// ValidFormats lists the accepted export format names.
var ValidFormats = []string{"json", "csv", "txt", "xlsx"}

// Load reads labelscan.yaml from dir (or the working directory when dir
// is empty) if present, overlays LABELSCAN_* environment variables and
// returns the merged configuration. A missing config file is not an
// error; a malformed one is.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.SetConfigName("labelscan")
	v.SetConfigType("yaml")
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)

	v.SetEnvPrefix("LABELSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", preprocess.ModeTextOptimised.String())
	v.SetDefault("min_confidence", 30.0)
	v.SetDefault("resize_width", 0)
	v.SetDefault("denoise", true)
	v.SetDefault("language", "eng")
	v.SetDefault("ocr_timeout_seconds", 0)
	v.SetDefault("workers", 0)
	v.SetDefault("output_dir", ".")
	v.SetDefault("formats", []string{"json"})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no run could make sense of.
func (c Config) Validate() error {
	if c.MinConfidence < 0 || c.MinConfidence > 100 {
		return fmt.Errorf("min_confidence must be within [0, 100], got %g", c.MinConfidence)
	}
	if c.ResizeWidth < 0 {
		return fmt.Errorf("resize_width must not be negative, got %d", c.ResizeWidth)
	}
	if c.OCRTimeoutSeconds < 0 {
		return fmt.Errorf("ocr_timeout_seconds must not be negative, got %d", c.OCRTimeoutSeconds)
	}
	if c.Language == "" {
		return fmt.Errorf("language must not be empty")
	}
	for _, f := range c.Formats {
		if !validFormat(f) {
			return fmt.Errorf("unknown export format %q (valid: %s)", f, strings.Join(ValidFormats, ", "))
		}
	}
	return nil
}

// OCRTimeout converts the configured timeout to a duration, zero meaning
// unbounded.
func (c Config) OCRTimeout() time.Duration {
	return time.Duration(c.OCRTimeoutSeconds) * time.Second
}

func validFormat(name string) bool {
	for _, f := range ValidFormats {
		if f == name {
			return true
		}
	}
	return false
}
