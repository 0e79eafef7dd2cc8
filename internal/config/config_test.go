package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Mode != "text_optimised" {
		t.Errorf("mode: got %q, want %q", cfg.Mode, "text_optimised")
	}
	if cfg.MinConfidence != 30 {
		t.Errorf("min confidence: got %g, want 30", cfg.MinConfidence)
	}
	if !cfg.Denoise {
		t.Error("denoise should default on")
	}
	if cfg.Language != "eng" {
		t.Errorf("language: got %q, want %q", cfg.Language, "eng")
	}
	if len(cfg.Formats) != 1 || cfg.Formats[0] != "json" {
		t.Errorf("formats: got %v, want [json]", cfg.Formats)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	body := []byte("mode: otsu\nmin_confidence: 55\nlanguage: deu\nformats:\n  - csv\n  - txt\n")
	if err := os.WriteFile(filepath.Join(dir, "labelscan.yaml"), body, 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Mode != "otsu" {
		t.Errorf("mode: got %q, want %q", cfg.Mode, "otsu")
	}
	if cfg.MinConfidence != 55 {
		t.Errorf("min confidence: got %g, want 55", cfg.MinConfidence)
	}
	if cfg.Language != "deu" {
		t.Errorf("language: got %q, want %q", cfg.Language, "deu")
	}
	if len(cfg.Formats) != 2 {
		t.Errorf("formats: got %v", cfg.Formats)
	}
	// Unset keys keep their defaults.
	if !cfg.Denoise {
		t.Error("denoise should stay at its default")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "labelscan.yaml"), []byte("mode: [unterminated"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("malformed config should fail loading")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Mode:          "otsu",
			MinConfidence: 30,
			Language:      "eng",
			Formats:       []string{"json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"confidence too high", func(c *Config) { c.MinConfidence = 150 }, true},
		{"confidence negative", func(c *Config) { c.MinConfidence = -1 }, true},
		{"negative resize", func(c *Config) { c.ResizeWidth = -10 }, true},
		{"negative timeout", func(c *Config) { c.OCRTimeoutSeconds = -1 }, true},
		{"empty language", func(c *Config) { c.Language = "" }, true},
		{"unknown format", func(c *Config) { c.Formats = []string{"pdf"} }, true},
		{"all formats", func(c *Config) { c.Formats = []string{"json", "csv", "txt", "xlsx"} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate: err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestOCRTimeout(t *testing.T) {
	cfg := Config{OCRTimeoutSeconds: 5}
	if cfg.OCRTimeout() != 5*time.Second {
		t.Errorf("timeout: got %v, want 5s", cfg.OCRTimeout())
	}

	cfg.OCRTimeoutSeconds = 0
	if cfg.OCRTimeout() != 0 {
		t.Errorf("zero timeout: got %v, want 0", cfg.OCRTimeout())
	}
}
