package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "negative parallelism",
			mutate: func(cfg *Config) {
				cfg.Parallelism = -1
			},
			wantErr: "parallelism",
		},
		{
			name: "negative timeout",
			mutate: func(cfg *Config) {
				cfg.Timeout = -1 * time.Second
			},
			wantErr: "timeout",
		},
		{
			name: "zero image timeout",
			mutate: func(cfg *Config) {
				cfg.ImageTimeout = 0
			},
			wantErr: "image timeout",
		},
		{
			name: "jpeg quality out of range",
			mutate: func(cfg *Config) {
				cfg.JPEGQuality = 101
			},
			wantErr: "jpeg quality",
		},
		{
			name: "zero pixel budget",
			mutate: func(cfg *Config) {
				cfg.MaxImagePixels = 0
			},
			wantErr: "max image pixels",
		},
		{
			name: "backoff above max",
			mutate: func(cfg *Config) {
				cfg.RetryBackoff = time.Minute
				cfg.RetryBackoffMax = time.Second
			},
			wantErr: "retry backoff",
		},
		{
			name: "unknown format",
			mutate: func(cfg *Config) {
				cfg.OutputFormat = "xml"
			},
			wantErr: "output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SCRAPER_PARALLEL", "9")
	t.Setenv("SCRAPER_TIMEOUT", "3s")
	t.Setenv("SCRAPER_OUTPUT", "out/x.json")
	t.Setenv("SCRAPER_RESPECT_ROBOTS", "true")
	t.Setenv("SCRAPER_MAX_IMAGE_PIXELS", "1000000")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Parallelism != 9 || cfg.Timeout != 3*time.Second || cfg.OutputFile != "out/x.json" || !cfg.RespectRobotsTxt || cfg.MaxImagePixels != 1000000 {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("SCRAPER_MAX_RETRIES", "many")

	if err := DefaultConfig().ApplyEnv(); err == nil || !strings.Contains(err.Error(), "SCRAPER_MAX_RETRIES") {
		t.Fatalf("expected SCRAPER_MAX_RETRIES error, got %v", err)
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraper.yaml")
	data := "timeout: 7s\nparallelism: 2\noutputFormat: dual\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := DefaultConfig()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("load file: %v", err)
	}
	if cfg.Timeout != 7*time.Second || cfg.Parallelism != 2 || cfg.OutputFormat != "dual" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.JPEGQuality != 85 {
		t.Fatalf("jpeg quality = %d, want default 85", cfg.JPEGQuality)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if err := DefaultConfig().LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
