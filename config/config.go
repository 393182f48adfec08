package config

import (
	"fmt"
	"time"
)

// Config holds scraper configuration.
type Config struct {
	Timeout          time.Duration `yaml:"timeout"`
	UserAgent        string        `yaml:"userAgent"`
	AcceptLanguage   string        `yaml:"acceptLanguage"`
	MaxBodySize      int           `yaml:"maxBodySize"`
	RespectRobotsTxt bool          `yaml:"respectRobotsTxt"`

	ImageTimeout   time.Duration `yaml:"imageTimeout"`
	MaxImageBytes  int           `yaml:"maxImageBytes"`
	MaxImagePixels int           `yaml:"maxImagePixels"`
	MaxImageWidth  int           `yaml:"maxImageWidth"`
	JPEGQuality    int           `yaml:"jpegQuality"`
	ImageDir       string        `yaml:"imageDir"`
	ImageURLPrefix string        `yaml:"imageURLPrefix"`

	Parallelism        int           `yaml:"parallelism"`
	MaxRetries         int           `yaml:"maxRetries"`
	RetryBackoff       time.Duration `yaml:"retryBackoff"`
	RetryBackoffMax    time.Duration `yaml:"retryBackoffMax"`
	PipelineBufferSize int           `yaml:"pipelineBufferSize"`
	BatchSize          int           `yaml:"batchSize"`
	DedupeMaxSize      int           `yaml:"dedupeMaxSize"`

	OutputFile   string `yaml:"outputFile"`
	OutputFormat string `yaml:"outputFormat"` // csv, json, or dual
	MetricsAddr  string `yaml:"metricsAddr"`
	Verbose      bool   `yaml:"verbose"`
}

// DefaultConfig returns defaults suited to scraping individual recipe pages.
func DefaultConfig() *Config {
	return &Config{
		Timeout:            15 * time.Second,
		UserAgent:          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		AcceptLanguage:     "en-US,en;q=0.9,es;q=0.8",
		MaxBodySize:        10 << 20,
		RespectRobotsTxt:   false,
		ImageTimeout:       10 * time.Second,
		MaxImageBytes:      15 << 20,
		MaxImagePixels:     89_478_485,
		MaxImageWidth:      1200,
		JPEGQuality:        85,
		ImageDir:           "output/images",
		ImageURLPrefix:     "/static/uploads/",
		Parallelism:        4,
		MaxRetries:         2,
		RetryBackoff:       500 * time.Millisecond,
		RetryBackoffMax:    5 * time.Second,
		PipelineBufferSize: 128,
		BatchSize:          16,
		DedupeMaxSize:      10000,
		OutputFile:         "output/recipes.csv",
		OutputFormat:       "csv",
		Verbose:            false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.MaxBodySize < 0 {
		return fmt.Errorf("max body size cannot be negative")
	}
	if c.ImageTimeout <= 0 {
		return fmt.Errorf("image timeout must be positive")
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("max image bytes must be positive")
	}
	if c.MaxImagePixels <= 0 {
		return fmt.Errorf("max image pixels must be positive")
	}
	if c.MaxImageWidth <= 0 {
		return fmt.Errorf("max image width must be positive")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality must be between 1 and 100")
	}
	if c.Parallelism <= 0 {
		return fmt.Errorf("parallelism must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if c.RetryBackoff < 0 {
		return fmt.Errorf("retry backoff cannot be negative")
	}
	if c.RetryBackoffMax < 0 {
		return fmt.Errorf("retry backoff max cannot be negative")
	}
	if c.RetryBackoffMax > 0 && c.RetryBackoff > c.RetryBackoffMax {
		return fmt.Errorf("retry backoff (%s) cannot exceed retry backoff max (%s)", c.RetryBackoff, c.RetryBackoffMax)
	}
	if c.PipelineBufferSize <= 0 {
		return fmt.Errorf("pipeline buffer size must be positive")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive")
	}
	if c.DedupeMaxSize < 0 {
		return fmt.Errorf("dedupe max size cannot be negative")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if c.OutputFormat != "csv" && c.OutputFormat != "json" && c.OutputFormat != "dual" {
		return fmt.Errorf("output format must be csv, json, or dual")
	}

	return nil
}
