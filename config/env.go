package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// EnvString returns the trimmed value of key when it is set and non-empty.
func EnvString(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// EnvInt parses key as an integer. ok is false when the variable is unset.
func EnvInt(key string) (int, bool, error) {
	raw, ok := EnvString(key)
	if !ok {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return value, true, nil
}

// EnvDuration parses key with time.ParseDuration.
func EnvDuration(key string) (time.Duration, bool, error) {
	raw, ok := EnvString(key)
	if !ok {
		return 0, false, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return value, true, nil
}

// EnvBool parses key with strconv.ParseBool.
func EnvBool(key string) (bool, bool, error) {
	raw, ok := EnvString(key)
	if !ok {
		return false, false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, fmt.Errorf("%s: %w", key, err)
	}
	return value, true, nil
}

// ApplyEnv overlays SCRAPER_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	ints := map[string]*int{
		"SCRAPER_PARALLEL":         &c.Parallelism,
		"SCRAPER_MAX_RETRIES":      &c.MaxRetries,
		"SCRAPER_MAX_IMAGE_WIDTH":  &c.MaxImageWidth,
		"SCRAPER_MAX_IMAGE_PIXELS": &c.MaxImagePixels,
		"SCRAPER_JPEG_QUALITY":     &c.JPEGQuality,
		"SCRAPER_BATCH_SIZE":       &c.BatchSize,
		"SCRAPER_DEDUPE_MAX_SIZE":  &c.DedupeMaxSize,
	}
	for key, dst := range ints {
		value, ok, err := EnvInt(key)
		if err != nil {
			return err
		}
		if ok {
			*dst = value
		}
	}

	durations := map[string]*time.Duration{
		"SCRAPER_TIMEOUT":           &c.Timeout,
		"SCRAPER_IMAGE_TIMEOUT":     &c.ImageTimeout,
		"SCRAPER_RETRY_BACKOFF":     &c.RetryBackoff,
		"SCRAPER_RETRY_BACKOFF_MAX": &c.RetryBackoffMax,
	}
	for key, dst := range durations {
		value, ok, err := EnvDuration(key)
		if err != nil {
			return err
		}
		if ok {
			*dst = value
		}
	}

	strs := map[string]*string{
		"SCRAPER_USER_AGENT":       &c.UserAgent,
		"SCRAPER_ACCEPT_LANGUAGE":  &c.AcceptLanguage,
		"SCRAPER_IMAGE_DIR":        &c.ImageDir,
		"SCRAPER_IMAGE_URL_PREFIX": &c.ImageURLPrefix,
		"SCRAPER_OUTPUT":           &c.OutputFile,
		"SCRAPER_FORMAT":           &c.OutputFormat,
		"SCRAPER_METRICS_ADDR":     &c.MetricsAddr,
	}
	for key, dst := range strs {
		if value, ok := EnvString(key); ok {
			*dst = value
		}
	}

	robots, ok, err := EnvBool("SCRAPER_RESPECT_ROBOTS")
	if err != nil {
		return err
	}
	if ok {
		c.RespectRobotsTxt = robots
	}
	return nil
}

// LoadFile overlays the YAML file at path onto c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", filepath.Base(path), err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}
