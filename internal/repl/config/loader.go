package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of YAML configuration files.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
	}
}

// LoadResult contains the result of loading a configuration file.
type LoadResult struct {
	Config *Config
	Errors []error
}

// fileConfig mirrors the YAML document. Pointers distinguish absent keys
// from zero values.
type fileConfig struct {
	Model          *string  `yaml:"model"`
	BaseURL        *string  `yaml:"baseURL"`
	Temperature    *float32 `yaml:"temperature"`
	MaxIterations  *int     `yaml:"maxIterations"`
	HistoryLimit   *int     `yaml:"historyLimit"`
	LogLevel       *string  `yaml:"logLevel"`
	Markdown       *bool    `yaml:"markdown"`
	SearchBaseURL  *string  `yaml:"searchBaseURL"`
	RequestTimeout *string  `yaml:"requestTimeout"`
	SearchTimeout  *string  `yaml:"searchTimeout"`
	Referer        *string  `yaml:"referer"`
	Title          *string  `yaml:"title"`
	Prompt         *string  `yaml:"prompt"`
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// LoadFromFile loads configuration from a YAML file.
// Returns the configuration and any non-fatal errors encountered.
// If the file doesn't exist, returns default configuration with no error.
func (l *Loader) LoadFromFile(path string) (*LoadResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Debug("config file not found, using defaults", zap.String("path", path))
			return &LoadResult{Config: DefaultConfig(), Errors: []error{}}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return l.LoadFromString(string(content))
}

// LoadFromString loads configuration from a YAML document. Invalid values
// are reported in LoadResult.Errors and replaced with their defaults.
func (l *Loader) LoadFromString(source string) (*LoadResult, error) {
	result := &LoadResult{
		Config: DefaultConfig(),
		Errors: []error{},
	}

	var raw fileConfig
	if err := yaml.Unmarshal([]byte(source), &raw); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("parse error: %w", err))
		// Continue with defaults on parse errors
		return result, nil
	}

	l.apply(&raw, result)

	for _, err := range result.Errors {
		l.logger.Warn("invalid config value", zap.Error(err))
	}

	return result, nil
}

func (l *Loader) apply(raw *fileConfig, result *LoadResult) {
	cfg := result.Config
	fail := func(format string, args ...interface{}) {
		result.Errors = append(result.Errors, fmt.Errorf(format, args...))
	}

	setString(&cfg.Model, raw.Model)
	setString(&cfg.BaseURL, raw.BaseURL)
	setString(&cfg.SearchBaseURL, raw.SearchBaseURL)
	setString(&cfg.Referer, raw.Referer)
	setString(&cfg.Title, raw.Title)
	if raw.Prompt != nil {
		cfg.Prompt = *raw.Prompt
	}
	if raw.Markdown != nil {
		cfg.Markdown = *raw.Markdown
	}

	if raw.Temperature != nil {
		if t := *raw.Temperature; t < 0 || t > 2 {
			fail("temperature must be between 0 and 2, got %v", t)
		} else {
			cfg.Temperature = t
		}
	}

	if raw.MaxIterations != nil {
		if n := *raw.MaxIterations; n < 1 {
			fail("maxIterations must be at least 1, got %d", n)
		} else {
			cfg.MaxIterations = n
		}
	}

	if raw.HistoryLimit != nil {
		if n := *raw.HistoryLimit; n < 2 || n%2 != 0 {
			fail("historyLimit must be an even number of at least 2, got %d", n)
		} else {
			cfg.HistoryLimit = n
		}
	}

	if raw.LogLevel != nil {
		level := strings.ToLower(strings.TrimSpace(*raw.LogLevel))
		if !lo.Contains(validLogLevels, level) {
			fail("logLevel must be one of %s, got %q", strings.Join(validLogLevels, ", "), *raw.LogLevel)
		} else {
			cfg.LogLevel = level
		}
	}

	setDuration := func(key string, dst *time.Duration, src *string) {
		if src == nil {
			return
		}
		d, err := time.ParseDuration(strings.TrimSpace(*src))
		if err != nil || d <= 0 {
			fail("%s must be a positive duration, got %q", key, *src)
			return
		}
		*dst = d
	}
	setDuration("requestTimeout", &cfg.RequestTimeout, raw.RequestTimeout)
	setDuration("searchTimeout", &cfg.SearchTimeout, raw.SearchTimeout)
}

func setString(dst *string, src *string) {
	if src != nil && strings.TrimSpace(*src) != "" {
		*dst = strings.TrimSpace(*src)
	}
}
