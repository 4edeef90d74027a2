package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader(nil)
	assert.NotNil(t, loader)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "openai/gpt-3.5-turbo", cfg.Model)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.BaseURL)
	assert.InDelta(t, 0.7, cfg.Temperature, 0.0001)
	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Markdown)
	assert.Equal(t, "https://api.tavily.com", cfg.SearchBaseURL)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.SearchTimeout)
	assert.Equal(t, "You: ", cfg.Prompt)
}

func TestLoader_LoadFromString_EmptySource(t *testing.T) {
	loader := NewLoader(zaptest.NewLogger(t))
	result, err := loader.LoadFromString("")

	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, DefaultConfig(), result.Config)
}

func TestLoader_LoadFromString_AllKeys(t *testing.T) {
	source := `
model: mistralai/mistral-7b-instruct
baseURL: http://localhost:8080/v1
temperature: 0
maxIterations: 3
historyLimit: 6
logLevel: DEBUG
markdown: false
searchBaseURL: http://localhost:9090
requestTimeout: 15s
searchTimeout: 5s
referer: https://example.com
title: My Agent
prompt: "> "
`
	loader := NewLoader(zaptest.NewLogger(t))
	result, err := loader.LoadFromString(source)

	require.NoError(t, err)
	assert.Empty(t, result.Errors)

	cfg := result.Config
	assert.Equal(t, "mistralai/mistral-7b-instruct", cfg.Model)
	assert.Equal(t, "http://localhost:8080/v1", cfg.BaseURL)
	assert.Equal(t, float32(0), cfg.Temperature)
	assert.Equal(t, 3, cfg.MaxIterations)
	assert.Equal(t, 6, cfg.HistoryLimit)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Markdown)
	assert.Equal(t, "http://localhost:9090", cfg.SearchBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.SearchTimeout)
	assert.Equal(t, "https://example.com", cfg.Referer)
	assert.Equal(t, "My Agent", cfg.Title)
	assert.Equal(t, "> ", cfg.Prompt)
}

func TestLoader_LoadFromString_PartialKeepsDefaults(t *testing.T) {
	loader := NewLoader(nil)
	result, err := loader.LoadFromString("model: openai/gpt-4o-mini\n")

	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "openai/gpt-4o-mini", result.Config.Model)
	assert.Equal(t, 10, result.Config.HistoryLimit)
	assert.Equal(t, 5, result.Config.MaxIterations)
}

func TestLoader_LoadFromString_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "temperature out of range",
			source:  "temperature: 2.5",
			message: "temperature must be between 0 and 2",
			check:   func(t *testing.T, cfg *Config) { assert.InDelta(t, 0.7, cfg.Temperature, 0.0001) },
		},
		{
			name:    "zero iterations",
			source:  "maxIterations: 0",
			message: "maxIterations must be at least 1",
			check:   func(t *testing.T, cfg *Config) { assert.Equal(t, 5, cfg.MaxIterations) },
		},
		{
			name:    "odd history limit",
			source:  "historyLimit: 7",
			message: "historyLimit must be an even number",
			check:   func(t *testing.T, cfg *Config) { assert.Equal(t, 10, cfg.HistoryLimit) },
		},
		{
			name:    "history limit too small",
			source:  "historyLimit: 0",
			message: "historyLimit must be an even number",
			check:   func(t *testing.T, cfg *Config) { assert.Equal(t, 10, cfg.HistoryLimit) },
		},
		{
			name:    "unknown log level",
			source:  "logLevel: verbose",
			message: "logLevel must be one of debug, info, warn, error",
			check:   func(t *testing.T, cfg *Config) { assert.Equal(t, "info", cfg.LogLevel) },
		},
		{
			name:    "bad duration",
			source:  "requestTimeout: soon",
			message: "requestTimeout must be a positive duration",
			check:   func(t *testing.T, cfg *Config) { assert.Equal(t, 60*time.Second, cfg.RequestTimeout) },
		},
		{
			name:    "negative duration",
			source:  "requestTimeout: -1s",
			message: "requestTimeout must be a positive duration",
			check:   func(t *testing.T, cfg *Config) { assert.Equal(t, 60*time.Second, cfg.RequestTimeout) },
		},
		{
			name:    "bad search timeout",
			source:  "searchTimeout: 0s",
			message: "searchTimeout must be a positive duration",
			check:   func(t *testing.T, cfg *Config) { assert.Equal(t, 30*time.Second, cfg.SearchTimeout) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewLoader(zaptest.NewLogger(t)).LoadFromString(tt.source)

			require.NoError(t, err)
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0].Error(), tt.message)
			tt.check(t, result.Config)
		})
	}
}

func TestLoader_LoadFromString_ParseError(t *testing.T) {
	result, err := NewLoader(nil).LoadFromString("model: [unclosed")

	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error(), "parse error")
	assert.Equal(t, DefaultConfig(), result.Config)
}

func TestLoader_LoadFromString_BlankStringsIgnored(t *testing.T) {
	result, err := NewLoader(nil).LoadFromString(`model: "  "`)

	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "openai/gpt-3.5-turbo", result.Config.Model)
}

func TestLoader_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: test/model\nmaxIterations: 2\n"), 0644))

	result, err := NewLoader(nil).LoadFromFile(path)

	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "test/model", result.Config.Model)
	assert.Equal(t, 2, result.Config.MaxIterations)
}

func TestLoader_LoadFromFile_Missing(t *testing.T) {
	result, err := NewLoader(nil).LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, DefaultConfig(), result.Config)
}

func TestLoader_LoadFromFile_Directory(t *testing.T) {
	_, err := NewLoader(nil).LoadFromFile(t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
