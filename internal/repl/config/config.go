// Package config provides configuration management for toolchat.
// Settings come from an optional YAML file; credentials come from the
// environment, optionally seeded from a .env file.
package config

import "time"

// Config holds all runtime settings.
type Config struct {
	// Model is the chat model identifier sent to the completion endpoint
	Model string

	// BaseURL is the OpenAI-compatible completion endpoint
	BaseURL string

	Temperature float32

	// MaxIterations bounds the model calls made for one turn
	MaxIterations int

	// HistoryLimit is the number of messages kept between turns
	HistoryLimit int

	// LogLevel controls logging verbosity
	LogLevel string

	// Markdown renders replies as markdown
	Markdown bool

	// SearchBaseURL is the Tavily endpoint
	SearchBaseURL string

	// RequestTimeout bounds a single chat completion request
	RequestTimeout time.Duration

	// SearchTimeout bounds a single Tavily request
	SearchTimeout time.Duration

	// Referer and Title are sent as OpenRouter attribution headers
	Referer string
	Title   string

	// Prompt is printed before each line of input
	Prompt string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Model:          "openai/gpt-3.5-turbo",
		BaseURL:        "https://openrouter.ai/api/v1",
		Temperature:    0.7,
		MaxIterations:  5,
		HistoryLimit:   10,
		LogLevel:       "info",
		Markdown:       true,
		SearchBaseURL:  "https://api.tavily.com",
		RequestTimeout: 60 * time.Second,
		SearchTimeout:  30 * time.Second,
		Referer:        "http://localhost:3000",
		Title:          "LangChain Tools Agent",
		Prompt:         "You: ",
	}
}
