package llm

import (
	"context"
	"errors"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrEmptyResponse is returned when a backend answers without any content.
var ErrEmptyResponse = errors.New("llm returned an empty response")

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature *float64
	MaxTokens   int
	Model       string // Override default model
	JSONMode    bool   // Ask the backend to constrain output to a JSON object
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = &temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		if model != "" {
			o.Model = model
		}
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithJSONMode() Option {
	return func(o *Options) {
		o.JSONMode = true
	}
}

// Apply folds options over a base value.
func Apply(base Options, options ...Option) Options {
	for _, o := range options {
		o(&base)
	}
	return base
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
