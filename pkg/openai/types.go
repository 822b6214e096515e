package openai

import (
	"errors"
	"time"
)

// Config holds client settings for one OpenAI-compatible endpoint.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Validate checks required fields.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("openai: API key is required")
	}
	if c.Model == "" {
		return errors.New("openai: model is required")
	}
	return nil
}

// Message is one chat turn.
type Message struct {
	Role    string
	Content string
}

// Request is a single chat completion call.
type Request struct {
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
	// JSONMode asks the endpoint for a JSON object response.
	JSONMode bool
}

// Response is the first choice of a completion.
type Response struct {
	Text  string
	Usage Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
