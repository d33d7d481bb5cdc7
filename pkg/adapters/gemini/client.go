// Package gemini implements ports.LLM on top of the Google Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/aretw0/talentscout/pkg/ports"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gemini-2.5-flash"

// ErrMissingAPIKey is returned when Config.APIKey is empty.
var ErrMissingAPIKey = errors.New("gemini: API key is required")

// Config holds the client settings.
type Config struct {
	APIKey string
	Model  string

	// Temperature is passed to the model when non-nil.
	Temperature *float32

	// BaseURL overrides the API endpoint (tests, proxies).
	BaseURL string
}

// Client sends single-turn, non-streaming prompts to Gemini.
type Client struct {
	client      *genai.Client
	model       string
	temperature *float32
}

// New creates a Client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
	}, nil
}

// Model returns the model name requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// Generate implements ports.LLM.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var config *genai.GenerateContentConfig
	if c.temperature != nil {
		config = &genai.GenerateContentConfig{Temperature: c.temperature}
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	if result == nil {
		return "", errors.New("gemini: empty response")
	}
	return result.Text(), nil
}

var _ ports.LLM = (*Client)(nil)
