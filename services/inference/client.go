package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the OpenAI-compatible inference API base URL
	DefaultBaseURL = "https://inference.do-ai.run"
	// DefaultTimeout is generous because LLM completions are slow
	DefaultTimeout = 120 * time.Second
	// DefaultModel is the model used when none is configured
	DefaultModel = "openai-gpt-oss-120b"
)

// Client talks to an OpenAI-compatible chat completion API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	model      string
}

// Config holds configuration for the inference client
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Model   string
}

// NewClient creates a new inference client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}

	return &Client{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		model: config.Model,
	}
}

// Message represents a message in the chat completion request
type Message struct {
	Role    string `json:"role"`    // "system", "user", "assistant"
	Content string `json:"content"` // The message content
}

// ResponseFormat requests a specific output format from the API
type ResponseFormat struct {
	Type string `json:"type"` // "text" or "json_object"
}

// Request is an OpenAI-compatible chat completion request
type Request struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	TopP           float64         `json:"top_p,omitempty"`
	Stream         bool            `json:"stream,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// Choice represents a choice in the completion response
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage represents token usage information
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response represents the chat completion response
type Response struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Option is a function that modifies the completion request
type Option func(*Request)

// WithTemperature sets the temperature for the request
func WithTemperature(temp float64) Option {
	return func(req *Request) {
		req.Temperature = temp
	}
}

// WithMaxTokens sets the max tokens for the request
func WithMaxTokens(tokens int) Option {
	return func(req *Request) {
		req.MaxTokens = tokens
	}
}

// WithModel sets a different model for the request
func WithModel(model string) Option {
	return func(req *Request) {
		req.Model = model
	}
}

// WithJSONOutput enables JSON object output mode
func WithJSONOutput() Option {
	return func(req *Request) {
		req.ResponseFormat = &ResponseFormat{Type: "json_object"}
	}
}

// ChatCompletion sends a chat completion request
func (c *Client) ChatCompletion(ctx context.Context, messages []Message, options ...Option) (*Response, error) {
	req := Request{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.3, // deterministic-ish output for structured tasks
		MaxTokens:   4096,
		Stream:      false,
	}

	for _, opt := range options {
		opt(&req)
	}

	return c.send(ctx, req)
}

func (c *Client) send(ctx context.Context, req Request) (*Response, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("inference API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result Response
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// SimpleCompletion is a convenience method for single-turn completions
func (c *Client) SimpleCompletion(ctx context.Context, systemPrompt, userPrompt string, options ...Option) (string, error) {
	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}

	resp, err := c.ChatCompletion(ctx, messages, options...)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from inference API")
	}

	return resp.Choices[0].Message.Content, nil
}

// JSONCompletion is a convenience method for getting JSON responses
func (c *Client) JSONCompletion(ctx context.Context, systemPrompt, userPrompt string, options ...Option) (string, error) {
	enhancedSystemPrompt := systemPrompt + "\n\nYou MUST respond with valid JSON only. Do not include any markdown formatting, code blocks, or explanatory text. Output raw JSON only."

	options = append(options, WithJSONOutput())
	return c.SimpleCompletion(ctx, enhancedSystemPrompt, userPrompt, options...)
}

// HealthCheck verifies the inference API is accessible
func (c *Client) HealthCheck(ctx context.Context) error {
	messages := []Message{
		{Role: "user", Content: "Say 'ok' if you can hear me."},
	}

	_, err := c.ChatCompletion(ctx, messages, WithMaxTokens(10))
	return err
}
