package interpreter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// chatOptions tunes the model for deterministic extraction.
type chatOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
	NumCtx      int     `json:"num_ctx,omitempty"`
}

// OllamaClient implements LanguageModel against an Ollama-compatible chat
// endpoint.
type OllamaClient struct {
	endpoint   string
	model      string
	httpClient *http.Client
	options    chatOptions
}

var _ LanguageModel = (*OllamaClient)(nil)

// NewOllamaClient creates a client for the given base endpoint and model.
func NewOllamaClient(baseEndpoint, model string) *OllamaClient {
	return &OllamaClient{
		endpoint:   baseEndpoint + "/api/chat",
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		options: chatOptions{
			Temperature: 0.1,
			TopP:        0.9,
			NumCtx:      8192,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format,omitempty"`
	Options  chatOptions   `json:"options,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// Complete sends the system prompt and user text, returning the model's raw
// response content. Transport and status failures are returned as errors;
// deciding whether the content is usable is the caller's job.
func (c *OllamaClient) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userText},
		},
		Stream:  false,
		Format:  "json",
		Options: c.options,
	}
	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("llm: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("llm: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm: %s: %s", resp.Status, body)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		// Pass the raw body through; the interpreter decides usability.
		return string(body), nil
	}
	return cr.Message.Content, nil
}
