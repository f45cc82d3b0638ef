// Package ollama is a minimal client for the Ollama text-generation API.
// It issues non-streamed /api/generate calls with a bounded wait and keeps
// the raw response body so callers can persist it alongside the result.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrEmptyResponse is returned when the service answers with HTTP success
// but no usable generated text.
var ErrEmptyResponse = errors.New("ollama: empty response")

type Client struct {
	baseURL string
	timeout time.Duration
	httpc   *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		httpc:   &http.Client{},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate posts the instruction to /api/generate and returns the trimmed
// generated text together with the raw response body. The call is bounded by
// the client's timeout; any network failure, non-2xx status, or empty text
// comes back as an error with whatever raw detail was available.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{Model: model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", "", fmt.Errorf("ollama: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("ollama: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("ollama: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", "", fmt.Errorf("ollama: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", string(raw), fmt.Errorf("ollama: unexpected status %s", resp.Status)
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", string(raw), fmt.Errorf("ollama: decoding response: %w", err)
	}

	text := strings.TrimSpace(out.Response)
	if text == "" {
		return "", string(raw), ErrEmptyResponse
	}

	// normalize line endings so stored prompt text is consistent
	text = strings.ReplaceAll(text, "\r\n", "\n")

	return text, string(raw), nil
}
