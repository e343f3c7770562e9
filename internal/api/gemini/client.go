// Package gemini is a minimal HTTP client for the Google generative-language
// API, covering the generateContent and streamGenerateContent endpoints.
package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client is a custom HTTP client for the Gemini API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Gemini API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateContent sends a non-streaming generation request.
func (c *Client) GenerateContent(ctx context.Context, model string, req *GenerateContentRequest) (*GenerateContentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if apiErr := ParseErrorResponse(respBody); apiErr != nil {
			return nil, apiErr
		}
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result GenerateContentResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &result, nil
}

// StreamResult wraps a chunk or error from streaming.
type StreamResult struct {
	Chunk *GenerateContentResponse
	Err   error
}

// StreamGenerateContent sends a streaming generation request and returns a
// channel of chunks. The channel closes when the upstream stream ends; a
// read or decode failure is delivered as a final StreamResult with Err set.
func (c *Client) StreamGenerateContent(ctx context.Context, model string, req *GenerateContentRequest) (<-chan StreamResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(resp.Body)
		if apiErr := ParseErrorResponse(respBody); apiErr != nil {
			return nil, apiErr
		}
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	out := make(chan StreamResult)
	go c.streamReader(ctx, resp.Body, out)
	return out, nil
}

// streamReader forwards decoded chunks until the body is exhausted or ctx is
// cancelled. Sends race against ctx.Done so an abandoned consumer cannot
// strand this goroutine on a blocked channel send.
func (c *Client) streamReader(ctx context.Context, body io.ReadCloser, out chan<- StreamResult) {
	defer close(out)
	defer body.Close()

	scanner := bufio.NewScanner(body)
	// Increase buffer size for potentially large chunks
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		// Skip empty lines
		if line == "" {
			continue
		}

		// Skip non-data lines
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")

		var chunk GenerateContentResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			select {
			case out <- StreamResult{Err: fmt.Errorf("failed to unmarshal chunk: %w", err)}:
			case <-ctx.Done():
			}
			return
		}

		select {
		case out <- StreamResult{Chunk: &chunk}:
		case <-ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil {
		select {
		case out <- StreamResult{Err: fmt.Errorf("stream read error: %w", err)}:
		case <-ctx.Done():
		}
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)
}
