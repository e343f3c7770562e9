// Package gemini adapts the Gemini API client to the domain.Generator
// contract used by the relay frontdoor.
package gemini

import (
	"context"
	"net/http"

	geminiapi "github.com/lixumin/vocabvid-gateway/internal/api/gemini"
	"github.com/lixumin/vocabvid-gateway/internal/domain"
)

// ProviderOption configures the provider.
type ProviderOption func(*Provider)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(baseURL string) ProviderOption {
	return func(p *Provider) {
		p.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ProviderOption {
	return func(p *Provider) {
		p.httpClient = httpClient
	}
}

// Provider implements domain.Generator against the Gemini API.
type Provider struct {
	client     *geminiapi.Client
	model      string
	baseURL    string
	httpClient *http.Client
}

var _ domain.Generator = (*Provider)(nil)

// New creates a Gemini-backed generator for the given model.
func New(apiKey, model string, opts ...ProviderOption) *Provider {
	p := &Provider{model: model}
	for _, opt := range opts {
		opt(p)
	}

	var clientOpts []geminiapi.ClientOption
	if p.baseURL != "" {
		clientOpts = append(clientOpts, geminiapi.WithBaseURL(p.baseURL))
	}
	if p.httpClient != nil {
		clientOpts = append(clientOpts, geminiapi.WithHTTPClient(p.httpClient))
	}

	p.client = geminiapi.NewClient(apiKey, clientOpts...)
	return p
}

// Stream starts a streaming generation and converts API chunks to domain
// events. The returned channel closes when the upstream stream completes;
// an upstream failure mid-stream is a terminal Event with Err set.
func (p *Provider) Stream(ctx context.Context, prompt, systemInstruction string) (<-chan domain.Event, error) {
	stream, err := p.client.StreamGenerateContent(ctx, p.model, buildRequest(prompt, systemInstruction))
	if err != nil {
		return nil, err
	}

	out := make(chan domain.Event)
	go func() {
		defer close(out)
		for result := range stream {
			if result.Err != nil {
				select {
				case out <- domain.Event{Err: result.Err}:
				case <-ctx.Done():
				}
				return
			}
			if text := result.Chunk.Text(); text != "" {
				// Racing the send against cancellation keeps this goroutine
				// from leaking when the relay stops consuming mid-stream.
				select {
				case out <- domain.Event{Text: text}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Complete runs the generation non-streaming and returns the full text.
func (p *Provider) Complete(ctx context.Context, prompt, systemInstruction string) (string, error) {
	resp, err := p.client.GenerateContent(ctx, p.model, buildRequest(prompt, systemInstruction))
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func buildRequest(prompt, systemInstruction string) *geminiapi.GenerateContentRequest {
	req := &geminiapi.GenerateContentRequest{
		Contents: []geminiapi.Content{
			{
				Role:  "user",
				Parts: []geminiapi.Part{{Text: prompt}},
			},
		},
		GenerationConfig: &geminiapi.GenerationConfig{
			ResponseMIMEType: "text/plain",
		},
	}
	if systemInstruction != "" {
		req.SystemInstruction = &geminiapi.Content{
			Parts: []geminiapi.Part{{Text: systemInstruction}},
		}
	}
	return req
}
