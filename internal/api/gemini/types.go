package gemini

import (
	"encoding/json"
	"fmt"
)

// Part is a single piece of content, text-only in this gateway.
type Part struct {
	Text string `json:"text,omitempty"`
}

// Content is a role-tagged sequence of parts.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerationConfig carries generation parameters. Only the fields this
// gateway sets are modeled.
type GenerationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

// GenerateContentRequest is the body of generateContent and
// streamGenerateContent calls.
type GenerateContentRequest struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate is one generated completion.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
	Index        int     `json:"index,omitempty"`
}

// GenerateContentResponse is both a full response and a single streamed
// chunk; the wire shape is identical.
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Text concatenates the text parts of the first candidate. Empty when the
// response carries no candidates (e.g. a safety block).
func (r *GenerateContentResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var out string
	for _, p := range r.Candidates[0].Content.Parts {
		out += p.Text
	}
	return out
}

// APIError is a non-200 error payload from the API.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: %s (code %d, status %s)", e.Message, e.Code, e.Status)
}

type errorResponse struct {
	Error *APIError `json:"error"`
}

// ParseErrorResponse decodes a non-200 body into an APIError. Returns nil if
// the body is not in the expected error envelope.
func ParseErrorResponse(body []byte) *APIError {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}
	return resp.Error
}
