// Package domain holds the provider-facing contracts shared between the HTTP
// frontdoor and the upstream generation adapter.
package domain

import "context"

// Event is one unit of a generation stream: a text fragment or a terminal
// error. Fragment boundaries carry no semantic meaning and may split
// multi-byte characters; consumers must treat the stream as opaque bytes.
type Event struct {
	Text string
	Err  error
}

// Generator produces text from a prompt. Stream returns a lazy, finite,
// non-restartable sequence of fragments: the channel closes on completion,
// and a mid-stream upstream failure is delivered as a final Event with Err
// set, after which the channel closes. There is no retry.
type Generator interface {
	// Stream begins a streaming generation. An error return means the
	// upstream call failed before any fragment was produced.
	Stream(ctx context.Context, prompt, systemInstruction string) (<-chan Event, error)

	// Complete runs the same generation non-streaming and returns the full
	// text.
	Complete(ctx context.Context, prompt, systemInstruction string) (string, error)
}
