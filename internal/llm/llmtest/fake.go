// Package llmtest provides an in-memory llm.Client for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/cv-tailor/internal/llm"
)

// Reply is one scripted response
type Reply struct {
	Text string
	Err  error
}

// Client replays scripted replies in order and records every request
type Client struct {
	mu       sync.Mutex
	replies  []Reply
	requests []llm.Request
	closed   bool
}

// New returns a Client that answers with the given texts in order
func New(texts ...string) *Client {
	c := &Client{}
	for _, t := range texts {
		c.replies = append(c.replies, Reply{Text: t})
	}
	return c
}

// WithError returns a Client whose first call fails with err
func WithError(err error) *Client {
	return &Client{replies: []Reply{{Err: err}}}
}

// Generate returns the next scripted reply
func (c *Client) Generate(ctx context.Context, req llm.Request) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests = append(c.requests, req)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(c.replies) == 0 {
		return "", fmt.Errorf("llmtest: no reply scripted for call %d", len(c.requests))
	}
	next := c.replies[0]
	c.replies = c.replies[1:]
	return next.Text, next.Err
}

// GetModel returns a fixed model name per tier
func (c *Client) GetModel(tier llm.ModelTier) string {
	return "fake-" + string(tier)
}

// Close marks the client closed
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Calls returns the number of Generate calls made so far
func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

// Requests returns a copy of the recorded requests
func (c *Client) Requests() []llm.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]llm.Request, len(c.requests))
	copy(out, c.requests)
	return out
}

// Closed reports whether Close was called
func (c *Client) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
