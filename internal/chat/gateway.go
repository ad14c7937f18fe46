package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

var (
	ErrEmptyMessage       = errors.New("message must be a non-empty string")
	ErrProvidersExhausted = errors.New("all chat providers failed")
)

const (
	defaultAttemptTimeout = 15 * time.Second
	defaultDeadline       = 45 * time.Second
)

// Message is one turn of a conversation, as sent by the client.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider generates a reply from one upstream text model.
type Provider interface {
	Model() string
	Generate(ctx context.Context, history []Message, message string) (string, error)
}

// Gateway bridges chat requests to an ordered chain of providers. Providers
// are tried in sequence under a per-attempt timeout and a cumulative
// deadline; the first success wins and exhaustion surfaces every attempt's
// error.
type Gateway struct {
	providers      []Provider
	attemptTimeout time.Duration
	deadline       time.Duration
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithAttemptTimeout bounds each provider attempt.
func WithAttemptTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.attemptTimeout = d }
}

// WithDeadline bounds the whole fallback chain.
func WithDeadline(d time.Duration) Option {
	return func(g *Gateway) { g.deadline = d }
}

func NewGateway(providers []Provider, opts ...Option) *Gateway {
	g := &Gateway{
		providers:      providers,
		attemptTimeout: defaultAttemptTimeout,
		deadline:       defaultDeadline,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Chat returns the first successful provider reply for the message, given
// the prior conversation history.
func (g *Gateway) Chat(ctx context.Context, message string, history []Message) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	if len(g.providers) == 0 {
		return "", fmt.Errorf("%w: no providers configured", ErrProvidersExhausted)
	}

	ctx, cancel := context.WithTimeout(ctx, g.deadline)
	defer cancel()

	var attemptErrs []error
	for _, p := range g.providers {
		if err := ctx.Err(); err != nil {
			attemptErrs = append(attemptErrs, err)
			break
		}

		attemptCtx, cancelAttempt := context.WithTimeout(ctx, g.attemptTimeout)
		reply, err := p.Generate(attemptCtx, history, message)
		cancelAttempt()

		if err == nil {
			return reply, nil
		}
		log.Printf("[Chat] Model %s failed: %v", p.Model(), err)
		attemptErrs = append(attemptErrs, fmt.Errorf("%s: %w", p.Model(), err))
	}

	return "", fmt.Errorf("%w: %w", ErrProvidersExhausted, errors.Join(attemptErrs...))
}
