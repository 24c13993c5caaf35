// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go"

	"github.com/jeranaias/deepseek-hud/internal/model"
)

// eventBuffer is the capacity of a session's event channel. Tokens are small,
// so a modest buffer lets the worker run ahead of a busy UI loop.
const eventBuffer = 64

// =============================================================================
// EVENT TYPES
// =============================================================================

// EventKind identifies the type of a streaming event.
type EventKind int

const (
	// EventToken carries one incremental content fragment.
	EventToken EventKind = iota
	// EventCompleted carries the full reply; it is always the last event.
	EventCompleted
	// EventFailed carries the failure; it is always the last event.
	EventFailed
)

// String returns a short name for the kind.
func (k EventKind) String() string {
	switch k {
	case EventToken:
		return "token"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is a single notification produced by a streaming session.
type Event struct {
	// SessionID identifies the request that produced the event.
	SessionID string

	Kind EventKind

	// Text is the token for EventToken and the full reply for EventCompleted.
	Text string

	// Err is set for EventFailed.
	Err error
}

// IsTerminal returns true for EventCompleted and EventFailed.
func (e Event) IsTerminal() bool {
	return e.Kind == EventCompleted || e.Kind == EventFailed
}

// Description returns the human-readable failure text of an EventFailed.
func (e Event) Description() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Session is one in-flight streaming request.
type Session struct {
	ID     string
	Events <-chan Event
}

// Streamer starts streaming requests. Client implements it; tests use fakes.
type Streamer interface {
	Stream(ctx context.Context, history []model.Message) Session
}

var _ Streamer = (*Client)(nil)

// =============================================================================
// STREAMING CHAT
// =============================================================================

// Stream starts a streaming chat completion over the given history and
// returns immediately. The history slice is read by the worker and must not
// be modified by the caller afterwards; pass a snapshot.
func (c *Client) Stream(ctx context.Context, history []model.Message) Session {
	id := uuid.NewString()
	events := make(chan Event, eventBuffer)
	go c.run(ctx, id, history, events)
	return Session{ID: id, Events: events}
}

// run owns the accumulating buffer for one session. It never retries.
func (c *Client) run(ctx context.Context, id string, history []model.Message, out chan<- Event) {
	defer close(out)

	log := c.log.With().Str("session", id).Logger()

	// send delivers ev unless the session was cancelled.
	send := func(ev Event) bool {
		ev.SessionID = id
		select {
		case out <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !c.IsConfigured() {
		log.Warn().Msg("stream requested without API key")
		send(Event{Kind: EventFailed, Err: &StreamError{Reason: ErrNoCredential}})
		return
	}

	start := time.Now()
	log.Info().
		Str("model", c.model).
		Int("messages", len(history)).
		Msg("stream started")

	stream := c.api.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: toParams(history),
	})
	defer stream.Close()

	// PERFORMANCE: strings.Builder avoids quadratic allocations
	var full strings.Builder
	tokens, chunks := 0, 0
	var firstToken time.Duration

	for stream.Next() {
		chunks++
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		text := chunk.Choices[0].Delta.Content
		if text == "" {
			continue
		}
		if tokens == 0 {
			firstToken = time.Since(start)
		}
		tokens++
		full.WriteString(text)
		if !send(Event{Kind: EventToken, Text: text}) {
			log.Info().Int("tokens", tokens).Msg("stream cancelled")
			return
		}
	}

	if err := stream.Err(); err != nil {
		if ctx.Err() != nil {
			log.Info().Int("tokens", tokens).Msg("stream cancelled")
			return
		}
		serr := newStreamError(err, full.String())
		log.Error().
			Err(serr).
			Int("status", serr.Status).
			Int("tokens", tokens).
			Dur("elapsed", time.Since(start)).
			Msg("stream failed")
		send(Event{Kind: EventFailed, Err: serr})
		return
	}

	if tokens == 0 {
		// A 200 that is not an event stream decodes to zero chunks.
		log.Warn().Int("chunks", chunks).Msg("stream completed without content")
	}
	log.Info().
		Int("tokens", tokens).
		Int("chars", full.Len()).
		Dur("ttft", firstToken).
		Dur("elapsed", time.Since(start)).
		Msg("stream completed")
	send(Event{Kind: EventCompleted, Text: full.String()})
}

// Collect drains a session and returns its tokens and terminal event.
// It blocks until the channel is closed. If the session was cancelled the
// returned terminal event is the zero Event.
func Collect(s Session) (tokens []string, terminal Event) {
	for ev := range s.Events {
		if ev.Kind == EventToken {
			tokens = append(tokens, ev.Text)
			continue
		}
		terminal = ev
	}
	return tokens, terminal
}
