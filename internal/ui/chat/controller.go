// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jeranaias/deepseek-hud/internal/cloud"
	"github.com/jeranaias/deepseek-hud/internal/model"
	"github.com/jeranaias/deepseek-hud/internal/ui/components"
)

// =============================================================================
// CONVERSATION STATE
// =============================================================================

// State is the conversation state.
type State int

const (
	// StateIdle accepts a new submission.
	StateIdle State = iota
	// StateAwaiting has one reply streaming in.
	StateAwaiting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaiting:
		return "awaiting"
	default:
		return "unknown"
	}
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the conversation history and the streaming buffer. It is
// the only code that mutates history, and it must be driven from a single
// goroutine (the Bubble Tea update loop).
type Controller struct {
	ctx      context.Context
	streamer cloud.Streamer
	history  *model.History
	renderer *components.Renderer
	log      zerolog.Logger

	state   State
	session string
	cancel  context.CancelFunc
	raw     strings.Builder
	notices []string
}

// NewController creates an idle controller. Workers run under ctx, so
// cancelling it stops any in-flight request.
func NewController(ctx context.Context, streamer cloud.Streamer, history *model.History, renderer *components.Renderer, log zerolog.Logger) *Controller {
	return &Controller{
		ctx:      ctx,
		streamer: streamer,
		history:  history,
		renderer: renderer,
		log:      log.With().Str("component", "controller").Logger(),
	}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// ActiveSession returns the ID of the streaming session, or "" when idle.
func (c *Controller) ActiveSession() string {
	return c.session
}

// History returns the conversation history.
func (c *Controller) History() *model.History {
	return c.history
}

// Raw returns the text streamed so far for the active session.
func (c *Controller) Raw() string {
	return c.raw.String()
}

// Notices returns the error notices shown after the history.
func (c *Controller) Notices() []string {
	out := make([]string, len(c.notices))
	copy(out, c.notices)
	return out
}

// SetStreamer replaces the streamer used for later submissions. A request
// already in flight keeps running on the old one.
func (c *Controller) SetStreamer(s cloud.Streamer) {
	c.streamer = s
}

// SetRenderer replaces the renderer, after a resize or opacity change.
func (c *Controller) SetRenderer(r *components.Renderer) {
	c.renderer = r
}

// Submit sends text as a user message and starts a worker for the reply.
// Text that is empty after trimming is ignored, as is any submission while a
// reply is streaming. The returned session is only valid when ok is true.
func (c *Controller) Submit(text string) (session cloud.Session, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return cloud.Session{}, false
	}
	if c.state == StateAwaiting {
		c.log.Debug().Str("session", c.session).Msg("submission rejected while awaiting reply")
		return cloud.Session{}, false
	}

	msg := model.NewUserMessage(text)
	c.history.Append(msg)
	c.raw.Reset()

	ctx, cancel := context.WithCancel(c.ctx)
	session = c.streamer.Stream(ctx, c.history.Messages())

	c.cancel = cancel
	c.session = session.ID
	c.state = StateAwaiting

	c.log.Debug().
		Str("session", session.ID).
		Str("preview", msg.Preview(40)).
		Int("history", c.history.Len()).
		Msg("submitted")
	return session, true
}

// Handle applies a worker event and reports whether the display changed.
// Events from any session other than the active one are ignored.
func (c *Controller) Handle(ev cloud.Event) bool {
	if c.state != StateAwaiting || ev.SessionID != c.session {
		c.log.Debug().
			Str("session", ev.SessionID).
			Str("kind", ev.Kind.String()).
			Msg("stale event ignored")
		return false
	}

	switch ev.Kind {
	case cloud.EventToken:
		c.OnToken(ev.Text)
	case cloud.EventCompleted:
		c.OnCompleted(ev.Text)
	case cloud.EventFailed:
		c.OnFailed(ev.Description(), ev.Err)
	default:
		return false
	}
	return true
}

// OnToken appends a streamed fragment to the raw buffer.
func (c *Controller) OnToken(text string) {
	c.raw.WriteString(text)
}

// OnCompleted appends the finished reply to history and returns to idle.
// Earlier error notices are dropped since the transcript is rebuilt from
// history.
func (c *Controller) OnCompleted(fullText string) {
	c.history.Append(model.NewAssistantMessage(fullText))
	c.notices = nil
	c.finish()
}

// OnFailed records the failure as a notice and returns to idle. History is
// left as it was, including the user message that started the request.
// err selects a hint appended to the description.
func (c *Controller) OnFailed(description string, err error) {
	notice := failureNotice(description, err)
	c.notices = append(c.notices, notice)
	c.log.Warn().Str("error", description).Msg("reply failed")
	c.finish()
}

// Hints appended to failure notices.
const (
	authHint  = "check your API key"
	retryHint = "resubmit to try again"
)

// failureNotice words the notice for a failed reply.
func failureNotice(description string, err error) string {
	if description == "" {
		description = "request failed"
	}
	switch {
	case cloud.IsAuthError(err):
		return description + " (" + authHint + ")"
	case cloud.IsRetryable(err):
		return description + " (" + retryHint + ")"
	default:
		return description
	}
}

// finish discards the streaming buffer and releases the session.
func (c *Controller) finish() {
	c.raw.Reset()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.session = ""
	c.state = StateIdle
}

// Shutdown cancels the in-flight worker without waiting for it.
func (c *Controller) Shutdown() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Transcript renders the history, then any error notices, then the raw
// streaming text while a reply is arriving.
func (c *Controller) Transcript() string {
	blocks := []string{c.renderer.Transcript(c.history.Messages())}
	for _, n := range c.notices {
		blocks = append(blocks, c.renderer.ErrorNotice(n))
	}
	if c.state == StateAwaiting {
		blocks = append(blocks, c.renderer.StreamingBlock(c.raw.String()))
	}

	kept := blocks[:0]
	for _, b := range blocks {
		if b != "" {
			kept = append(kept, b)
		}
	}
	if len(kept) == 0 {
		return c.renderer.Placeholder()
	}
	return strings.Join(kept, "\n\n")
}
