// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// HistoryCap is the maximum number of messages kept in the history,
// system prompt included. Older messages are dropped to bound the number of
// prompt tokens sent with every request.
const HistoryCap = 10

// DefaultSystemPrompt is the system message used when none is configured.
const DefaultSystemPrompt = "You are a helpful assistant."

// =============================================================================
// HISTORY TYPE
// =============================================================================

// History is the ordered list of messages sent with every request.
//
// Element 0 is always the system prompt and is never evicted. After every
// Append the history holds at most HistoryCap messages: the system prompt plus
// the HistoryCap-1 most recent messages, in their original order.
//
// History is not safe for concurrent use. Workers receive a copy through
// Messages and never see the live slice.
type History struct {
	messages []Message
}

// NewHistory creates a history seeded with the given system prompt.
// An empty prompt falls back to DefaultSystemPrompt.
func NewHistory(systemPrompt string) *History {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &History{
		messages: []Message{NewSystemMessage(systemPrompt)},
	}
}

// Append adds a message and then enforces the size cap.
// System messages are only accepted as element 0, so later ones are ignored,
// as are messages with an unknown role.
func (h *History) Append(msg Message) {
	if !msg.Role.Valid() || msg.Role == RoleSystem {
		return
	}
	h.messages = append(h.messages, msg)
	h.Trim()
}

// Trim drops the oldest non-system messages until the history fits in
// HistoryCap. It reports how many messages were dropped.
func (h *History) Trim() int {
	if len(h.messages) <= HistoryCap {
		return 0
	}

	dropped := len(h.messages) - HistoryCap
	trimmed := make([]Message, 0, HistoryCap)
	trimmed = append(trimmed, h.messages[0])
	trimmed = append(trimmed, h.messages[len(h.messages)-(HistoryCap-1):]...)
	h.messages = trimmed
	return dropped
}

// Len returns the number of messages, system prompt included.
func (h *History) Len() int {
	return len(h.messages)
}

// Messages returns a copy of the history in order.
func (h *History) Messages() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Last returns the most recent message and false if only the system prompt
// is present.
func (h *History) Last() (Message, bool) {
	if len(h.messages) <= 1 {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// SystemPrompt returns the content of the system message.
func (h *History) SystemPrompt() string {
	return h.messages[0].Content
}
