// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for messages and the bounded
// conversation history sent to the model provider.
//
// # Key Types
//
//   - Role: Message role enumeration (system, user, assistant)
//   - Message: Single immutable message with role and content
//   - History: Ordered message list capped at HistoryCap entries, whose first
//     element is always the system prompt
//   - ModelInfo: Information about a DeepSeek chat model
//
// # Usage
//
//	h := model.NewHistory(model.DefaultSystemPrompt)
//	h.Append(model.NewUserMessage("Explain recursion"))
//	snapshot := h.Messages() // safe to hand to a background worker
package model
