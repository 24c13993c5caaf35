// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sort"
	"strings"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "deepseek-chat"

// =============================================================================
// MODEL INFO TYPE
// =============================================================================

// ModelInfo contains information about a DeepSeek chat model.
type ModelInfo struct {
	// ID is the model identifier used in API calls
	ID string `json:"id"`

	// Name is the human-readable display name
	Name string `json:"name"`

	// MaxTokens is the maximum context window size
	MaxTokens int `json:"max_tokens"`

	// Description is a brief explanation of the model's strengths
	Description string `json:"description"`
}

// Models is the registry of models served by the DeepSeek chat endpoint.
var Models = map[string]ModelInfo{
	"deepseek-chat": {
		ID:          "deepseek-chat",
		Name:        "DeepSeek Chat",
		MaxTokens:   64000,
		Description: "General purpose chat model",
	},
	"deepseek-reasoner": {
		ID:          "deepseek-reasoner",
		Name:        "DeepSeek Reasoner",
		MaxTokens:   64000,
		Description: "Reasoning model with chain-of-thought",
	},
}

// LookupModel returns the registry entry for id. The lookup is case-insensitive.
func LookupModel(id string) (ModelInfo, bool) {
	info, ok := Models[strings.ToLower(strings.TrimSpace(id))]
	return info, ok
}

// ModelIDs returns the known model identifiers in sorted order.
func ModelIDs() []string {
	ids := make([]string, 0, len(Models))
	for id := range Models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
