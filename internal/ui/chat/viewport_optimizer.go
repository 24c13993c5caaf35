// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"crypto/sha256"
	"encoding/hex"
)

// =============================================================================
// VIEWPORT OPTIMIZER
// =============================================================================

// ViewportOptimizer skips viewport updates whose content did not change,
// such as re-renders triggered by stale events or spinner ticks.
type ViewportOptimizer struct {
	lastContentHash string
	updateCount     uint64
	skipCount       uint64
}

// NewViewportOptimizer creates a new viewport optimizer.
func NewViewportOptimizer() *ViewportOptimizer {
	return &ViewportOptimizer{}
}

// ShouldUpdate returns true if newContent differs from the last content
// passed in. The first call always returns true.
func (vo *ViewportOptimizer) ShouldUpdate(newContent string) bool {
	vo.updateCount++

	newHash := hashContent(newContent)
	if vo.updateCount > 1 && newHash == vo.lastContentHash {
		vo.skipCount++
		return false
	}
	vo.lastContentHash = newHash
	return true
}

// Reset forces the next ShouldUpdate to return true.
func (vo *ViewportOptimizer) Reset() {
	vo.lastContentHash = ""
	vo.updateCount = 0
}

// Stats returns the number of update attempts and skips.
func (vo *ViewportOptimizer) Stats() (total, skipped uint64) {
	return vo.updateCount, vo.skipCount
}

// hashContent computes a SHA-256 hash of the content for change detection.
func hashContent(content string) string {
	if content == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
