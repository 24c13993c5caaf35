// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/deepseek-hud/internal/cloud"
	"github.com/jeranaias/deepseek-hud/internal/config"
)

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// StreamEventMsg delivers one worker event to the update loop.
type StreamEventMsg struct {
	Event cloud.Event
}

// StreamClosedMsg signals that a session channel closed without a terminal
// event, which happens when the session was cancelled.
type StreamClosedMsg struct {
	SessionID string
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a config file edited while the HUD runs.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// ConfigErrorMsg reports a config file that failed to reload.
type ConfigErrorMsg struct {
	Err error
}

// =============================================================================
// ANIMATION MESSAGES
// =============================================================================

// SpinnerTickMsg advances the header spinner while a reply streams.
type SpinnerTickMsg struct{}
