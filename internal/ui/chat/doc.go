// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main HUD view.

# Controller (controller.go)

Controller is the conversation state machine. It moves between StateIdle and
StateAwaiting, owns the bounded history and the raw buffer of the reply that
is streaming in, and is the only code that mutates either:

	session, ok := ctrl.Submit("Explain recursion")
	for ev := range session.Events {
		ctrl.Handle(ev)
	}

Events from a session other than the active one are ignored.

# Model (model.go)

Model is the Bubble Tea model: header, transcript viewport and input box.
Worker events reach it through a command that blocks on the session channel
and is re-issued after every event (update.go).

# Keys (keys.go)

	Enter              send
	Alt+Enter, Ctrl+J  newline
	Ctrl+Up/Down       opacity +/- 5%
	PgUp/PgDn          scroll
	Esc, Ctrl+C/Q      save and close
*/
package chat
