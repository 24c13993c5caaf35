// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small file helpers shared by the hud packages.
//
//	// Persist the configuration without ever leaving a half-written file
//	err := util.AtomicWriteFile(path, data, 0600, 0700)
package util
