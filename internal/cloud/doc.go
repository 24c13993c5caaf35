// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud streams chat completions from the DeepSeek API.
//
// DeepSeek exposes an OpenAI-compatible endpoint, so requests go through the
// official openai-go SDK pointed at https://api.deepseek.com. Each call to
// Stream runs one request in its own goroutine and reports progress as an
// ordered sequence of events on a channel:
//
//   - zero or more EventToken, one per non-empty content delta, byte-exact
//   - exactly one EventCompleted (the concatenation of all tokens) or
//     EventFailed (a human-readable description of the failure)
//
// The channel is closed after the terminal event. Cancelling the context
// stops the worker without a terminal event. Requests are never retried.
//
// # Usage
//
//	client := cloud.NewClient(cloud.Options{APIKey: key})
//	session := client.Stream(ctx, history.Messages())
//	for ev := range session.Events {
//	    switch ev.Kind {
//	    case cloud.EventToken:
//	        fmt.Print(ev.Text)
//	    case cloud.EventFailed:
//	        fmt.Println(ev.Description())
//	    }
//	}
//
// # Security
//
// API keys are never logged, and all requests use TLS 1.2+.
package cloud
