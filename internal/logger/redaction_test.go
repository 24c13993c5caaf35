// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactor_Redact(t *testing.T) {
	r := NewRedactor()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"deepseek key", "key sk-0123456789abcdef end", "key [REDACTED] end"},
		{"bearer", "Authorization: Bearer abc.def-ghi", "Authorization: [REDACTED]"},
		{"toml line", `api_key = "secret-value"`, `[REDACTED]"`},
		{"short sk prefix untouched", "task sk-1 done", "task sk-1 done"},
		{"plain text", "hello world", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Redact(tt.input))
		})
	}
}

func TestRedactor_WrapReportsFullLength(t *testing.T) {
	var buf bytes.Buffer
	w := NewRedactor().Wrap(&buf)

	line := []byte("sk-0123456789abcdef\n")
	n, err := w.Write(line)
	require.NoError(t, err)
	assert.Equal(t, len(line), n)
	assert.Equal(t, "[REDACTED]\n", buf.String())
}
