// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
)

// Error variables for common DeepSeek failures.
var (
	// ErrNoCredential indicates the API key is not set.
	ErrNoCredential = errors.New("DeepSeek API key not configured")

	// ErrAuthFailed indicates authentication failed (invalid or revoked API key).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrInsufficientBalance indicates the account has run out of credit.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")

	// ErrBadRequest indicates the provider rejected the request body.
	ErrBadRequest = errors.New("invalid request")

	// ErrUnavailable indicates a provider-side failure (HTTP 5xx).
	ErrUnavailable = errors.New("DeepSeek service unavailable")

	// ErrConnection indicates the connection could not be opened or was lost.
	ErrConnection = errors.New("connection failed")

	// ErrMalformedResponse indicates the stream could not be decoded.
	ErrMalformedResponse = errors.New("malformed response")
)

// StreamError describes a failed streaming request.
type StreamError struct {
	// Reason is one of the sentinel errors above.
	Reason error
	// Status is the HTTP status, 0 when no response was received.
	Status int
	// Detail is the provider's message, if any.
	Detail string
	// Partial is the content received before the failure. It is never shown
	// or stored; it is kept for logging.
	Partial string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface with a message suitable for display.
func (e *StreamError) Error() string {
	var b strings.Builder
	b.WriteString(e.Reason.Error())
	if e.Status != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.Status)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the reason and the underlying error to errors.Is/As.
func (e *StreamError) Unwrap() []error {
	errs := []error{e.Reason}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// newStreamError classifies err into a StreamError.
func newStreamError(err error, partial string) *StreamError {
	serr := &StreamError{Err: err, Partial: partial}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		serr.Status = apiErr.StatusCode
		serr.Detail = apiErr.Message
		serr.Reason = reasonForStatus(apiErr.StatusCode)
		return serr
	}

	var netErr net.Error
	switch {
	case errors.As(err, &netErr), errors.Is(err, io.ErrUnexpectedEOF):
		serr.Reason = ErrConnection
	case strings.Contains(err.Error(), "received error while streaming"):
		serr.Reason = ErrUnavailable
	case isDecodeError(err):
		serr.Reason = ErrMalformedResponse
	default:
		serr.Reason = ErrConnection
	}
	return serr
}

// reasonForStatus maps an HTTP status to a sentinel error.
func reasonForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrAuthFailed
	case status == http.StatusPaymentRequired:
		return ErrInsufficientBalance
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status >= 500:
		return ErrUnavailable
	default:
		return ErrBadRequest
	}
}

// isDecodeError reports whether err came from decoding a stream chunk.
func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return true
	}
	return strings.Contains(err.Error(), "invalid character")
}

// IsAuthError returns true if err is an authentication failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthFailed) || errors.Is(err, ErrNoCredential)
}

// IsRetryable returns true if resubmitting the same request may succeed.
// Nothing is retried automatically; the failure notice suggests resubmitting.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrConnection)
}
