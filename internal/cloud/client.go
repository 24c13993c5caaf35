// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"crypto/tls"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"

	"github.com/jeranaias/deepseek-hud/internal/model"
)

// Configuration constants for the DeepSeek API.
const (
	// DefaultBaseURL is the base URL for the DeepSeek API.
	DefaultBaseURL = "https://api.deepseek.com"

	// DefaultModel is the chat model used when none is configured.
	DefaultModel = model.DefaultModel
)

// sharedStreamingClient is used for streaming requests.
// No timeout: a stream runs until the provider closes it or the context is cancelled.
var sharedStreamingClient = &http.Client{
	Transport: &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
}

// Options configures a Client.
type Options struct {
	// APIKey is the DeepSeek API key ("sk-...").
	APIKey string

	// BaseURL overrides DefaultBaseURL.
	BaseURL string

	// Model overrides DefaultModel.
	Model string

	// HTTPClient overrides the shared streaming client. Used by tests.
	HTTPClient option.HTTPClient

	// Logger receives request lifecycle events. The zero value discards them.
	Logger zerolog.Logger
}

// Client streams chat completions from DeepSeek.
type Client struct {
	api     openai.Client
	apiKey  string
	baseURL string
	model   string
	log     zerolog.Logger
}

// NewClient creates a new DeepSeek client.
//
// If the API key is empty, the client will still be created but every stream
// fails immediately with ErrNoCredential.
func NewClient(opts Options) *Client {
	apiKey := strings.TrimSpace(opts.APIKey)
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	modelID := strings.TrimSpace(opts.Model)
	if modelID == "" {
		modelID = DefaultModel
	}
	var httpClient option.HTTPClient = sharedStreamingClient
	if opts.HTTPClient != nil {
		httpClient = opts.HTTPClient
	}

	return &Client{
		api: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
			option.WithHTTPClient(httpClient),
			option.WithMaxRetries(0),
		),
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   modelID,
		log:     opts.Logger.With().Str("component", "cloud").Logger(),
	}
}

// IsConfigured returns true if an API key is set.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Model returns the model identifier sent with every request.
func (c *Client) Model() string {
	return c.model
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// toParams converts the history to the SDK message format.
// Messages with an unknown role are skipped.
func toParams(history []model.Message) []openai.ChatCompletionMessageParamUnion {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))
	for _, msg := range history {
		if !msg.Role.Valid() {
			continue
		}
		switch msg.Role {
		case model.RoleSystem:
			params = append(params, openai.SystemMessage(msg.Content))
		case model.RoleUser:
			params = append(params, openai.UserMessage(msg.Content))
		case model.RoleAssistant:
			params = append(params, openai.AssistantMessage(msg.Content))
		}
	}
	return params
}
