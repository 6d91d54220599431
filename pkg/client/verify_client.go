// Copyright (C) 2025 SAGE-X Project
//
// This file is part of did-attest-go.
//
// did-attest-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// did-attest-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with did-attest-go.  If not, see <https://www.gnu.org/licenses/>.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/sage-x-project/did-attest-go/pkg/protocol"
)

const maxResponseBytes = 1 << 20 // 1 MiB

// VerifyClient calls the attestation service's verification endpoint.
type VerifyClient struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a VerifyClient.
type Option func(*VerifyClient)

// WithHTTPClient replaces the default retrying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *VerifyClient) {
		c.httpClient = hc
	}
}

// NewVerifyClient creates a client for the service at baseURL, for example
// "http://localhost:8080". The default HTTP client retries transient
// failures twice with a 30 second per-attempt timeout.
func NewVerifyClient(baseURL string, opts ...Option) *VerifyClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = nil

	c := &VerifyClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: rc.StandardClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx answer from the service. The response body is
// preserved so callers can inspect the failure reason and details.
type APIError struct {
	StatusCode int
	Response   protocol.VerifyResponse
}

func (e *APIError) Error() string {
	if e.Response.Error != "" {
		return fmt.Sprintf("verify failed (HTTP %d): %s", e.StatusCode, e.Response.Error)
	}
	return fmt.Sprintf("verify failed (HTTP %d)", e.StatusCode)
}

// Verify submits a verification request and returns the decoded response.
// A 4xx/5xx answer with a decodable body returns *APIError so the caller
// still sees the service's reason; transport failures return plain errors.
func (c *VerifyClient) Verify(ctx context.Context, req protocol.VerifyRequest) (*protocol.VerifyResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/verify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp protocol.VerifyResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response (HTTP %d): %w", httpResp.StatusCode, err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: httpResp.StatusCode, Response: resp}
	}
	return &resp, nil
}

// Healthy reports whether the service's liveness endpoint answers 200.
func (c *VerifyClient) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes)) //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: HTTP %d", resp.StatusCode)
	}
	return nil
}
