/*
Copyright 2025 firestoned.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package bindcar is an HTTP client for the bindcar sidecar's zone-management API
// (spec.md §4.9). It mirrors the retry/idempotency rules of the sidecar's original
// implementation: requests retry under the C1 HTTP backoff profile, and zone-creation
// calls treat "already exists" responses as success rather than failure.
package bindcar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/firestoned/bindy/internal/backoffutil"
	"github.com/firestoned/bindy/internal/httperrors"
)

// HTTPError carries the response status code so callers can classify permanent vs.
// transient failures (spec.md §7).
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("bindcar: status %d: %s", e.StatusCode, e.Message)
}

// Reason maps the error's status code onto the internal/condition reason taxonomy.
func (e *HTTPError) Reason() string {
	return httperrors.Reason(e.StatusCode)
}

// Client talks to one bindcar sidecar instance.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        logr.Logger
}

// New builds a Client for the given server address. server may be a bare host:port or
// already carry a scheme; a missing scheme defaults to http, and any trailing slash is
// trimmed, mirroring the sidecar API's own URL builder.
func New(server, token string, log logr.Logger) *Client {
	return &Client{
		baseURL:    buildAPIURL(server),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

func buildAPIURL(server string) string {
	url := server
	if !strings.Contains(url, "://") {
		url = "http://" + url
	}
	return strings.TrimSuffix(url, "/")
}

// do executes one HTTP round trip (method, path, body) and returns the decoded response
// body, retrying transient failures under the HTTP backoff profile. A non-2xx response is
// reported as an *HTTPError carrying the status code; a response that never arrives (dial,
// timeout, DNS) is reported as a plain error so callers can distinguish "server said no"
// from "server unreachable".
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload []byte
	var err error
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}

	var respBody []byte
	attempt := 0
	retryErr := backoffutil.Retry(ctx, c.log, fmt.Sprintf("%s %s", method, path), backoffutil.HTTPProfile,
		func(err error) bool {
			var httpErr *HTTPError
			if isHTTPError(err, &httpErr) {
				return httperrors.Retryable(httpErr.StatusCode)
			}
			// No response at all (connection/timeout) is always worth retrying.
			return true
		},
		func() error {
			attempt++
			b, reqErr := c.doOnce(ctx, method, path, payload)
			if reqErr != nil {
				return reqErr
			}
			respBody = b
			return nil
		})
	if retryErr != nil {
		return nil, retryErr
	}
	return respBody, nil
}

func isHTTPError(err error, target **HTTPError) bool {
	httpErr, ok := err.(*HTTPError)
	if ok {
		*target = httpErr
	}
	return ok
}

func (c *Client) doOnce(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return respBody, &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}
	return respBody, nil
}

func decodeZoneResponse(body []byte) (ZoneResponse, error) {
	if len(body) == 0 {
		return ZoneResponse{Success: true}, nil
	}
	var zr ZoneResponse
	if err := json.Unmarshal(body, &zr); err != nil {
		// Not every endpoint replies with a ZoneResponse envelope; treat a non-JSON
		// 2xx body as bare success.
		return ZoneResponse{Success: true}, nil
	}
	return zr, nil
}
