// Package storeapi is the HTTP client for the Brenvick storefront REST API.
// One file per upstream resource; every call goes through the shared request
// helpers and the envelope check, so a failed envelope never leaks partial
// data to callers.
package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Client is the storefront API client. All admin calls carry the session's
// upstream bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	debug      bool
}

// NewClient constructs a storefront client with the given base URL and
// request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		debug:      os.Getenv("ENV") == "development",
	}
}

// envelope is the storefront's uniform response wrapper.
type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Result    json.RawMessage `json:"result"`
	ErrorList []string        `json:"errorList"`
}

// APIError carries the upstream failure detail.
type APIError struct {
	StatusCode int
	Message    string
	ErrorList  []string
}

func (e *APIError) Error() string {
	if len(e.ErrorList) > 0 {
		return fmt.Sprintf("storefront error (%d): %s", e.StatusCode, strings.Join(e.ErrorList, "; "))
	}
	if e.Message != "" {
		return fmt.Sprintf("storefront error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("storefront error (%d)", e.StatusCode)
}

// request performs an HTTP call and returns the raw response body. Non-2xx
// statuses become an APIError with whatever message the body carried.
func (c *Client) request(ctx context.Context, method, path, token, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status_code", resp.StatusCode).
			Msg("[STOREAPI] Request completed")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env envelope
		if json.Unmarshal(respBody, &env) == nil {
			apiErr.Message = env.Message
			apiErr.ErrorList = env.ErrorList
		}
		return nil, apiErr
	}
	return respBody, nil
}

// doEnvelope issues a JSON request and unwraps the standard envelope into
// result. A non-empty errorList or success:false is an error even on a 200.
func (c *Client) doEnvelope(ctx context.Context, method, path, token string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	respBody, err := c.request(ctx, method, path, token, "application/json", body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(env.ErrorList) > 0 || !env.Success {
		return &APIError{StatusCode: http.StatusOK, Message: env.Message, ErrorList: env.ErrorList}
	}
	if result != nil {
		if len(env.Result) == 0 || string(env.Result) == "null" {
			return &APIError{StatusCode: http.StatusOK, Message: "empty result"}
		}
		if err := json.Unmarshal(env.Result, result); err != nil {
			return fmt.Errorf("failed to decode result: %w", err)
		}
	}
	return nil
}

// doJSON issues a JSON request and decodes the raw body into result, for
// the handful of endpoints that use resource-specific response shapes.
func (c *Client) doJSON(ctx context.Context, method, path, token string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	respBody, err := c.request(ctx, method, path, token, "application/json", body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// doMultipart posts an already-encoded multipart body.
func (c *Client) doMultipart(ctx context.Context, method, path, token, contentType string, body io.Reader, result any) error {
	respBody, err := c.request(ctx, method, path, token, contentType, body)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(env.ErrorList) > 0 || !env.Success {
		return &APIError{StatusCode: http.StatusOK, Message: env.Message, ErrorList: env.ErrorList}
	}
	if len(env.Result) > 0 && string(env.Result) != "null" {
		if err := json.Unmarshal(env.Result, result); err != nil {
			return fmt.Errorf("failed to decode result: %w", err)
		}
	}
	return nil
}
