// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"talenthub/internal/common/errors"
)

type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return c.httpClient.Do(req)
}

// DoJSON executes a request and decodes a 2xx JSON body into out.
// Failures are normalized into a single error shape: transport errors become
// NETWORK_UNREACHABLE, non-2xx responses carry the upstream status and the
// body's detail/message field when one can be decoded.
func (c *Client) DoJSON(ctx context.Context, req *http.Request, out interface{}) error {
	resp, err := c.DoWithContext(ctx, req)
	if err != nil {
		return errors.NewNetworkUnreachableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewNetworkUnreachableError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		stdErr := errors.NewExternalServiceError(req.URL.Host, fmt.Errorf("status %d", resp.StatusCode))
		stdErr.Metadata["status"] = resp.StatusCode

		// Surface the upstream message verbatim when the body is JSON.
		var payload struct {
			Detail  string `json:"detail"`
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil {
			switch {
			case payload.Detail != "":
				stdErr.Details = payload.Detail
			case payload.Message != "":
				stdErr.Details = payload.Message
			case payload.Error != "":
				stdErr.Details = payload.Error
			}
		}
		return stdErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.NewExternalServiceError(req.URL.Host, fmt.Errorf("invalid response from server: %w", err))
	}
	return nil
}

// PostJSON marshals a payload and performs a JSON POST through DoJSON.
func (c *Client) PostJSON(ctx context.Context, url string, payload interface{}, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.NewInternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return errors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.DoJSON(ctx, req, out)
}
