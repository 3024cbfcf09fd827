package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	MsgServerFallback = "Failed to send message. Please try again."
	MsgNetworkError   = "Network error. Please check your connection and try again."

	maxResponseBytes = 64 << 10
)

// Result is the decoded response body of the contact endpoint
type Result struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	Details    string `json:"details,omitempty"`
	StatusCode int    `json:"-"`
}

// ServerError means the request completed but the submission was not accepted
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return MsgServerFallback
}

// NetworkError means the request never completed
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("contact request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Client posts submissions to a contact endpoint such as https://example.com/api/contact
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client. A nil httpClient gets a 30 second timeout.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{endpoint: endpoint, httpClient: httpClient}
}

// Submit sends one POST. It does not retry.
func (c *Client) Submit(ctx context.Context, s Submission) (*Result, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	result := &Result{StatusCode: resp.StatusCode}
	// A body that is not JSON leaves the result marked as failed
	_ = json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !result.Success {
		return result, &ServerError{StatusCode: resp.StatusCode, Message: result.Error}
	}
	return result, nil
}
