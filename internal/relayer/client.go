// Package relayer talks to the external zk-proof verification relayer.
// The server never decides "verified" itself: the relayer's verdict is the
// trust boundary.
package relayer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrNotConfigured = errors.New("relayer url not configured")

// Client is an HTTP client for the proof relayer
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a relayer client. An empty url yields a client whose
// Verify always fails with ErrNotConfigured.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// VerifyRequest is the proof material forwarded as-is to the relayer
type VerifyRequest struct {
	Proof          json.RawMessage `json:"proof"`
	PublicSignals  json.RawMessage `json:"publicSignals,omitempty"`
	VerifierConfig json.RawMessage `json:"verifierConfig,omitempty"`
}

// verifyResponse covers both relayer response shapes seen in the wild:
// {"result":{"valid":true}} and {"verified":true}.
type verifyResponse struct {
	Result *struct {
		Valid bool `json:"valid"`
	} `json:"result"`
	Verified bool `json:"verified"`
}

// Verify forwards proof material to the relayer and returns its verdict
func (c *Client) Verify(ctx context.Context, payload VerifyRequest) (bool, error) {
	if c.url == "" {
		return false, ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("relayer returned status %d", resp.StatusCode)
	}

	var vr verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return false, err
	}

	if vr.Result != nil {
		return vr.Result.Valid, nil
	}
	return vr.Verified, nil
}
