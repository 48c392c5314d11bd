// Package ai proxies natural-language inventory questions to the external
// chat service. The service is a black box: {message, token} in,
// {answer, metadata} out.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"go-inventory-ledger/internal/apperr"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client with a bounded timeout; requests never outlive it.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type chatResponse struct {
	Answer string          `json:"answer"`
	Data   json.RawMessage `json:"data"`
}

// Answer is the enriched reply returned to the API caller.
type Answer struct {
	Answer   string          `json:"answer"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// Ask forwards the question together with the caller's bearer token so the
// chat service can query the API on the caller's behalf. Connection failures
// and timeouts map to apperr.ErrUnavailable.
func (c *Client) Ask(ctx context.Context, message, token string) (*Answer, error) {
	if message == "" {
		return nil, apperr.InvalidArgumentf("message is required")
	}

	body, err := json.Marshal(chatRequest{Message: message, Token: token})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isConnectionFailure(err) {
			return nil, fmt.Errorf("ai service is unreachable: %w", apperr.ErrUnavailable)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai service returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("ai service returned malformed response: %w", err)
	}

	return &Answer{Answer: parsed.Answer, Metadata: parsed.Data}, nil
}

func isConnectionFailure(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
