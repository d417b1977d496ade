// Package expo is a minimal client for the Expo push HTTP API. Tokens are
// opaque device handles; one POST delivers one message to one device.
package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultEndpoint = "https://exp.host/--/api/v2/push/send"

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		endpoint: defaultEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithEndpoint is used by tests to point the client at a fake server.
func NewClientWithEndpoint(endpoint string) *Client {
	c := NewClient()
	c.endpoint = endpoint
	return c
}

// Message is one push notification addressed to one device token.
type Message struct {
	To    string            `json:"to"`
	Title string            `json:"title,omitempty"`
	Body  string            `json:"body,omitempty"`
	Data  map[string]string `json:"data,omitempty"`
}

type ticketResponse struct {
	Data []struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"data"`
}

// Send delivers one message. A non-ok ticket from Expo is an error so the
// caller can log it per token.
func (c *Client) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal([]Message{msg})
	if err != nil {
		return fmt.Errorf("failed to encode push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}

	var tickets ticketResponse
	if err = json.NewDecoder(resp.Body).Decode(&tickets); err != nil {
		return fmt.Errorf("failed to decode push tickets: %w", err)
	}
	for _, ticket := range tickets.Data {
		if ticket.Status != "ok" {
			return fmt.Errorf("push ticket rejected: %s", ticket.Message)
		}
	}
	return nil
}
