package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Identity is a sender or recipient address with an optional display name.
type Identity struct {
	Email string `json:"address"`
	Name  string `json:"display_name,omitempty"`
}

// Attachment is a binary attachment. Content is base64-encoded.
type Attachment struct {
	Name        string `json:"file_name"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

// Message is one transactional email.
type Message struct {
	From        Identity          `json:"from"`
	To          []Identity        `json:"to"`
	ReplyTo     *Identity         `json:"reply_to,omitempty"`
	Subject     string            `json:"subject"`
	HTML        string            `json:"html,omitempty"`
	Text        string            `json:"plain,omitempty"`
	Attachments []Attachment      `json:"attachments,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
}

// Sender delivers transactional email. The webhook package retries a failed
// send once with a fallback sender identity; the provider client itself
// does no retries.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Client is an HTTP client for the transactional email provider.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// New creates a Client posting to the given provider endpoint.
func New(endpoint, apiKey string) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Send submits one message. A non-2xx provider response is returned as an
// error carrying the response body for the caller to log.
func (c *Client) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshalling email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building email request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending email request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
