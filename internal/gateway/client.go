package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the WhatsApp Cloud messages API for one phone-number
// deployment. All sends are synchronous round trips; callers decide whether
// a failure is fatal.
type Client struct {
	baseURL       string
	apiKey        string
	phoneNumberID string
	httpClient    *http.Client
}

// New creates a Client. Trailing slashes on baseURL are dropped so the
// request path is always {base}/{phoneNumberID}/messages.
func New(baseURL, apiKey, phoneNumberID string) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiKey:        apiKey,
		phoneNumberID: phoneNumberID,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ReplyButton is one quick-reply option. The platform caps titles at 20
// characters and a message at 3 buttons.
type ReplyButton struct {
	ID    string
	Title string
}

// ListRow is one row of a list menu.
type ListRow struct {
	ID          string
	Title       string
	Description string
}

// SendText sends a plain text message.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "text",
		"text": map[string]any{
			"preview_url": false,
			"body":        body,
		},
	})
}

// SendImage sends an image by URL with a caption attached.
func (c *Client) SendImage(ctx context.Context, to, imageURL, caption string) error {
	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "image",
		"image": map[string]any{
			"link":    imageURL,
			"caption": caption,
		},
	})
}

// SendButtons sends an interactive quick-reply message. At most three
// buttons are sent; extras are dropped rather than rejected.
func (c *Client) SendButtons(ctx context.Context, to, bodyText string, buttons []ReplyButton) error {
	if len(buttons) > 3 {
		buttons = buttons[:3]
	}

	actions := make([]map[string]any, 0, len(buttons))
	for _, b := range buttons {
		actions = append(actions, map[string]any{
			"type": "reply",
			"reply": map[string]any{
				"id":    b.ID,
				"title": b.Title,
			},
		})
	}

	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type": "button",
			"body": map[string]any{"text": bodyText},
			"action": map[string]any{
				"buttons": actions,
			},
		},
	})
}

// SendList sends an interactive list-menu message with a single section.
func (c *Client) SendList(ctx context.Context, to, bodyText, buttonLabel, sectionTitle string, rows []ListRow) error {
	items := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		items = append(items, map[string]any{
			"id":          row.ID,
			"title":       row.Title,
			"description": row.Description,
		})
	}

	return c.send(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type": "list",
			"body": map[string]any{"text": bodyText},
			"action": map[string]any{
				"button": buttonLabel,
				"sections": []map[string]any{
					{
						"title": sectionTitle,
						"rows":  items,
					},
				},
			},
		},
	})
}

func (c *Client) send(ctx context.Context, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building gateway request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
