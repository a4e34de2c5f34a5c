// Package makecom posts scheduled content to a Make.com automation
// webhook, which fans it out to the connected social accounts.
package makecom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"postdeck/internal/store"
	"postdeck/pkg/clients"
	"postdeck/pkg/logging"
)

// Actions shown in the automation scenario for scheduled versus
// publish-now dispatches.
const (
	ActionScheduled  = "Programmé"
	ActionPublishNow = "Publier maintenant"
)

// Payload is the body sent to the webhook for each dispatched post.
// ID and Action are only set on the automatic dispatch that follows a
// post creation.
type Payload struct {
	ID        int      `json:"id,omitempty"`
	Content   string   `json:"content"`
	Platforms []string `json:"platforms"`
	Date      string   `json:"date"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	Status    string   `json:"status,omitempty"`
	Action    string   `json:"action,omitempty"`
}

// Client dispatches posts to a Make.com webhook URL.
type Client struct {
	webhookURL string
	httpClient *http.Client
	logger     logging.Logger
}

func NewClient(webhookURL string, logger logging.Logger) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: clients.DefaultTransport(),
		},
		logger: logger,
	}
}

// Enabled reports whether a webhook URL is configured.
func (c *Client) Enabled() bool {
	return c.webhookURL != ""
}

// Send posts one payload to the webhook and fails on any non-2xx
// response. Dispatch is single-shot; callers that want at-most-once
// semantics must not retry.
func (c *Client) Send(ctx context.Context, post store.Post) error {
	return c.send(ctx, Payload{
		Content:   post.Content,
		Platforms: post.Platforms,
		Date:      post.Date.Format(time.RFC3339),
		ImageURL:  post.Image,
		Status:    post.Status,
	})
}

func (c *Client) send(ctx context.Context, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// SendAsync dispatches in the background after a post is created. The
// action tells the automation scenario whether this is a scheduled
// post or an immediate publish. Failures are logged and otherwise
// dropped; the post itself is already persisted.
func (c *Client) SendAsync(post store.Post) {
	if !c.Enabled() {
		return
	}
	action := ActionScheduled
	if post.Status == store.StatusSent {
		action = ActionPublishNow
	}
	payload := Payload{
		ID:        post.ID,
		Content:   post.Content,
		Platforms: post.Platforms,
		Date:      post.Date.Format(time.RFC3339),
		ImageURL:  post.Image,
		Status:    post.Status,
		Action:    action,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := c.send(ctx, payload); err != nil {
			c.logger.WithError(err).WithField("post_id", post.ID).Warn("Webhook dispatch failed")
		}
	}()
}
