package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrDelivery is returned for any failed submission: transport error or
// a non-2xx status. Submissions are not retried.
var ErrDelivery = errors.New("webhook delivery failed")

// Client posts JSON envelopes to the single configured webhook endpoint.
// Outbound calls are throttled so a burst of form submissions cannot
// hammer the provider.
type Client struct {
	URL     string
	Source  string
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(url, source string) *Client {
	return &Client{
		URL:     url,
		Source:  source,
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

// ContactMessage forwards a contact form submission.
func (c *Client) ContactMessage(ctx context.Context, name, email, subject, message string) error {
	return c.post(ctx, map[string]string{
		"type":    "contact_message",
		"source":  c.Source,
		"name":    name,
		"email":   email,
		"subject": subject,
		"message": message,
	})
}

// NewsletterSignup forwards a newsletter signup. Name may be empty.
func (c *Client) NewsletterSignup(ctx context.Context, email, name string) error {
	return c.post(ctx, map[string]string{
		"type":   "newsletter_signup",
		"source": c.Source,
		"email":  email,
		"name":   name,
	})
}

func (c *Client) post(ctx context.Context, envelope map[string]string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrDelivery, resp.StatusCode)
	}
	return nil
}
