package telephony

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Dialer places outbound calls that drive the interview webhook script.
type Dialer interface {
	StartCall(ctx context.Context, to, callbackURL string) (string, error)
}

// Messenger sends the one-shot summary notification.
type Messenger interface {
	SendSMS(ctx context.Context, to, body string) error
}

type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	// APIBaseURL overrides the Twilio API host, used by tests
	APIBaseURL string
}

// Client is a thin REST client for the Twilio voice and messaging APIs.
type Client struct {
	config Config
	http   *http.Client
}

func NewClient(config Config) *Client {
	if config.APIBaseURL == "" {
		config.APIBaseURL = "https://api.twilio.com"
	}
	return &Client{
		config: config,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) StartCall(ctx context.Context, to, callbackURL string) (string, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.config.FromNumber)
	form.Set("Url", callbackURL)

	var result struct {
		SID string `json:"sid"`
	}
	if err := c.post(ctx, "Calls.json", form, &result); err != nil {
		return "", fmt.Errorf("start call: %w", err)
	}
	return result.SID, nil
}

func (c *Client) SendSMS(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.config.FromNumber)
	form.Set("Body", body)

	if err := c.post(ctx, "Messages.json", form, nil); err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, resource string, form url.Values, out any) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/%s", c.config.APIBaseURL, c.config.AccountSID, resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.config.AccountSID, c.config.AuthToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
