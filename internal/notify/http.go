package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPTransport posts messages as JSON to a mail relay API.
type HTTPTransport struct {
	client *resty.Client
	url    string
}

// NewHTTPTransport creates a relay client. apiKey, when set, is sent as a
// bearer token.
func NewHTTPTransport(url, apiKey string, timeout time.Duration) *HTTPTransport {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &HTTPTransport{client: client, url: url}
}

func (t *HTTPTransport) Send(ctx context.Context, msg *Message) error {
	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(msg).
		Post(t.url)
	if err != nil {
		return fmt.Errorf("mail relay request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("mail relay returned %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
