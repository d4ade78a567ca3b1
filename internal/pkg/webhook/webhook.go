package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gojek/heimdall/v7/httpclient"
)

// Client posts JSON payloads to an operator-configured endpoint, with
// retries so a flaky receiver does not lose sweep reports.
type Client struct {
	url      string
	instance *httpclient.Client
}

func NewClient(url string) *Client {
	return &Client{
		url: url,
		instance: httpclient.NewClient(
			httpclient.WithHTTPTimeout(10*time.Second),
			httpclient.WithRetryCount(3),
		),
	}
}

func (c *Client) Post(payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	res, err := c.instance.Post(c.url, bytes.NewReader(body), headers)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook responded %d", res.StatusCode)
	}

	return nil
}
