// Package slackapi is a thin client for the subset of the Slack Web API the
// relay needs: user lookup, channel listing, permalink resolution and message
// posting.
package slackapi

import (
	"context"

	"resty.dev/v3"
)

const DefaultBaseURL = "https://slack.com/api"

type Client struct {
	client *resty.Client
}

func NewClient(config *ClientConfig) *Client {
	client := resty.NewWithTransportSettings(config.TransportSettings)

	client.SetBaseURL(config.BaseURL)
	client.SetAuthToken(config.Token)

	for _, m := range config.ResponseMiddlewares {
		client.AddResponseMiddleware(m)
	}

	return &Client{
		client: client,
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().WithContext(ctx)
}

// checked asserts the API-level ok flag of a response. A false flag becomes
// an *APIError carrying the method and the platform's error reason.
func checked(method string, res apiChecker) error {
	if res.ok() {
		return nil
	}
	return &APIError{Method: method, Reason: res.reason()}
}

type apiChecker interface {
	ok() bool
	reason() string
}

// apiResponse is embedded in every result type.
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (r apiResponse) ok() bool       { return r.OK }
func (r apiResponse) reason() string { return r.Error }
