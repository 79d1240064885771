package slackapi

import (
	"time"

	"resty.dev/v3"
)

type ClientConfig struct {
	BaseURL string
	Token   string

	TransportSettings *resty.TransportSettings

	ResponseMiddlewares []resty.ResponseMiddleware
}

var DefaultConfig = &ClientConfig{
	BaseURL: DefaultBaseURL,

	TransportSettings: &resty.TransportSettings{
		DialerTimeout:         3 * time.Second,
		DialerKeepAlive:       3 * time.Second,
		IdleConnTimeout:       3 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: 3 * time.Second,
		ResponseHeaderTimeout: 3 * time.Second,
	},
}
