// Manual smoke test for the slackapi client. Not part of the service.
package main

import (
	"context"
	"log"
	"net/url"
	"os"

	"github.com/k0kubun/pp"
	"resty.dev/v3"

	"reacji/pkg/slackapi"
)

func main() {
	client := slackapi.NewClient(&slackapi.ClientConfig{
		BaseURL: slackapi.DefaultBaseURL,
		Token:   os.Getenv("SLACK_TOKEN"),

		TransportSettings: slackapi.DefaultConfig.TransportSettings,

		ResponseMiddlewares: []resty.ResponseMiddleware{func(client *resty.Client, response *resty.Response) error {
			reqURL, err := url.Parse(response.Request.URL)
			if err != nil {
				return err
			}

			log.Printf("%s %s: %s [%s]", response.Request.Method, reqURL.Path, response.Status(), response.Duration())
			return nil
		}},
	})
	defer client.Close()

	identity, err := client.AuthTest(context.Background())
	if err != nil {
		panic(err)
	}
	pp.Printf("%+v\n", identity)

	channels, err := client.Channels(context.Background())
	if err != nil {
		panic(err)
	}
	pp.Printf("%+v\n", channels)
}
