// Package chat adapts the slackapi client to the core.ChatClient capability
// interface. Clients are built per request with a freshly resolved token.
package chat

import (
	"context"
	"log/slog"

	"resty.dev/v3"

	"reacji/internal/config"
	"reacji/internal/core"
	"reacji/pkg/slackapi"
)

type Factory struct {
	Logger  *slog.Logger
	Config  *config.Config
	Secrets core.SecretResolver
}

func (f *Factory) Init(context.Context) error {
	f.Logger = f.Logger.With("component", "chat.Factory")
	return nil
}

// Client resolves the bot token and builds a chat client around it.
func (f *Factory) Client(ctx context.Context) (core.ChatClient, error) {
	token, err := f.Secrets.Get(ctx, f.Config.TokenParam, true)
	if err != nil {
		return nil, err
	}

	return &client{api: f.newAPIClient(token)}, nil
}

// AppClient builds a client around the app-level token, used only for
// Socket Mode connection establishment.
func (f *Factory) AppClient(ctx context.Context) (*slackapi.Client, error) {
	token, err := f.Secrets.Get(ctx, f.Config.AppTokenParam, true)
	if err != nil {
		return nil, err
	}

	return f.newAPIClient(token), nil
}

func (f *Factory) newAPIClient(token string) *slackapi.Client {
	return slackapi.NewClient(&slackapi.ClientConfig{
		BaseURL: f.Config.ChatAPIURL,
		Token:   token,

		TransportSettings: slackapi.DefaultConfig.TransportSettings,

		ResponseMiddlewares: []resty.ResponseMiddleware{metricMiddleware},
	})
}
