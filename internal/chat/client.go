package chat

import (
	"context"

	"github.com/samber/lo"

	"reacji/internal/core"
	"reacji/pkg/slackapi"
)

type client struct {
	api *slackapi.Client
}

func (c *client) UserEmail(ctx context.Context, userID string) (string, error) {
	info, err := c.api.UserInfo(ctx, userID)
	if err != nil {
		return "", err
	}
	return info.User.Profile.Email, nil
}

func (c *client) Channels(ctx context.Context) ([]core.Channel, error) {
	channels, err := c.api.Channels(ctx)
	if err != nil {
		return nil, err
	}

	return lo.Map(channels, func(ch slackapi.Channel, _ int) core.Channel {
		return core.Channel{ID: ch.ID, Name: ch.Name}
	}), nil
}

func (c *client) Permalink(ctx context.Context, channelID, timestamp string) (string, error) {
	result, err := c.api.Permalink(ctx, channelID, timestamp)
	if err != nil {
		return "", err
	}
	return result.Permalink, nil
}

func (c *client) PostMessage(ctx context.Context, channelID, text string) error {
	_, err := c.api.PostMessage(ctx, channelID, text)
	return err
}
