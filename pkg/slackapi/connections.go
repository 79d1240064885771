package slackapi

import (
	"context"
)

const appsConnectionsOpen = "/apps.connections.open"

// https://api.slack.com/methods/apps.connections.open
//
// Requires an app-level token, not the bot token.
type ConnectionsOpenResult struct {
	apiResponse

	URL string `json:"url"`
}

func (c *Client) ConnectionsOpen(ctx context.Context) (*ConnectionsOpenResult, error) {
	res, err := c.r(ctx).
		SetResult(&ConnectionsOpenResult{}).
		Post(appsConnectionsOpen)

	if err != nil {
		return nil, err
	}

	result := res.Result().(*ConnectionsOpenResult)
	if err := checked("apps.connections.open", result.apiResponse); err != nil {
		return nil, err
	}
	return result, nil
}
