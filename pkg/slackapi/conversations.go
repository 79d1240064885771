package slackapi

import (
	"context"
	"net/url"
)

const conversationsList = "/conversations.list"

// https://api.slack.com/methods/conversations.list
type Channel struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsArchived bool   `json:"is_archived"`
}

type channelPage struct {
	apiResponse

	Channels         []Channel `json:"channels"`
	ResponseMetadata struct {
		NextCursor string `json:"next_cursor"`
	} `json:"response_metadata"`
}

// Channels lists all non-archived channels, following cursor pagination
// until the platform reports an empty next_cursor.
func (c *Client) Channels(ctx context.Context) ([]Channel, error) {
	var channels []Channel
	cursor := ""

	for {
		params := url.Values{
			"exclude_archived": []string{"true"},
			"types":            []string{"public_channel,private_channel"},
			"limit":            []string{"200"},
		}
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		res, err := c.r(ctx).
			SetQueryParamsFromValues(params).
			SetResult(&channelPage{}).
			Get(conversationsList)

		if err != nil {
			return nil, err
		}

		page := res.Result().(*channelPage)
		if err := checked("conversations.list", page.apiResponse); err != nil {
			return nil, err
		}

		channels = append(channels, page.Channels...)

		cursor = page.ResponseMetadata.NextCursor
		if cursor == "" {
			return channels, nil
		}
	}
}
