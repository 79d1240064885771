package slackapi

import (
	"context"
	"net/url"
)

const (
	chatGetPermalink = "/chat.getPermalink"
	chatPostMessage  = "/chat.postMessage"
)

// https://api.slack.com/methods/chat.getPermalink
type PermalinkResult struct {
	apiResponse

	Permalink string `json:"permalink"`
}

func (c *Client) Permalink(ctx context.Context, channelID, timestamp string) (*PermalinkResult, error) {
	res, err := c.r(ctx).
		SetQueryParamsFromValues(url.Values{
			"channel":    []string{channelID},
			"message_ts": []string{timestamp},
		}).
		SetResult(&PermalinkResult{}).
		Get(chatGetPermalink)

	if err != nil {
		return nil, err
	}

	result := res.Result().(*PermalinkResult)
	if err := checked("chat.getPermalink", result.apiResponse); err != nil {
		return nil, err
	}
	return result, nil
}

// https://api.slack.com/methods/chat.postMessage
type PostMessageResult struct {
	apiResponse

	Channel   string `json:"channel"`
	Timestamp string `json:"ts"`
}

func (c *Client) PostMessage(ctx context.Context, channelID, text string) (*PostMessageResult, error) {
	res, err := c.r(ctx).
		SetBody(map[string]string{
			"channel": channelID,
			"text":    text,
		}).
		SetResult(&PostMessageResult{}).
		Post(chatPostMessage)

	if err != nil {
		return nil, err
	}

	result := res.Result().(*PostMessageResult)
	if err := checked("chat.postMessage", result.apiResponse); err != nil {
		return nil, err
	}
	return result, nil
}
