package slackapi

import (
	"context"
)

const usersInfo = "/users.info"

// https://api.slack.com/methods/users.info
type UserInfo struct {
	apiResponse

	User struct {
		ID      string `json:"id"`
		Profile struct {
			Email string `json:"email"`
		} `json:"profile"`
	} `json:"user"`
}

func (c *Client) UserInfo(ctx context.Context, userID string) (*UserInfo, error) {
	res, err := c.r(ctx).
		SetFormData(map[string]string{
			"user": userID,
		}).
		SetResult(&UserInfo{}).
		Post(usersInfo)

	if err != nil {
		return nil, err
	}

	info := res.Result().(*UserInfo)
	if err := checked("users.info", info.apiResponse); err != nil {
		return nil, err
	}
	return info, nil
}
