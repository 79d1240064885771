package slackapi

import (
	"context"
)

const authTest = "/auth.test"

// https://api.slack.com/methods/auth.test
type AuthTestResult struct {
	apiResponse

	URL    string `json:"url"`
	Team   string `json:"team"`
	User   string `json:"user"`
	TeamID string `json:"team_id"`
	UserID string `json:"user_id"`
}

func (c *Client) AuthTest(ctx context.Context) (*AuthTestResult, error) {
	res, err := c.r(ctx).
		SetResult(&AuthTestResult{}).
		Post(authTest)

	if err != nil {
		return nil, err
	}

	result := res.Result().(*AuthTestResult)
	if err := checked("auth.test", result.apiResponse); err != nil {
		return nil, err
	}
	return result, nil
}
