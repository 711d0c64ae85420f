package whisper

import (
	"context"
)

// ListMoods returns the fixed mood vocabulary.
func (c *Client) ListMoods(ctx context.Context) ([]Mood, error) {
	var moods []Mood
	res, err := c.r(ctx).
		SetQueryParams(map[string]string{
			"select": "*",
			"order":  "name.asc",
		}).
		SetResult(&moods).
		SetError(&APIError{}).
		Get(restPrefix + "/echo_moods")
	if err != nil {
		return nil, err
	}
	if err := checkStatus(res); err != nil {
		return nil, err
	}
	return moods, nil
}
