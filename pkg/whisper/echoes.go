package whisper

import (
	"context"

	"github.com/google/uuid"
)

// FetchRandomUnseenEcho asks the backend for one echo the given identity has
// not seen yet, optionally narrowed to a mood. Returns nil without error
// when nothing is eligible.
func (c *Client) FetchRandomUnseenEcho(ctx context.Context, userID string, moodID *string) (*Echo, error) {
	echoes, err := rpc[[]Echo](ctx, c, "fetch_random_unseen_echo", map[string]any{
		"p_user_id": userID,
		"p_mood_id": moodID,
	})
	if err != nil {
		return nil, err
	}
	if len(*echoes) == 0 {
		return nil, nil
	}
	return &(*echoes)[0], nil
}

// MarkEchoSeen records that the identity has been shown the echo. The
// backend keeps at most one seen mark per (identity, echo) pair.
func (c *Client) MarkEchoSeen(ctx context.Context, userID, echoID string) error {
	return rpcVoid(ctx, c, "mark_echo_seen", map[string]any{
		"p_user_id": userID,
		"p_echo_id": echoID,
	})
}

// CountEchoes returns the total echo population, seen or not.
func (c *Client) CountEchoes(ctx context.Context) (int64, error) {
	count, err := rpc[int64](ctx, c, "count_all_echoes", map[string]any{})
	if err != nil {
		return 0, err
	}
	return *count, nil
}

// SubmitEcho inserts a new echo and returns the created row.
func (c *Client) SubmitEcho(ctx context.Context, userID, content string, moodID *string) (*Echo, error) {
	var created []Echo
	res, err := c.r(ctx).
		SetHeader("Prefer", "return=representation").
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetBody([]map[string]any{{
			"user_id": userID,
			"content": content,
			"mood_id": moodID,
		}}).
		SetResult(&created).
		SetError(&APIError{}).
		Post(restPrefix + "/echoes")
	if err != nil {
		return nil, err
	}
	if err := checkStatus(res); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, nil
	}
	return &created[0], nil
}
