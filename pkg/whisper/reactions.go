package whisper

import (
	"context"
)

// ToggleReaction flips one reaction kind for (identity, target). The flip
// and the counter adjustment happen atomically server-side; the returned
// pair is the single source of truth for the new state.
func (c *Client) ToggleReaction(ctx context.Context, target ReactionTarget, userID string, kind ReactionKind) (*ToggleResult, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	name := "toggle_echo_reaction"
	params := map[string]any{
		"p_echo_id":       target.EchoID,
		"p_user_id":       userID,
		"p_reaction_type": kind,
	}
	if target.IsReply() {
		name = "toggle_reply_reaction"
		params = map[string]any{
			"p_reply_id":      target.ReplyID,
			"p_user_id":       userID,
			"p_reaction_type": kind,
		}
	}

	return rpc[ToggleResult](ctx, c, name, params)
}

// RecentLikedEchoes lists the ten most recently liked echoes for the
// identity, newest first. The nested echo rows are flattened here at the
// boundary.
func (c *Client) RecentLikedEchoes(ctx context.Context, userID string) ([]LikedEcho, error) {
	type likedRow struct {
		Echo LikedEcho `json:"echoes"`
	}

	var rows []likedRow
	res, err := c.r(ctx).
		SetQueryParams(map[string]string{
			"select":  "echoes(id,content,likes_count,created_at)",
			"user_id": "eq." + userID,
			"order":   "created_at.desc",
			"limit":   "10",
		}).
		SetResult(&rows).
		SetError(&APIError{}).
		Get(restPrefix + "/echo_likes")
	if err != nil {
		return nil, err
	}
	if err := checkStatus(res); err != nil {
		return nil, err
	}

	likes := make([]LikedEcho, 0, len(rows))
	for _, row := range rows {
		likes = append(likes, row.Echo)
	}
	return likes, nil
}
