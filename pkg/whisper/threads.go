package whisper

import (
	"context"

	"github.com/google/uuid"
)

// FetchThread returns the flat reply list of an echo, depth-first order,
// with thread depth and the caller's per-kind flags precomputed server-side.
func (c *Client) FetchThread(ctx context.Context, echoID, userID string) ([]Reply, error) {
	replies, err := rpc[[]Reply](ctx, c, "get_echo_thread", map[string]any{
		"p_echo_id": echoID,
		"p_user_id": userID,
	})
	if err != nil {
		return nil, err
	}
	return *replies, nil
}

// SubmitReply creates a reply at any permitted depth. The server is the
// final arbiter of the depth cap.
func (c *Client) SubmitReply(ctx context.Context, userID string, submission ReplySubmission) error {
	res, err := c.r(ctx).
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetBody(map[string]any{
			"p_parent_echo_id":  submission.ParentEchoID,
			"p_parent_reply_id": submission.ParentReplyID,
			"p_user_id":         userID,
			"p_content":         submission.Content,
			"p_mood_id":         submission.MoodID,
		}).
		SetError(&APIError{}).
		Post(rpcPrefix + "/submit_echo_reply")
	if err != nil {
		return err
	}
	return checkStatus(res)
}
