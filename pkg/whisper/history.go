package whisper

import (
	"context"
)

// EchoHistory returns one page of the identity's own submissions, newest
// first.
func (c *Client) EchoHistory(ctx context.Context, userID string, limit, offset int) ([]UserEcho, error) {
	echoes, err := rpc[[]UserEcho](ctx, c, "get_user_echo_history_paginated", map[string]any{
		"p_user_id": userID,
		"p_limit":   limit,
		"p_offset":  offset,
	})
	if err != nil {
		return nil, err
	}
	return *echoes, nil
}

// EchoStats returns the identity's aggregate engagement numbers, or nil for
// an identity that never submitted anything.
func (c *Client) EchoStats(ctx context.Context, userID string) (*UserEchoStats, error) {
	stats, err := rpc[[]UserEchoStats](ctx, c, "get_user_echo_stats", map[string]any{
		"p_user_id": userID,
	})
	if err != nil {
		return nil, err
	}
	if len(*stats) == 0 {
		return nil, nil
	}
	return &(*stats)[0], nil
}
