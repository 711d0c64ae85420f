package whisper

import (
	"context"
)

// CheckSimilarContent asks the backend whether text reads like an existing
// echo. Advisory only; the caller decides what to do with a hit.
func (c *Client) CheckSimilarContent(ctx context.Context, content string) (*SimilarityResult, error) {
	return rpc[SimilarityResult](ctx, c, "check_similar_content", map[string]any{
		"p_content": content,
	})
}
