package view_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"echoes/internal/view"
	"echoes/pkg/whisper"
)

func TestApplyReactionToEcho(t *testing.T) {
	t.Parallel()

	state := &view.State{}
	state.SetEcho(&whisper.Echo{ID: "e1"})

	applied := state.ApplyReaction(whisper.EchoTarget("e1"), whisper.KindFire, true, 4)
	require.True(t, applied)

	echo := state.Echo()
	require.Equal(t, 4, echo.Fire)
	require.Equal(t, 4, echo.Total)
	require.True(t, echo.FireActive)
}

func TestApplyReactionStaleTarget(t *testing.T) {
	t.Parallel()

	state := &view.State{}
	state.SetEcho(&whisper.Echo{ID: "e1"})

	require.False(t, state.ApplyReaction(whisper.EchoTarget("other"), whisper.KindLike, true, 1))
	require.Equal(t, 0, state.Echo().Like)

	state.ClearEcho()
	require.False(t, state.ApplyReaction(whisper.EchoTarget("e1"), whisper.KindLike, true, 1))
}

func TestApplyReactionToReply(t *testing.T) {
	t.Parallel()

	state := &view.State{}
	state.SetReplies([]whisper.Reply{{ID: "r1"}, {ID: "r2"}})

	require.True(t, state.ApplyReaction(whisper.ReplyTarget("r2"), whisper.KindLove, true, 2))

	replies := state.Replies()
	require.Equal(t, 0, replies[0].Love)
	require.Equal(t, 2, replies[1].Love)
	require.True(t, replies[1].LoveActive)

	require.False(t, state.ApplyReaction(whisper.ReplyTarget("gone"), whisper.KindLove, true, 1))
}

func TestApplyReactionTouchesOneKindOnly(t *testing.T) {
	t.Parallel()

	state := &view.State{}
	echo := &whisper.Echo{ID: "e1"}
	echo.SetCount(whisper.KindLike, 3)
	echo.SetActive(whisper.KindLike, true)
	state.SetEcho(echo)

	state.ApplyReaction(whisper.EchoTarget("e1"), whisper.KindSad, true, 1)

	got := state.Echo()
	require.Equal(t, 3, got.Like)
	require.True(t, got.LikeActive)
	require.Equal(t, 1, got.Sad)
	require.Equal(t, 4, got.Total)
}

func TestSetReplyCount(t *testing.T) {
	t.Parallel()

	state := &view.State{}
	state.SetReplyCount(3) // no echo, no-op

	state.SetEcho(&whisper.Echo{ID: "e1"})
	state.SetReplyCount(3)
	require.Equal(t, 3, state.Echo().ReplyCount)
}

func TestRemoveRecentLike(t *testing.T) {
	t.Parallel()

	state := &view.State{}
	state.SetRecentLikes([]whisper.LikedEcho{{ID: "e1"}, {ID: "e2"}})

	state.RemoveRecentLike("e1")

	likes := state.RecentLikes()
	require.Len(t, likes, 1)
	require.Equal(t, "e2", likes[0].ID)
}
