package history_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"echoes/internal/core"
	"echoes/internal/history"
	"echoes/internal/view"
	"echoes/pkg/whisper"
)

type fakeBackend struct {
	core.Backend

	echoes []whisper.UserEcho
	stats  *whisper.UserEchoStats
	likes  []whisper.LikedEcho

	lastLimit  int
	lastOffset int
}

func (f *fakeBackend) EchoHistory(_ context.Context, _ string, limit, offset int) ([]whisper.UserEcho, error) {
	f.lastLimit = limit
	f.lastOffset = offset

	if offset >= len(f.echoes) {
		return nil, nil
	}
	end := min(offset+limit, len(f.echoes))
	return f.echoes[offset:end], nil
}

func (f *fakeBackend) EchoStats(context.Context, string) (*whisper.UserEchoStats, error) {
	return f.stats, nil
}

func (f *fakeBackend) RecentLikedEchoes(context.Context, string) ([]whisper.LikedEcho, error) {
	return f.likes, nil
}

type fakeSession struct {
	identity *whisper.Identity
}

func (f *fakeSession) Current() *whisper.Identity { return f.identity }
func (f *fakeSession) Resolving() bool            { return f.identity == nil }
func (f *fakeSession) Await(context.Context) (*whisper.Identity, error) {
	return f.identity, nil
}

func newController(t *testing.T, backend *fakeBackend) (*history.Controller, *view.State) {
	t.Helper()

	state := &view.State{}
	c := &history.Controller{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Backend: backend,
		Session: &fakeSession{identity: &whisper.Identity{ID: "u1"}},
		View:    state,
	}
	require.NoError(t, c.Init(t.Context()))
	return c, state
}

func manyEchoes(n int) []whisper.UserEcho {
	echoes := make([]whisper.UserEcho, n)
	for i := range echoes {
		echoes[i] = whisper.UserEcho{ID: string(rune('a' + i))}
	}
	return echoes
}

func TestHistoryPagination(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{echoes: manyEchoes(history.PageSize + 3)}
	c, _ := newController(t, backend)

	page, err := c.History(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, page.Echoes, history.PageSize)
	require.True(t, page.More)
	require.Equal(t, history.PageSize, backend.lastLimit)
	require.Equal(t, 0, backend.lastOffset)

	page, err = c.History(t.Context(), 1)
	require.NoError(t, err)
	require.Len(t, page.Echoes, 3)
	require.False(t, page.More)
	require.Equal(t, history.PageSize, backend.lastOffset)
}

func TestHistoryNegativePageClamped(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{echoes: manyEchoes(2)}
	c, _ := newController(t, backend)

	page, err := c.History(t.Context(), -5)
	require.NoError(t, err)
	require.Equal(t, 0, page.Number)
	require.Equal(t, 0, backend.lastOffset)
}

func TestStatsNilForNewIdentity(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, &fakeBackend{})

	stats, err := c.Stats(t.Context())
	require.NoError(t, err)
	require.Nil(t, stats)
}

func TestRecentLikesPopulatesView(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{likes: []whisper.LikedEcho{{ID: "e1"}, {ID: "e2"}}}
	c, state := newController(t, backend)

	likes, err := c.RecentLikes(t.Context())
	require.NoError(t, err)
	require.Len(t, likes, 2)
	require.Len(t, state.RecentLikes(), 2)
}
