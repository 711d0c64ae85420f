package catching_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"echoes/internal/catching"
	"echoes/internal/core"
	"echoes/internal/view"
	"echoes/pkg/whisper"
)

type fakeBackend struct {
	core.Backend

	echo     *whisper.Echo
	fetchErr error

	total    int64
	countErr error

	seenErr error
	seen    []string
}

func (f *fakeBackend) FetchRandomUnseenEcho(context.Context, string, *string) (*whisper.Echo, error) {
	return f.echo, f.fetchErr
}

func (f *fakeBackend) CountEchoes(context.Context) (int64, error) {
	return f.total, f.countErr
}

func (f *fakeBackend) MarkEchoSeen(_ context.Context, _, echoID string) error {
	if f.seenErr != nil {
		return f.seenErr
	}
	f.seen = append(f.seen, echoID)
	return nil
}

type fakeSession struct {
	identity  *whisper.Identity
	next      *whisper.Identity
	resolving bool
}

func (f *fakeSession) Current() *whisper.Identity {
	identity := f.identity
	if f.next != nil {
		f.identity = f.next
	}
	return identity
}
func (f *fakeSession) Resolving() bool            { return f.resolving }
func (f *fakeSession) Await(context.Context) (*whisper.Identity, error) {
	return f.identity, nil
}

func newController(t *testing.T, backend *fakeBackend, sess *fakeSession) (*catching.Controller, *view.State) {
	t.Helper()

	state := &view.State{}
	c := &catching.Controller{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Backend: backend,
		Session: sess,
		View:    state,
	}
	require.NoError(t, c.Init(t.Context()))
	return c, state
}

func TestCatchShowsAndMarksSeen(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{echo: &whisper.Echo{ID: "e1", Content: "hello"}}
	c, state := newController(t, backend, &fakeSession{identity: &whisper.Identity{ID: "u1"}})

	result, err := c.Catch(t.Context(), nil)
	require.NoError(t, err)
	require.Equal(t, "e1", result.Echo.ID)
	require.Equal(t, core.EmptyNone, result.Empty)
	require.False(t, result.SeenMarkFailed)

	require.Equal(t, "e1", state.Echo().ID)
	require.Equal(t, []string{"e1"}, backend.seen)
}

func TestCatchUnauthenticated(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, &fakeBackend{}, &fakeSession{resolving: true})

	_, err := c.Catch(t.Context(), nil)
	require.ErrorIs(t, err, core.ErrNotAuthenticated)
}

func TestCatchNoEchoesExist(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{total: 0}
	c, state := newController(t, backend, &fakeSession{identity: &whisper.Identity{ID: "u1"}})

	result, err := c.Catch(t.Context(), nil)
	require.NoError(t, err)
	require.Nil(t, result.Echo)
	require.Equal(t, core.NoEchoesExist, result.Empty)
	require.Nil(t, state.Echo())
}

func TestCatchAllSeen(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{total: 7}
	c, _ := newController(t, backend, &fakeSession{identity: &whisper.Identity{ID: "u1"}})

	result, err := c.Catch(t.Context(), nil)
	require.NoError(t, err)
	require.Equal(t, core.AllSeenByUser, result.Empty)
}

func TestCatchSeenMarkFailureIsTolerated(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		echo:    &whisper.Echo{ID: "e1"},
		seenErr: errors.New("write failed"),
	}
	c, state := newController(t, backend, &fakeSession{identity: &whisper.Identity{ID: "u1"}})

	result, err := c.Catch(t.Context(), nil)
	require.NoError(t, err)
	require.True(t, result.SeenMarkFailed)
	// The echo stays displayed regardless.
	require.Equal(t, "e1", state.Echo().ID)
}

func TestCatchDiscardsStaleResult(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{echo: &whisper.Echo{ID: "e1"}}
	// The identity flips between the fetch and the settlement.
	sess := &fakeSession{
		identity: &whisper.Identity{ID: "u1"},
		next:     &whisper.Identity{ID: "u2"},
	}
	c, state := newController(t, backend, sess)

	_, err := c.Catch(t.Context(), nil)
	require.ErrorIs(t, err, core.ErrStaleResult)
	require.Nil(t, state.Echo())
	require.Empty(t, backend.seen)
}

func TestCatchClearsPreviousEcho(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{fetchErr: errors.New("down")}
	c, state := newController(t, backend, &fakeSession{identity: &whisper.Identity{ID: "u1"}})

	state.SetEcho(&whisper.Echo{ID: "old"})

	_, err := c.Catch(t.Context(), nil)
	require.Error(t, err)
	require.Nil(t, state.Echo())
}
