package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"echoes/internal/core"
	"echoes/internal/session"
	"echoes/pkg/whisper"
)

type fakeBackend struct {
	core.Backend

	mu      sync.Mutex
	handler func(whisper.IdentityEvent)

	initial   *whisper.Identity
	signedIn  *whisper.Identity
	signInErr error
	signIns   int
}

func (f *fakeBackend) OnIdentityChange(fn func(whisper.IdentityEvent)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.handler = nil
	}
}

func (f *fakeBackend) emit(event whisper.IdentityEvent) {
	f.mu.Lock()
	handler := f.handler
	f.mu.Unlock()
	if handler != nil {
		handler(event)
	}
}

func (f *fakeBackend) LoadSession(context.Context) error {
	f.emit(whisper.IdentityEvent{Kind: whisper.EventInitialSession, Identity: f.initial})
	return nil
}

func (f *fakeBackend) SignInAnonymously(context.Context) (*whisper.Identity, error) {
	f.mu.Lock()
	f.signIns++
	f.mu.Unlock()

	if f.signInErr != nil {
		return nil, f.signInErr
	}
	f.emit(whisper.IdentityEvent{Kind: whisper.EventSignedIn, Identity: f.signedIn})
	return f.signedIn, nil
}

func (f *fakeBackend) signInCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signIns
}

func newBootstrapper(t *testing.T, backend *fakeBackend) *session.Bootstrapper {
	t.Helper()

	b := &session.Bootstrapper{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Backend: backend,
	}
	require.NoError(t, b.Init(t.Context()))
	t.Cleanup(func() { b.Shutdown(context.Background()) }) //nolint:errcheck
	return b
}

func awaitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestResolvesPersistedSession(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{initial: &whisper.Identity{ID: "u1", Anonymous: true}}
	b := newBootstrapper(t, backend)

	identity, err := b.Await(awaitCtx(t))
	require.NoError(t, err)
	require.Equal(t, "u1", identity.ID)
	require.Equal(t, session.StateResolved, b.State())
	require.False(t, b.Resolving())
	require.Equal(t, 0, backend.signInCount())
}

func TestCreatesAnonymousIdentity(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{signedIn: &whisper.Identity{ID: "u2", Anonymous: true}}
	b := newBootstrapper(t, backend)

	identity, err := b.Await(awaitCtx(t))
	require.NoError(t, err)
	require.Equal(t, "u2", identity.ID)
	require.Equal(t, 1, backend.signInCount())
}

func TestBootstrapFailure(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{signInErr: errors.New("offline")}
	b := newBootstrapper(t, backend)

	_, err := b.Await(awaitCtx(t))
	require.ErrorIs(t, err, core.ErrBootstrapFailed)
	require.Equal(t, session.StateFailed, b.State())
	require.Nil(t, b.Current())
}

func TestSignOutClearsIdentity(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{initial: &whisper.Identity{ID: "u1"}}
	b := newBootstrapper(t, backend)

	_, err := b.Await(awaitCtx(t))
	require.NoError(t, err)

	backend.emit(whisper.IdentityEvent{Kind: whisper.EventSignedOut})

	require.Nil(t, b.Current())
	require.Equal(t, session.StateUnresolved, b.State())
	// No automatic re-creation on sign-out.
	require.Equal(t, 0, backend.signInCount())
}

func TestAwaitHonorsContext(t *testing.T) {
	t.Parallel()

	// A sign-in that "succeeds" without a follow-up identity notification
	// keeps the bootstrap unsettled.
	backend := &fakeBackend{}
	b := &session.Bootstrapper{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Backend: backend,
	}
	b.Init(t.Context()) //nolint:errcheck
	t.Cleanup(func() { b.Shutdown(context.Background()) }) //nolint:errcheck

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	_, err := b.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
