// Package session guarantees the device holds exactly one resolved
// anonymous identity before any other controller acts.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"echoes/internal/core"
	"echoes/pkg/whisper"
)

type State int

const (
	StateUnresolved State = iota
	StateResolving
	StateResolved
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateResolving:
		return "resolving"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

const signInTimeout = 10 * time.Second

// Bootstrapper drives Unresolved -> Resolving -> {Resolved, Failed}. It is
// the single writer of the current identity; everything else only reads it.
type Bootstrapper struct {
	Logger  *slog.Logger
	Backend core.Backend

	mu       sync.Mutex
	state    State
	identity *whisper.Identity
	err      error
	done     chan struct{}
	settled  bool
	unsub    func()
}

func (b *Bootstrapper) Init(ctx context.Context) error {
	b.Logger = b.Logger.With("component", "session.Bootstrapper")
	b.done = make(chan struct{})
	b.unsub = b.Backend.OnIdentityChange(b.handle)

	// Replays the persisted session (or its absence) as the first event.
	return b.Backend.LoadSession(ctx)
}

// Shutdown releases the identity-change subscription, the only owned
// resource.
func (b *Bootstrapper) Shutdown(_ context.Context) error {
	if b.unsub != nil {
		b.unsub()
	}
	return nil
}

func (b *Bootstrapper) Current() *whisper.Identity {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.identity
}

func (b *Bootstrapper) Resolving() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == StateResolving || (b.state == StateUnresolved && !b.settled)
}

func (b *Bootstrapper) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Await blocks until the bootstrap settles, returning the identity or the
// terminal bootstrap error.
func (b *Bootstrapper) Await(ctx context.Context) (*whisper.Identity, error) {
	for {
		b.mu.Lock()
		switch b.state {
		case StateResolved:
			identity := b.identity
			b.mu.Unlock()
			return identity, nil
		case StateFailed:
			err := b.err
			b.mu.Unlock()
			return nil, err
		}
		done := b.done
		b.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-done:
		}
	}
}

// handle runs for every identity-change notification. The tricky case is
// anonymous creation: on success we stay in Resolving and let the follow-up
// signed-in notification perform the Resolved transition, so the creation
// response and the notification never race to set the identity.
func (b *Bootstrapper) handle(event whisper.IdentityEvent) {
	b.mu.Lock()

	switch {
	case event.Identity != nil:
		b.identity = event.Identity
		b.state = StateResolved
		b.err = nil
		b.Logger.Info("identity resolved", "user_id", event.Identity.ID, "event", string(event.Kind))
		b.settleLocked()

	case b.identity != nil:
		// Sign-out. Do not auto-recreate; only a subsequent qualifying
		// event restarts the bootstrap.
		b.identity = nil
		b.state = StateUnresolved
		b.resetLocked()
		b.Logger.Info("identity cleared")

	case event.Kind == whisper.EventSignedIn:
		// A signed-in notification with no identity is malformed; creating
		// another one here could double-apply.

	case b.state == StateResolving:
		// Creation already in flight.

	default:
		b.state = StateResolving
		b.Logger.Info("no session, creating anonymous identity")
		go b.createAnonymous()
	}

	b.mu.Unlock()
}

func (b *Bootstrapper) createAnonymous() {
	// The creation call outlives the notification that triggered it.
	ctx, cancel := context.WithTimeout(context.Background(), signInTimeout)
	defer cancel()

	_, err := b.Backend.SignInAnonymously(ctx)
	if err == nil {
		// The signed-in notification carries the session and performs the
		// Resolved transition; nothing to apply here.
		return
	}

	b.mu.Lock()
	if b.state == StateResolving {
		b.state = StateFailed
		b.err = fmt.Errorf("%w: %w", core.ErrBootstrapFailed, err)
		b.Logger.Error("anonymous sign-in failed", "error", err)
		b.settleLocked()
	}
	b.mu.Unlock()
}

func (b *Bootstrapper) settleLocked() {
	b.settled = true
	select {
	case <-b.done:
	default:
		close(b.done)
	}
}

func (b *Bootstrapper) resetLocked() {
	b.done = make(chan struct{})
	b.settled = false
}
