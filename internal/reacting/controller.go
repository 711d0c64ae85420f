// Package reacting implements the six-kind reaction toggle protocol.
package reacting

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"echoes/internal/core"
	"echoes/internal/view"
	"echoes/pkg/whisper"
)

var toggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "echoes_reaction_toggles_total",
	Help: "The total number of reaction toggles by kind and result.",
}, []string{"kind", "result"})

type Controller struct {
	Logger  *slog.Logger
	Backend core.Backend
	Session core.Session
	View    *view.State

	mu       sync.Mutex
	inflight map[string]struct{}
}

func (c *Controller) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "reacting.Controller")
	c.inflight = map[string]struct{}{}
	return nil
}

// Toggle flips one reaction kind for the current identity on the target and
// applies the authoritative (active, count) reply to view state. There is no
// speculative local increment: until the server answers, the visible state
// stays whatever it was, so a server-side business rule can never leave the
// client showing a count the server disagrees with.
//
// A second toggle for the same target while one is outstanding is rejected,
// not queued, so counter replies cannot land out of order.
func (c *Controller) Toggle(ctx context.Context, target whisper.ReactionTarget, kind whisper.ReactionKind) (*whisper.ToggleResult, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if _, err := whisper.ParseKind(string(kind)); err != nil {
		return nil, err
	}

	identity := c.Session.Current()
	if c.Session.Resolving() || identity == nil {
		return nil, core.ErrNotAuthenticated
	}

	key := target.Key()
	c.mu.Lock()
	if _, busy := c.inflight[key]; busy {
		c.mu.Unlock()
		toggles.WithLabelValues(string(kind), "rejected").Inc()
		return nil, core.ErrToggleInFlight
	}
	c.inflight[key] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
	}()

	result, err := c.Backend.ToggleReaction(ctx, target, identity.ID, kind)
	if err != nil {
		// Local state untouched; the user retries from exactly where they
		// were.
		toggles.WithLabelValues(string(kind), "error").Inc()
		return nil, err
	}

	c.View.ApplyReaction(target, kind, result.Active, result.Count)

	outcome := "off"
	if result.Active {
		outcome = "on"
	}
	toggles.WithLabelValues(string(kind), outcome).Inc()
	return result, nil
}

// Unlike removes a like from the recent-likes panel: the same toggle,
// followed by a pure local filter of the held list.
func (c *Controller) Unlike(ctx context.Context, echoID string) error {
	result, err := c.Toggle(ctx, whisper.EchoTarget(echoID), whisper.KindLike)
	if err != nil {
		return err
	}
	if result.Active {
		// The panel thought this echo was liked; the server knew better.
		c.Logger.Warn("unlike toggled a like back on", "echo_id", echoID)
	}

	c.View.RemoveRecentLike(echoID)
	return nil
}
