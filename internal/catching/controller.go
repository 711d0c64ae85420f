// Package catching fetches one unseen echo per request and classifies the
// empty case.
package catching

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"echoes/internal/core"
	"echoes/internal/view"
	"echoes/pkg/whisper"
)

var (
	catches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "echoes_catches_total",
		Help: "The total number of catch attempts by outcome.",
	}, []string{"outcome"})

	seenMarkFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "echoes_seen_mark_failures_total",
		Help: "Seen-mark writes that failed after the echo was shown.",
	})
)

type Controller struct {
	Logger  *slog.Logger
	Backend core.Backend
	Session core.Session
	View    *view.State
}

// Result is the outcome of one catch: either an echo (possibly with a
// seen-mark warning) or an empty-result reason.
type Result struct {
	Echo  *whisper.Echo
	Empty core.EmptyReason

	// SeenMarkFailed warns that the displayed echo may resurface later;
	// the catch itself still succeeded.
	SeenMarkFailed bool
}

func (c *Controller) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "catching.Controller")
	return nil
}

// Catch retrieves one echo the current identity has not seen, honoring the
// optional mood filter. The echo is shown before the seen mark is written;
// a failed mark is tolerated, the inverse ordering never happens.
func (c *Controller) Catch(ctx context.Context, moodID *string) (*Result, error) {
	identity := c.Session.Current()
	if c.Session.Resolving() || identity == nil {
		catches.WithLabelValues("unauthenticated").Inc()
		return nil, core.ErrNotAuthenticated
	}

	c.View.ClearEcho()

	echo, err := c.Backend.FetchRandomUnseenEcho(ctx, identity.ID, moodID)
	if err != nil {
		catches.WithLabelValues("error").Inc()
		return nil, err
	}

	if echo == nil {
		// The retrieval call alone cannot tell "nothing exists" from
		// "you have seen everything"; the population count can.
		total, err := c.Backend.CountEchoes(ctx)
		if err != nil {
			catches.WithLabelValues("error").Inc()
			return nil, err
		}
		if total == 0 {
			catches.WithLabelValues("no_content").Inc()
			return &Result{Empty: core.NoEchoesExist}, nil
		}
		catches.WithLabelValues("all_seen").Inc()
		return &Result{Empty: core.AllSeenByUser}, nil
	}

	if current := c.Session.Current(); current == nil || current.ID != identity.ID {
		c.Logger.Warn("identity changed mid-catch, discarding echo", "echo_id", echo.ID)
		catches.WithLabelValues("stale").Inc()
		return nil, core.ErrStaleResult
	}

	c.View.SetEcho(echo)
	result := &Result{Echo: echo}

	if err := c.Backend.MarkEchoSeen(ctx, identity.ID, echo.ID); err != nil {
		// The echo is already on screen; the failed mark only means it can
		// resurface on a later catch.
		c.Logger.Warn("seen mark failed", "echo_id", echo.ID, "error", err)
		seenMarkFailures.Inc()
		result.SeenMarkFailed = true
	}

	catches.WithLabelValues("ok").Inc()
	return result, nil
}
