// Package history serves the identity's own submissions, aggregate stats and
// the recently-liked panel.
package history

import (
	"context"
	"log/slog"

	"echoes/internal/core"
	"echoes/internal/view"
	"echoes/pkg/whisper"
)

// PageSize is the history page length.
const PageSize = 10

type Controller struct {
	Logger  *slog.Logger
	Backend core.Backend
	Session core.Session
	View    *view.State
}

func (c *Controller) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "history.Controller")
	return nil
}

// Page is one page of submission history. More reports whether another page
// may exist; a full page can still be the last one.
type Page struct {
	Echoes []whisper.UserEcho
	Number int
	More   bool
}

// History returns the given zero-based page of the identity's submissions,
// newest first.
func (c *Controller) History(ctx context.Context, page int) (*Page, error) {
	identity := c.Session.Current()
	if c.Session.Resolving() || identity == nil {
		return nil, core.ErrNotAuthenticated
	}
	if page < 0 {
		page = 0
	}

	echoes, err := c.Backend.EchoHistory(ctx, identity.ID, PageSize, page*PageSize)
	if err != nil {
		return nil, err
	}

	return &Page{
		Echoes: echoes,
		Number: page,
		More:   len(echoes) == PageSize,
	}, nil
}

// Stats returns aggregate engagement numbers, nil for an identity that never
// submitted anything.
func (c *Controller) Stats(ctx context.Context) (*whisper.UserEchoStats, error) {
	identity := c.Session.Current()
	if c.Session.Resolving() || identity == nil {
		return nil, core.ErrNotAuthenticated
	}

	return c.Backend.EchoStats(ctx, identity.ID)
}

// RecentLikes loads the recently-liked panel into view state.
func (c *Controller) RecentLikes(ctx context.Context) ([]whisper.LikedEcho, error) {
	identity := c.Session.Current()
	if c.Session.Resolving() || identity == nil {
		return nil, core.ErrNotAuthenticated
	}

	likes, err := c.Backend.RecentLikedEchoes(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	c.View.SetRecentLikes(likes)
	return likes, nil
}
