// Package submitting releases new echoes into the pool.
package submitting

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"echoes/internal/core"
	"echoes/pkg/vary"
	"echoes/pkg/whisper"
)

var drops = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "echoes_drops_total",
	Help: "The total number of echo submissions by outcome.",
}, []string{"outcome"})

type Controller struct {
	Logger  *slog.Logger
	Backend core.Backend
	Session core.Session
}

// Result is the outcome of one drop.
type Result struct {
	Echo *whisper.Echo

	// SimilarityScore is set when the similarity check answered, whether or
	// not the content was ultimately varied.
	SimilarityScore float64
	Varied          bool
}

func (c *Controller) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "submitting.Controller")
	return nil
}

// Drop validates and submits one echo. Near-duplicate content is lightly
// varied rather than rejected; a failing similarity check is advisory and
// never blocks the drop.
func (c *Controller) Drop(ctx context.Context, content string, moodID *string) (*Result, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, core.ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > whisper.MaxContentLength {
		return nil, core.ErrContentTooLong
	}

	identity := c.Session.Current()
	if c.Session.Resolving() || identity == nil {
		drops.WithLabelValues("unauthenticated").Inc()
		return nil, core.ErrNotAuthenticated
	}

	result := &Result{}

	similarity, err := c.Backend.CheckSimilarContent(ctx, content)
	if err != nil {
		c.Logger.Warn("similarity check failed, submitting as-is", "error", err)
	} else if similarity != nil {
		result.SimilarityScore = similarity.SimilarityScore
		if similarity.IsSimilar {
			varied := vary.Vary(content, varySeed())
			// Variation appends at most a few runes; re-check so a maximal
			// submission can not slip past the length bound.
			if utf8.RuneCountInString(varied) <= whisper.MaxContentLength {
				content = varied
				result.Varied = true
			}
		}
	}

	echo, err := c.Backend.SubmitEcho(ctx, identity.ID, content, moodID)
	if err != nil {
		drops.WithLabelValues("error").Inc()
		return nil, err
	}
	drops.WithLabelValues("ok").Inc()

	result.Echo = echo
	return result, nil
}

// varySeed derives a per-drop seed so identical texts vary differently.
func varySeed() int64 {
	id := uuid.New()
	seed := int64(0)
	for _, b := range id[:8] {
		seed = seed<<8 | int64(b)
	}
	return seed ^ time.Now().UnixNano()
}
