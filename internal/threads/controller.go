// Package threads loads reply conversations and accepts new replies at any
// permitted depth.
package threads

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"

	"echoes/internal/core"
	"echoes/internal/view"
	"echoes/pkg/whisper"
)

// indentWidth is the per-level rendering indentation, in spaces.
const indentWidth = 2

var repliesSubmitted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "echoes_replies_submitted_total",
	Help: "The total number of successfully submitted replies.",
})

type Controller struct {
	Logger  *slog.Logger
	Backend core.Backend
	Session core.Session
	View    *view.State
}

func (c *Controller) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "threads.Controller")
	return nil
}

// Load fetches the flat reply list for an echo. Depth and the caller's
// per-kind flags come precomputed from the server; the client only needs
// parent pointers for indentation.
func (c *Controller) Load(ctx context.Context, echoID string) ([]whisper.Reply, error) {
	identity := c.Session.Current()
	if c.Session.Resolving() || identity == nil {
		return nil, core.ErrNotAuthenticated
	}

	replies, err := c.Backend.FetchThread(ctx, echoID, identity.ID)
	if err != nil {
		return nil, err
	}

	c.View.SetReplies(replies)
	return replies, nil
}

// SubmitReply validates and submits one reply. On success the thread is
// reloaded and the echo's reply counter refreshed; on failure the caller
// keeps the draft.
func (c *Controller) SubmitReply(ctx context.Context, submission whisper.ReplySubmission) error {
	content := strings.TrimSpace(submission.Content)
	if content == "" {
		return core.ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > whisper.MaxContentLength {
		return core.ErrContentTooLong
	}

	// Depth gate against the loaded thread. A UX affordance, not a security
	// boundary: the server is the final arbiter.
	if submission.ParentReplyID != nil {
		for _, reply := range c.View.Replies() {
			if reply.ID == *submission.ParentReplyID && reply.ThreadDepth >= whisper.MaxThreadDepth {
				return core.ErrReplyTooDeep
			}
		}
	}

	identity := c.Session.Current()
	if c.Session.Resolving() || identity == nil {
		return core.ErrNotAuthenticated
	}

	submission.Content = content
	if err := c.Backend.SubmitReply(ctx, identity.ID, submission); err != nil {
		return err
	}
	repliesSubmitted.Inc()

	replies, err := c.Load(ctx, submission.ParentEchoID)
	if err != nil {
		// The reply went through; only the refresh failed.
		c.Logger.Warn("reply submitted but thread reload failed", "echo_id", submission.ParentEchoID, "error", err)
		return nil
	}

	// Reply counts live on the echo, not just in the thread view.
	c.View.SetReplyCount(len(replies))
	return nil
}

// Indent returns the rendering indentation for a reply depth, capped at the
// maximum thread depth.
func Indent(depth int) int {
	return min(depth, whisper.MaxThreadDepth) * indentWidth
}

// Node is one reply with its nested children.
type Node struct {
	Reply    whisper.Reply
	Children []*Node
}

// BuildTree infers the reply tree from parent pointers. The server returns
// parents before their children; anything orphaned is promoted to a root so
// no reply ever disappears from view.
func BuildTree(replies []whisper.Reply) []*Node {
	nodes := make(map[string]*Node, len(replies))
	var roots []*Node

	for _, reply := range replies {
		node := &Node{Reply: reply}
		nodes[reply.ID] = node

		if reply.ParentReplyID != nil {
			if parent, ok := nodes[*reply.ParentReplyID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}

// Stats summarizes a loaded thread.
type Stats struct {
	TotalReplies int
	// Participants counts distinct anonymous names plus the echo author.
	Participants int
	MaxDepth     int
}

func ThreadStats(replies []whisper.Reply) Stats {
	names := lo.Uniq(lo.Map(replies, func(reply whisper.Reply, _ int) string {
		return reply.AnonymousName
	}))

	maxDepth := 0
	for _, reply := range replies {
		if reply.ThreadDepth > maxDepth {
			maxDepth = reply.ThreadDepth
		}
	}

	return Stats{
		TotalReplies: len(replies),
		Participants: len(names) + 1,
		MaxDepth:     maxDepth,
	}
}
