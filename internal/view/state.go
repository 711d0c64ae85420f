// Package view holds the client-side render state. Entries are owned by
// whichever controller last populated them and are replaced wholesale per
// operation; the one exception is the targeted per-kind reaction apply.
package view

import (
	"sync"

	"github.com/samber/lo"

	"echoes/pkg/whisper"
)

type State struct {
	mu          sync.Mutex
	echo        *whisper.Echo
	replies     []whisper.Reply
	recentLikes []whisper.LikedEcho
}

// SetEcho replaces the currently displayed echo.
func (s *State) SetEcho(echo *whisper.Echo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.echo = echo
}

func (s *State) ClearEcho() {
	s.SetEcho(nil)
}

// Echo returns a copy of the current echo, nil when nothing is displayed.
func (s *State) Echo() *whisper.Echo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.echo == nil {
		return nil
	}
	echo := *s.echo
	return &echo
}

// SetReplyCount refreshes the reply counter on the displayed echo.
func (s *State) SetReplyCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.echo != nil {
		s.echo.ReplyCount = n
	}
}

func (s *State) SetReplies(replies []whisper.Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = replies
}

func (s *State) Replies() []whisper.Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]whisper.Reply(nil), s.replies...)
}

func (s *State) SetRecentLikes(likes []whisper.LikedEcho) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recentLikes = likes
}

func (s *State) RecentLikes() []whisper.LikedEcho {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]whisper.LikedEcho(nil), s.recentLikes...)
}

// RemoveRecentLike drops one echo from the recent-likes list. A pure local
// filter, no re-fetch.
func (s *State) RemoveRecentLike(echoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recentLikes = lo.Reject(s.recentLikes, func(liked whisper.LikedEcho, _ int) bool {
		return liked.ID == echoID
	})
}

// ApplyReaction writes the authoritative (active, count) pair onto exactly
// one kind of the targeted echo or reply, recomputing the total. Reports
// whether the target was still on screen; stale targets are ignored.
func (s *State) ApplyReaction(target whisper.ReactionTarget, kind whisper.ReactionKind, active bool, count int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if target.IsReply() {
		for i := range s.replies {
			if s.replies[i].ID == target.ReplyID {
				s.replies[i].SetCount(kind, count)
				s.replies[i].SetActive(kind, active)
				return true
			}
		}
		return false
	}

	if s.echo == nil || s.echo.ID != target.EchoID {
		return false
	}
	s.echo.SetCount(kind, count)
	s.echo.SetActive(kind, active)
	return true
}
