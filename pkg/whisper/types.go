package whisper

import (
	"fmt"
	"time"
)

// MaxContentLength bounds echo and reply bodies, in runes.
const MaxContentLength = 300

// MaxThreadDepth is the deepest nesting level a reply may have.
const MaxThreadDepth = 5

type ReactionKind string

const (
	KindLike  ReactionKind = "like"
	KindLove  ReactionKind = "love"
	KindLaugh ReactionKind = "laugh"
	KindThink ReactionKind = "think"
	KindSad   ReactionKind = "sad"
	KindFire  ReactionKind = "fire"
)

// Kinds returns the six reaction kinds in display order.
func Kinds() []ReactionKind {
	return []ReactionKind{KindLike, KindLove, KindLaugh, KindThink, KindSad, KindFire}
}

func (k ReactionKind) Valid() bool {
	switch k {
	case KindLike, KindLove, KindLaugh, KindThink, KindSad, KindFire:
		return true
	}
	return false
}

func ParseKind(s string) (ReactionKind, error) {
	k := ReactionKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown reaction kind: %q", s)
	}
	return k, nil
}

type KindConfig struct {
	Kind  ReactionKind
	Emoji string
	Label string
}

var KindConfigs = []KindConfig{
	{KindLike, "👍", "Like"},
	{KindLove, "❤️", "Love"},
	{KindLaugh, "😂", "Laugh"},
	{KindThink, "🤔", "Think"},
	{KindSad, "😢", "Sad"},
	{KindFire, "🔥", "Fire"},
}

// ReactionCounts holds the six per-kind counters plus the derived total.
// Total is always the sum of the six counters.
type ReactionCounts struct {
	Like  int `json:"like_count"`
	Love  int `json:"love_count"`
	Laugh int `json:"laugh_count"`
	Think int `json:"think_count"`
	Sad   int `json:"sad_count"`
	Fire  int `json:"fire_count"`
	Total int `json:"total_reactions"`
}

func (c *ReactionCounts) Count(k ReactionKind) int {
	switch k {
	case KindLike:
		return c.Like
	case KindLove:
		return c.Love
	case KindLaugh:
		return c.Laugh
	case KindThink:
		return c.Think
	case KindSad:
		return c.Sad
	case KindFire:
		return c.Fire
	}
	return 0
}

// SetCount replaces one counter with the authoritative server value and
// recomputes Total from the six counters.
func (c *ReactionCounts) SetCount(k ReactionKind, n int) {
	switch k {
	case KindLike:
		c.Like = n
	case KindLove:
		c.Love = n
	case KindLaugh:
		c.Laugh = n
	case KindThink:
		c.Think = n
	case KindSad:
		c.Sad = n
	case KindFire:
		c.Fire = n
	}
	c.Total = c.Like + c.Love + c.Laugh + c.Think + c.Sad + c.Fire
}

// UserReactions carries the caller's per-kind flags as returned by the
// backend alongside the counters.
type UserReactions struct {
	LikeActive  bool `json:"user_like_reaction"`
	LoveActive  bool `json:"user_love_reaction"`
	LaughActive bool `json:"user_laugh_reaction"`
	ThinkActive bool `json:"user_think_reaction"`
	SadActive   bool `json:"user_sad_reaction"`
	FireActive  bool `json:"user_fire_reaction"`
}

func (u *UserReactions) Active(k ReactionKind) bool {
	switch k {
	case KindLike:
		return u.LikeActive
	case KindLove:
		return u.LoveActive
	case KindLaugh:
		return u.LaughActive
	case KindThink:
		return u.ThinkActive
	case KindSad:
		return u.SadActive
	case KindFire:
		return u.FireActive
	}
	return false
}

func (u *UserReactions) SetActive(k ReactionKind, active bool) {
	switch k {
	case KindLike:
		u.LikeActive = active
	case KindLove:
		u.LoveActive = active
	case KindLaugh:
		u.LaughActive = active
	case KindThink:
		u.ThinkActive = active
	case KindSad:
		u.SadActive = active
	case KindFire:
		u.FireActive = active
	}
}

// Echo is one anonymous text submission.
type Echo struct {
	ID      string  `json:"id"`
	Content string  `json:"content"`
	MoodID  *string `json:"mood_id"`

	MoodName  *string `json:"mood_name"`
	MoodEmoji *string `json:"mood_emoji"`
	MoodColor *string `json:"mood_color"`

	ReactionCounts
	UserReactions

	ReplyCount int       `json:"reply_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// LikesCount is the legacy single-counter projection. It is derived from the
// canonical six-kind counters and never stored.
func (e *Echo) LikesCount() int { return e.Like }

// IsLikedByUser is the legacy boolean projection of the like flag.
func (e *Echo) IsLikedByUser() bool { return e.LikeActive }

// Reply is one message in an echo's thread. ThreadDepth is computed
// server-side: 0 for direct replies, parent depth + 1 otherwise.
type Reply struct {
	ID            string  `json:"id"`
	ParentEchoID  string  `json:"parent_echo_id"`
	ParentReplyID *string `json:"parent_reply_id"`
	Content       string  `json:"content"`
	MoodID        *string `json:"mood_id"`

	MoodName  *string `json:"mood_name"`
	MoodEmoji *string `json:"mood_emoji"`
	MoodColor *string `json:"mood_color"`

	ThreadDepth    int    `json:"thread_depth"`
	AnonymousName  string `json:"anonymous_name"`
	AnonymousColor string `json:"anonymous_color"`

	ReactionCounts
	UserReactions

	CreatedAt time.Time `json:"created_at"`
}

// ReplySubmission is the payload of submit_echo_reply.
type ReplySubmission struct {
	ParentEchoID  string  `json:"parent_echo_id"`
	ParentReplyID *string `json:"parent_reply_id,omitempty"`
	Content       string  `json:"content"`
	MoodID        *string `json:"mood_id,omitempty"`
}

// Mood is one entry of the fixed mood vocabulary.
type Mood struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Emoji       string    `json:"emoji"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserEcho is one row of the caller's own submission history.
type UserEcho struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	MoodID    *string   `json:"mood_id"`
	MoodName  *string   `json:"mood_name"`
	MoodEmoji *string   `json:"mood_emoji"`
	MoodColor *string   `json:"mood_color"`

	ReactionCounts

	TimesSeen int `json:"times_seen"`
}

type UserEchoStats struct {
	TotalEchoes              int     `json:"total_echoes"`
	TotalReactionsReceived   int     `json:"total_reactions_received"`
	MostPopularEchoID        *string `json:"most_popular_echo_id"`
	MostPopularEchoReactions int     `json:"most_popular_echo_reactions"`
	FavoriteMood             string  `json:"favorite_mood"`
	FavoriteMoodEmoji        string  `json:"favorite_mood_emoji"`
	DaysActive               int     `json:"days_active"`
}

// LikedEcho is one entry of the recently-liked panel, flattened from the
// nested echo row the backend returns.
type LikedEcho struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToggleResult is the authoritative outcome of a reaction toggle: the new
// has-reaction flag and the new counter for exactly that kind.
type ToggleResult struct {
	Active bool `json:"is_active"`
	Count  int  `json:"new_count"`
}

type SimilarityResult struct {
	IsSimilar       bool    `json:"is_similar"`
	SimilarityScore float64 `json:"similarity_score"`
}

// ReactionTarget addresses either an echo or a reply; exactly one of the two
// IDs is set.
type ReactionTarget struct {
	EchoID  string
	ReplyID string
}

func EchoTarget(id string) ReactionTarget  { return ReactionTarget{EchoID: id} }
func ReplyTarget(id string) ReactionTarget { return ReactionTarget{ReplyID: id} }

func (t ReactionTarget) IsReply() bool { return t.ReplyID != "" }

// Key identifies the target for in-flight toggle tracking.
func (t ReactionTarget) Key() string {
	if t.IsReply() {
		return "reply:" + t.ReplyID
	}
	return "echo:" + t.EchoID
}

func (t ReactionTarget) Validate() error {
	if (t.EchoID == "") == (t.ReplyID == "") {
		return fmt.Errorf("reaction target needs exactly one of echo id or reply id")
	}
	return nil
}
