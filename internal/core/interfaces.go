package core

import (
	"context"

	"echoes/pkg/whisper"
)

// Backend is everything the controllers need from the remote
// persistence/identity collaborator. Implemented by internal/backend over
// the whisper client; faked in tests.
type Backend interface {
	// Auth.
	LoadSession(ctx context.Context) error
	SignInAnonymously(ctx context.Context) (*whisper.Identity, error)
	OnIdentityChange(fn func(whisper.IdentityEvent)) (unsubscribe func())

	// Echoes.
	FetchRandomUnseenEcho(ctx context.Context, userID string, moodID *string) (*whisper.Echo, error)
	MarkEchoSeen(ctx context.Context, userID, echoID string) error
	CountEchoes(ctx context.Context) (int64, error)
	SubmitEcho(ctx context.Context, userID, content string, moodID *string) (*whisper.Echo, error)
	CheckSimilarContent(ctx context.Context, content string) (*whisper.SimilarityResult, error)

	// Reactions.
	ToggleReaction(ctx context.Context, target whisper.ReactionTarget, userID string, kind whisper.ReactionKind) (*whisper.ToggleResult, error)
	RecentLikedEchoes(ctx context.Context, userID string) ([]whisper.LikedEcho, error)

	// Threads.
	FetchThread(ctx context.Context, echoID, userID string) ([]whisper.Reply, error)
	SubmitReply(ctx context.Context, userID string, submission whisper.ReplySubmission) error

	// History.
	EchoHistory(ctx context.Context, userID string, limit, offset int) ([]whisper.UserEcho, error)
	EchoStats(ctx context.Context, userID string) (*whisper.UserEchoStats, error)

	// Vocabulary.
	ListMoods(ctx context.Context) ([]whisper.Mood, error)
}

// Session exposes the resolved identity to the controllers. The session
// bootstrapper is its only implementation and its single writer.
type Session interface {
	// Current returns the resolved identity, nil before resolution and
	// after sign-out.
	Current() *whisper.Identity
	// Resolving reports whether the bootstrap is still in flight;
	// controllers refuse to act while it is.
	Resolving() bool
	// Await blocks until the bootstrap reaches Resolved or Failed.
	Await(ctx context.Context) (*whisper.Identity, error)
}
