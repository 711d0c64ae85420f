// Package backend adapts the whisper client to what the controllers need,
// tagging remote failures so callers can tell a broken network from a
// business refusal.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"resty.dev/v3"

	"echoes/internal/config"
	"echoes/internal/core"
	"echoes/internal/metrics"
	"echoes/pkg/whisper"
)

// Service implements core.Backend over a whisper client.
type Service struct {
	Logger *slog.Logger
	Config *config.Config

	client *whisper.Client
}

func (s *Service) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "backend.Service")

	client, err := whisper.NewClient(&whisper.ClientConfig{
		BaseURL:     s.Config.URL,
		AnonKey:     s.Config.AnonKey,
		SessionFile: s.Config.SessionFile,

		ResponseMiddlewares: []resty.ResponseMiddleware{metrics.LatencyMiddleware},
	})
	if err != nil {
		return err
	}

	s.client = client
	return nil
}

func (s *Service) Shutdown(_ context.Context) error {
	return s.client.Close()
}

// wrap tags transport-level failures with core.ErrTransport. Replies the
// backend actually produced keep their APIError identity.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *whisper.APIError
	if errors.As(err, &apiErr) {
		return err
	}
	return fmt.Errorf("%w: %w", core.ErrTransport, err)
}

func (s *Service) LoadSession(ctx context.Context) error {
	return s.client.Auth().LoadSession(ctx)
}

func (s *Service) SignInAnonymously(ctx context.Context) (*whisper.Identity, error) {
	identity, err := s.client.Auth().SignInAnonymously(ctx)
	return identity, wrap(err)
}

func (s *Service) OnIdentityChange(fn func(whisper.IdentityEvent)) func() {
	return s.client.Auth().OnIdentityChange(fn)
}

func (s *Service) FetchRandomUnseenEcho(ctx context.Context, userID string, moodID *string) (*whisper.Echo, error) {
	echo, err := s.client.FetchRandomUnseenEcho(ctx, userID, moodID)
	return echo, wrap(err)
}

func (s *Service) MarkEchoSeen(ctx context.Context, userID, echoID string) error {
	return wrap(s.client.MarkEchoSeen(ctx, userID, echoID))
}

func (s *Service) CountEchoes(ctx context.Context) (int64, error) {
	count, err := s.client.CountEchoes(ctx)
	return count, wrap(err)
}

func (s *Service) SubmitEcho(ctx context.Context, userID, content string, moodID *string) (*whisper.Echo, error) {
	echo, err := s.client.SubmitEcho(ctx, userID, content, moodID)
	return echo, wrap(err)
}

func (s *Service) CheckSimilarContent(ctx context.Context, content string) (*whisper.SimilarityResult, error) {
	result, err := s.client.CheckSimilarContent(ctx, content)
	return result, wrap(err)
}

func (s *Service) ToggleReaction(ctx context.Context, target whisper.ReactionTarget, userID string, kind whisper.ReactionKind) (*whisper.ToggleResult, error) {
	result, err := s.client.ToggleReaction(ctx, target, userID, kind)
	return result, wrap(err)
}

func (s *Service) RecentLikedEchoes(ctx context.Context, userID string) ([]whisper.LikedEcho, error) {
	likes, err := s.client.RecentLikedEchoes(ctx, userID)
	return likes, wrap(err)
}

func (s *Service) FetchThread(ctx context.Context, echoID, userID string) ([]whisper.Reply, error) {
	replies, err := s.client.FetchThread(ctx, echoID, userID)
	return replies, wrap(err)
}

func (s *Service) SubmitReply(ctx context.Context, userID string, submission whisper.ReplySubmission) error {
	return wrap(s.client.SubmitReply(ctx, userID, submission))
}

func (s *Service) EchoHistory(ctx context.Context, userID string, limit, offset int) ([]whisper.UserEcho, error) {
	echoes, err := s.client.EchoHistory(ctx, userID, limit, offset)
	return echoes, wrap(err)
}

func (s *Service) EchoStats(ctx context.Context, userID string) (*whisper.UserEchoStats, error) {
	stats, err := s.client.EchoStats(ctx, userID)
	return stats, wrap(err)
}

func (s *Service) ListMoods(ctx context.Context) ([]whisper.Mood, error) {
	moods, err := s.client.ListMoods(ctx)
	return moods, wrap(err)
}
