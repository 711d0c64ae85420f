package submitting_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"echoes/internal/core"
	"echoes/internal/submitting"
	"echoes/pkg/whisper"
)

type fakeBackend struct {
	core.Backend

	similarity    *whisper.SimilarityResult
	similarityErr error

	submitted []string
	submitErr error
}

func (f *fakeBackend) CheckSimilarContent(context.Context, string) (*whisper.SimilarityResult, error) {
	return f.similarity, f.similarityErr
}

func (f *fakeBackend) SubmitEcho(_ context.Context, _ string, content string, _ *string) (*whisper.Echo, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = append(f.submitted, content)
	return &whisper.Echo{ID: "e1", Content: content}, nil
}

type fakeSession struct {
	identity *whisper.Identity
}

func (f *fakeSession) Current() *whisper.Identity { return f.identity }
func (f *fakeSession) Resolving() bool            { return f.identity == nil }
func (f *fakeSession) Await(context.Context) (*whisper.Identity, error) {
	return f.identity, nil
}

func newController(t *testing.T, backend *fakeBackend) *submitting.Controller {
	t.Helper()

	c := &submitting.Controller{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Backend: backend,
		Session: &fakeSession{identity: &whisper.Identity{ID: "u1"}},
	}
	require.NoError(t, c.Init(t.Context()))
	return c
}

func TestDropSubmits(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{similarity: &whisper.SimilarityResult{SimilarityScore: 0.1}}
	c := newController(t, backend)

	result, err := c.Drop(t.Context(), "  a fresh thought  ", nil)
	require.NoError(t, err)
	require.False(t, result.Varied)
	require.Equal(t, "e1", result.Echo.ID)
	require.Equal(t, []string{"a fresh thought"}, backend.submitted)
}

func TestDropValidation(t *testing.T) {
	t.Parallel()

	c := newController(t, &fakeBackend{})

	_, err := c.Drop(t.Context(), "   ", nil)
	require.ErrorIs(t, err, core.ErrEmptyContent)

	_, err = c.Drop(t.Context(), strings.Repeat("x", whisper.MaxContentLength+1), nil)
	require.ErrorIs(t, err, core.ErrContentTooLong)
}

func TestDropVariesSimilarContent(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{similarity: &whisper.SimilarityResult{IsSimilar: true, SimilarityScore: 0.95}}
	c := newController(t, backend)

	result, err := c.Drop(t.Context(), "the void listens tonight", nil)
	require.NoError(t, err)
	require.True(t, result.Varied)
	require.InDelta(t, 0.95, result.SimilarityScore, 0.001)
	require.Len(t, backend.submitted, 1)
}

func TestDropSimilarityFailureIsAdvisory(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{similarityErr: errors.New("rpc down")}
	c := newController(t, backend)

	result, err := c.Drop(t.Context(), "still goes through", nil)
	require.NoError(t, err)
	require.False(t, result.Varied)
	require.Equal(t, []string{"still goes through"}, backend.submitted)
}

func TestDropSubmitFailure(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{submitErr: errors.New("insert failed")}
	c := newController(t, backend)

	_, err := c.Drop(t.Context(), "hello", nil)
	require.Error(t, err)
}
