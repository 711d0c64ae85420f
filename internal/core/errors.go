package core

import "errors"

var (
	// ErrNotAuthenticated means no resolved identity exists yet. Retryable
	// by waiting for the bootstrap.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrTransport wraps any failed remote call. Retryable by re-invoking.
	ErrTransport = errors.New("backend unreachable")

	// ErrBootstrapFailed means the anonymous identity could not be created.
	// Blocks every dependent controller until retried.
	ErrBootstrapFailed = errors.New("anonymous session bootstrap failed")

	// ErrToggleInFlight rejects a reaction toggle while one is already
	// outstanding for the same target. Rejected, never queued.
	ErrToggleInFlight = errors.New("a reaction toggle is already in flight for this target")

	// ErrStaleResult marks a settlement whose originating identity is no
	// longer current; its result is discarded, not applied.
	ErrStaleResult = errors.New("stale result discarded")

	ErrEmptyContent   = errors.New("content is empty")
	ErrContentTooLong = errors.New("content exceeds the length limit")
	ErrReplyTooDeep   = errors.New("replies are capped at depth 5")
)

// EmptyReason classifies a catch that returned no echo. The two reasons call
// for different user guidance and are never conflated.
type EmptyReason int

const (
	// EmptyNone: the catch returned an echo.
	EmptyNone EmptyReason = iota
	// NoEchoesExist: the population is zero; someone has to seed content.
	NoEchoesExist
	// AllSeenByUser: content exists, this identity has seen all of it.
	AllSeenByUser
)

func (r EmptyReason) String() string {
	switch r {
	case NoEchoesExist:
		return "no echoes exist"
	case AllSeenByUser:
		return "all echoes seen"
	default:
		return "not empty"
	}
}
