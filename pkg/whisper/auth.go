package whisper

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"resty.dev/v3"
)

// Identity is a device's anonymous session handle.
type Identity struct {
	ID        string `json:"id"`
	Anonymous bool   `json:"is_anonymous"`
}

type IdentityEventKind string

const (
	// EventInitialSession is emitted once when the persisted session (or its
	// absence) has been loaded.
	EventInitialSession IdentityEventKind = "initial_session"
	EventSignedIn       IdentityEventKind = "signed_in"
	EventSignedOut      IdentityEventKind = "signed_out"
)

// IdentityEvent notifies subscribers of the new current identity. Identity
// is nil when no session exists.
type IdentityEvent struct {
	Kind     IdentityEventKind
	Identity *Identity
}

// Session is the persisted auth state.
type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         Identity `json:"user"`
}

// Auth manages the anonymous session: creation, persistence across runs and
// change notifications. Handlers are invoked synchronously from whichever
// call mutated the session.
type Auth struct {
	client *resty.Client
	config *ClientConfig

	mu      sync.Mutex
	session *Session
	subs    map[int]func(IdentityEvent)
	nextSub int
}

func newAuth(client *resty.Client, config *ClientConfig) (*Auth, error) {
	if config.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		config.SessionFile = filepath.Join(dir, "echoes", "session.json")
	}

	return &Auth{
		client: client,
		config: config,
		subs:   map[int]func(IdentityEvent){},
	}, nil
}

// OnIdentityChange registers a handler and returns its unsubscribe func.
func (a *Auth) OnIdentityChange(fn func(IdentityEvent)) func() {
	a.mu.Lock()
	id := a.nextSub
	a.nextSub++
	a.subs[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.subs, id)
		a.mu.Unlock()
	}
}

// LoadSession reads the persisted session and emits the initial identity
// event. An unreadable or corrupt file counts as no session.
func (a *Auth) LoadSession(_ context.Context) error {
	var session *Session

	data, err := os.ReadFile(a.config.SessionFile)
	if err == nil {
		var s Session
		if err := json.Unmarshal(data, &s); err == nil && s.AccessToken != "" {
			session = &s
		}
	}

	a.mu.Lock()
	a.session = session
	a.mu.Unlock()

	a.emit(IdentityEvent{Kind: EventInitialSession, Identity: a.CurrentSession()})
	return nil
}

// SignInAnonymously creates a fresh anonymous identity, persists it and
// emits a signed-in event before returning.
func (a *Auth) SignInAnonymously(ctx context.Context) (*Identity, error) {
	var session Session
	res, err := a.client.R().
		WithContext(ctx).
		SetBody(map[string]any{}).
		SetResult(&session).
		SetError(&APIError{}).
		Post(authPrefix + "/signup")
	if err != nil {
		return nil, err
	}
	if err := checkStatus(res); err != nil {
		return nil, err
	}
	if session.AccessToken == "" {
		return nil, errors.New("signup reply carried no access token")
	}
	session.User.Anonymous = true

	if err := a.persist(&session); err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.session = &session
	a.mu.Unlock()

	identity := session.User
	a.emit(IdentityEvent{Kind: EventSignedIn, Identity: &identity})
	return &identity, nil
}

// SignOut destroys the session. Not wired to any command; identities are
// meant to live as long as the device.
func (a *Auth) SignOut(_ context.Context) error {
	a.mu.Lock()
	a.session = nil
	a.mu.Unlock()

	if err := os.Remove(a.config.SessionFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	a.emit(IdentityEvent{Kind: EventSignedOut})
	return nil
}

// CurrentSession returns the current identity, or nil without one.
func (a *Auth) CurrentSession() *Identity {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil
	}
	identity := a.session.User
	return &identity
}

func (a *Auth) accessToken() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return ""
	}
	return a.session.AccessToken
}

func (a *Auth) persist(session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(a.config.SessionFile), 0o700); err != nil {
		return err
	}
	return os.WriteFile(a.config.SessionFile, data, 0o600)
}

func (a *Auth) emit(event IdentityEvent) {
	a.mu.Lock()
	handlers := make([]func(IdentityEvent), 0, len(a.subs))
	for _, fn := range a.subs {
		handlers = append(handlers, fn)
	}
	a.mu.Unlock()

	for _, fn := range handlers {
		fn(event)
	}
}
