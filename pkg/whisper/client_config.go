package whisper

import (
	"time"

	"resty.dev/v3"
)

type ClientConfig struct {
	// BaseURL is the root of the backend project, e.g. https://xyz.supabase.co.
	BaseURL string
	// AnonKey authenticates the app itself; it also serves as the bearer
	// token until a session exists.
	AnonKey string
	// SessionFile is where the anonymous session is persisted across runs.
	// Defaults to <user config dir>/echoes/session.json.
	SessionFile string

	TransportSettings *resty.TransportSettings

	ResponseMiddlewares []resty.ResponseMiddleware
	RequestMiddlewares  []resty.RequestMiddleware
}

var DefaultConfig = &ClientConfig{
	TransportSettings: &resty.TransportSettings{
		DialerTimeout:         5 * time.Second,
		DialerKeepAlive:       5 * time.Second,
		IdleConnTimeout:       5 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
	},
}
