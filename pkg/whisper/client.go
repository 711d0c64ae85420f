package whisper

import (
	"context"
	"fmt"

	"resty.dev/v3"
)

const (
	restPrefix = "/rest/v1"
	rpcPrefix  = "/rest/v1/rpc"
	authPrefix = "/auth/v1"
)

// Client talks to the Ephemeral Echoes backend: REST tables, RPC functions
// and the auth endpoint. It owns the anonymous session and notifies
// subscribers whenever the current identity changes.
type Client struct {
	client *resty.Client
	config *ClientConfig
	auth   *Auth
}

func NewClient(config *ClientConfig) (*Client, error) {
	if config.TransportSettings == nil {
		config.TransportSettings = DefaultConfig.TransportSettings
	}

	client := resty.NewWithTransportSettings(config.TransportSettings)
	client.SetBaseURL(config.BaseURL)
	client.SetHeader("apikey", config.AnonKey)

	c := &Client{
		client: client,
		config: config,
	}

	auth, err := newAuth(client, config)
	if err != nil {
		return nil, err
	}
	c.auth = auth

	// The session token wins over the anon key once a session exists.
	client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		token := config.AnonKey
		if t := auth.accessToken(); t != "" {
			token = t
		}
		req.SetHeader("Authorization", "Bearer "+token)
		return nil
	})

	for _, m := range config.RequestMiddlewares {
		client.AddRequestMiddleware(m)
	}
	for _, m := range config.ResponseMiddlewares {
		client.AddResponseMiddleware(m)
	}

	return c, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Auth exposes the session manager.
func (c *Client) Auth() *Auth {
	return c.auth
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().WithContext(ctx)
}

// APIError is a non-2xx reply from the backend.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
	Code       string `json:"code"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend replied %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend replied %d", e.StatusCode)
}

func checkStatus(res *resty.Response) error {
	if !res.IsError() {
		return nil
	}
	apiErr, ok := res.Error().(*APIError)
	if !ok || apiErr == nil {
		apiErr = &APIError{}
	}
	apiErr.StatusCode = res.StatusCode()
	return apiErr
}

// rpc calls a named backend function and decodes its reply into T.
func rpc[T any](ctx context.Context, c *Client, name string, params any) (*T, error) {
	var result T
	res, err := c.r(ctx).
		SetBody(params).
		SetResult(&result).
		SetError(&APIError{}).
		Post(rpcPrefix + "/" + name)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(res); err != nil {
		return nil, err
	}
	return &result, nil
}

// rpcVoid calls a named backend function that returns nothing.
func rpcVoid(ctx context.Context, c *Client, name string, params any) error {
	res, err := c.r(ctx).
		SetBody(params).
		SetError(&APIError{}).
		Post(rpcPrefix + "/" + name)
	if err != nil {
		return err
	}
	return checkStatus(res)
}
