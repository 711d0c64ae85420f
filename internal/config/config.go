package config

import (
	"context"

	"github.com/kelseyhightower/envconfig"
)

// Config carries environment-level settings (backend coordinates) and the
// per-command flag values parsed via clicfg. Flag fields are ignored by
// envconfig so the two layers never fight over a field.
type Config struct {
	URL         string `envconfig:"URL"`
	AnonKey     string `envconfig:"ANON_KEY"`
	SessionFile string `envconfig:"SESSION_FILE"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":8080"`

	LogLevel string `flag:"log-level" ignored:"true"`
	Mood     string `flag:"mood" ignored:"true"`
	EchoID   string `flag:"echo" ignored:"true"`
	ReplyID  string `flag:"reply" ignored:"true"`
	Kind     string `flag:"kind" ignored:"true"`
	Text     string `flag:"text" ignored:"true"`
	Page     int    `flag:"page" ignored:"true"`
	UnlikeID string `flag:"unlike" ignored:"true"`
}

func (c *Config) Init(_ context.Context) error {
	return envconfig.Process("echoes", c)
}

// MoodID returns the mood filter as the optional reference the backend
// expects.
func (c *Config) MoodID() *string {
	if c.Mood == "" {
		return nil
	}
	return &c.Mood
}

// ParentReplyID returns the optional reply parent.
func (c *Config) ParentReplyID() *string {
	if c.ReplyID == "" {
		return nil
	}
	return &c.ReplyID
}
