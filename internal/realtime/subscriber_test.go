package realtime

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"echoes/internal/config"
)

func TestDecodeInsert(t *testing.T) {
	t.Parallel()

	event, err := decode(message{
		Topic:   repliesTopic,
		Event:   "INSERT",
		Payload: json.RawMessage(`{"record":{"id":"r1","parent_echo_id":"e1","content":"hi","anonymous_name":"Quiet Fox"}}`),
	})
	require.NoError(t, err)
	require.Equal(t, "INSERT", event.Action)
	require.Equal(t, "r1", event.Reply.ID)
	require.Equal(t, "Quiet Fox", event.Reply.AnonymousName)
}

func TestDecodeIgnoresProtocolChatter(t *testing.T) {
	t.Parallel()

	for _, kind := range []string{"phx_reply", "presence_state", "heartbeat"} {
		event, err := decode(message{Event: kind, Payload: json.RawMessage(`{}`)})
		require.NoError(t, err)
		require.Nil(t, event)
	}
}

func TestDecodeBadRecord(t *testing.T) {
	t.Parallel()

	_, err := decode(message{
		Event:   "INSERT",
		Payload: json.RawMessage(`{"record":{"thread_depth":"not a number"}}`),
	})
	require.Error(t, err)
}

func TestRunClosesChannelOnCancel(t *testing.T) {
	t.Parallel()

	s := &Subscriber{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: &config.Config{URL: "http://127.0.0.1:1", AnonKey: "key"},
	}
	require.NoError(t, s.Init(t.Context()))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	require.NoError(t, s.Run(ctx))

	_, ok := <-s.C()
	require.False(t, ok)
}

func TestWebsocketURL(t *testing.T) {
	t.Parallel()

	s := &Subscriber{Config: &config.Config{URL: "https://proj.example.co", AnonKey: "key"}}

	u, err := s.websocketURL()
	require.NoError(t, err)
	require.Equal(t, "wss://proj.example.co/realtime/v1/websocket?apikey=key&vsn=1.0.0", u)
}
