// Package realtime streams live reply inserts over the backend's phoenix
// websocket.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zhulik/pips"

	"echoes/internal/config"
	"echoes/pkg/retry"
	"echoes/pkg/whisper"
)

const (
	repliesTopic      = "realtime:public:echo_replies"
	heartbeatInterval = 30 * time.Second
)

// Event is one database change pushed by the backend.
type Event struct {
	Topic  string
	Action string
	Reply  *whisper.Reply
}

// message is the phoenix channel envelope.
type message struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref"`
}

type changePayload struct {
	Record json.RawMessage `json:"record"`
}

type Subscriber struct {
	Logger *slog.Logger
	Config *config.Config

	ch chan pips.D[*Event]
}

func (s *Subscriber) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "realtime.Subscriber")
	s.ch = make(chan pips.D[*Event])
	return nil
}

// C exposes the event stream for pipeline consumption.
func (s *Subscriber) C() <-chan pips.D[*Event] {
	return s.ch
}

func (s *Subscriber) ConsumeToPipeline(ctx context.Context, pipeline *pips.Pipeline[*Event, any]) error {
	return pipeline.
		Run(ctx, s.ch).
		Wait(ctx)
}

// Run owns the channel: it is the only sender and closes it on exit, so
// teardown can never race a send against the close.
func (s *Subscriber) Run(ctx context.Context) error {
	defer close(s.ch)

	return retry.WrapWithRetry(func() error {
		err := s.connectAndRead(ctx)
		if ctx.Err() != nil {
			return nil
		}
		return err
	}, func(_ error, _ int) bool {
		return true
	}, 10)()
}

func (s *Subscriber) connectAndRead(ctx context.Context) error {
	wsURL, err := s.websocketURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close() //nolint:errcheck

	go func() {
		<-ctx.Done()
		conn.Close() //nolint:errcheck
	}()

	if err := conn.WriteJSON(message{
		Topic:   repliesTopic,
		Event:   "phx_join",
		Payload: json.RawMessage("{}"),
		Ref:     "1",
	}); err != nil {
		return err
	}
	s.Logger.Info("subscribed to reply stream", "topic", repliesTopic)

	go s.heartbeat(ctx, conn)

	for {
		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}

		event, err := decode(msg)
		if err != nil {
			s.Logger.Warn("dropping undecodable event", "event", msg.Event, "error", err)
			continue
		}
		if event == nil {
			continue
		}

		select {
		case s.ch <- pips.NewD(event):
		case <-ctx.Done():
			return nil
		}
	}
}

// heartbeat keeps the phoenix channel alive; the server drops silent
// connections after a minute.
func (s *Subscriber) heartbeat(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	ref := 2
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := conn.WriteJSON(message{
				Topic:   "phoenix",
				Event:   "heartbeat",
				Payload: json.RawMessage("{}"),
				Ref:     fmt.Sprintf("%d", ref),
			})
			if err != nil {
				return
			}
			ref++
		}
	}
}

// decode turns a channel message into an Event, nil for protocol chatter
// (join acks, heartbeat replies).
func decode(msg message) (*Event, error) {
	switch msg.Event {
	case "INSERT", "UPDATE", "DELETE":
	default:
		return nil, nil
	}

	var payload changePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, err
	}

	event := &Event{Topic: msg.Topic, Action: msg.Event}
	if len(payload.Record) > 0 {
		var reply whisper.Reply
		if err := json.Unmarshal(payload.Record, &reply); err != nil {
			return nil, err
		}
		event.Reply = &reply
	}
	return event, nil
}

// websocketURL derives the realtime endpoint from the configured project URL.
func (s *Subscriber) websocketURL() (string, error) {
	u, err := url.Parse(s.Config.URL)
	if err != nil {
		return "", err
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/realtime/v1/websocket"
	u.RawQuery = url.Values{
		"apikey": []string{s.Config.AnonKey},
		"vsn":    []string{"1.0.0"},
	}.Encode()

	return u.String(), nil
}
