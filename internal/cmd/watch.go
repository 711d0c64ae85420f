package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
	"github.com/zhulik/pips"
	"github.com/zhulik/pips/apply"

	"echoes/internal/cmd/flags"
	"echoes/internal/config"
	"echoes/internal/core"
	"echoes/internal/metrics"
	"echoes/internal/realtime"
)

var repliesSeen = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "echoes_watch_events_total",
	Help: "The total number of realtime events by action.",
}, []string{"action"})

var watchCmd = &cli.Command{
	Name:  "watch",
	Usage: "Stream replies as they land, live",
	Flags: []cli.Flag{
		flags.Echo,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&realtime.Subscriber{}),
			pal.Provide(&metrics.Server{}),
			pal.Provide(&watcher{}),
		)
	},
}

type watcher struct {
	Logger     *slog.Logger
	Config     *config.Config
	Session    core.Session
	Subscriber *realtime.Subscriber
}

func (w *watcher) Init(_ context.Context) error {
	w.Logger = w.Logger.With("component", "cmd.watcher")
	return nil
}

func (w *watcher) Run(ctx context.Context) error {
	if _, err := w.Session.Await(ctx); err != nil {
		return err
	}

	w.Logger.Info("watching the reply stream")

	return w.Subscriber.ConsumeToPipeline(ctx, pips.New[*realtime.Event, any]().
		Then(apply.Each(func(_ context.Context, event *realtime.Event) error {
			repliesSeen.WithLabelValues(event.Action).Inc()
			return nil
		})).
		Then(apply.Map(func(_ context.Context, event *realtime.Event) (any, error) {
			if event.Action != "INSERT" || event.Reply == nil {
				return nil, nil
			}
			// An optional --echo narrows the stream to one thread.
			if w.Config.EchoID != "" && event.Reply.ParentEchoID != w.Config.EchoID {
				return nil, nil
			}
			fmt.Printf("%s replied under %s: %s\n", event.Reply.AnonymousName, event.Reply.ParentEchoID, event.Reply.Content)
			return nil, nil
		})),
	)
}
