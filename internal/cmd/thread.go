package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"echoes/internal/cmd/flags"
	"echoes/internal/config"
	"echoes/internal/core"
	"echoes/internal/threads"
)

var threadCmd = &cli.Command{
	Name:  "thread",
	Usage: "Show the conversation under an echo",
	Flags: []cli.Flag{
		flags.Echo,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&threads.Controller{}),
			pal.Provide(&threadViewer{}),
		)
	},
}

type threadViewer struct {
	Config  *config.Config
	Session core.Session
	Threads *threads.Controller
}

func (t *threadViewer) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (t *threadViewer) Run(ctx context.Context) error {
	if t.Config.EchoID == "" {
		return errors.New("an echo id is required, pass --echo")
	}
	if _, err := t.Session.Await(ctx); err != nil {
		return err
	}

	replies, err := t.Threads.Load(ctx, t.Config.EchoID)
	if err != nil {
		return err
	}

	if len(replies) == 0 {
		fmt.Println("No one has replied yet.")
		return nil
	}

	printThread(threads.BuildTree(replies))

	stats := threads.ThreadStats(replies)
	fmt.Printf("\n%d replies · %d voices · depth %d\n", stats.TotalReplies, stats.Participants, stats.MaxDepth)
	return nil
}
