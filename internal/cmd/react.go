package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"echoes/internal/cmd/flags"
	"echoes/internal/config"
	"echoes/internal/core"
	"echoes/internal/reacting"
	"echoes/pkg/whisper"
)

var reactCmd = &cli.Command{
	Name:  "react",
	Usage: "Toggle a reaction on an echo or a reply",
	Flags: []cli.Flag{
		flags.Echo,
		flags.Reply,
		flags.Kind,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&reacting.Controller{}),
			pal.Provide(&reactor{}),
		)
	},
}

type reactor struct {
	Config   *config.Config
	Session  core.Session
	Reacting *reacting.Controller
}

func (r *reactor) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (r *reactor) Run(ctx context.Context) error {
	if _, err := r.Session.Await(ctx); err != nil {
		return err
	}

	target := whisper.EchoTarget(r.Config.EchoID)
	if r.Config.ReplyID != "" {
		target = whisper.ReplyTarget(r.Config.ReplyID)
	}

	kind, err := whisper.ParseKind(r.Config.Kind)
	if err != nil {
		return err
	}

	result, err := r.Reacting.Toggle(ctx, target, kind)
	if err != nil {
		return err
	}

	state := "removed"
	if result.Active {
		state = "added"
	}
	fmt.Printf("%s %s, now at %d\n", kind, state, result.Count)
	return nil
}
