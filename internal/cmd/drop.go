package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"echoes/internal/cmd/flags"
	"echoes/internal/config"
	"echoes/internal/core"
	"echoes/internal/submitting"
)

var dropCmd = &cli.Command{
	Name:  "drop",
	Usage: "Release a new echo into the void",
	Flags: []cli.Flag{
		flags.Text,
		flags.Mood,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&submitting.Controller{}),
			pal.Provide(&dropper{}),
		)
	},
}

type dropper struct {
	Config     *config.Config
	Session    core.Session
	Submitting *submitting.Controller
}

func (d *dropper) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (d *dropper) Run(ctx context.Context) error {
	if _, err := d.Session.Await(ctx); err != nil {
		return err
	}

	result, err := d.Submitting.Drop(ctx, d.Config.Text, d.Config.MoodID())
	if err != nil {
		return err
	}

	if result.Varied {
		fmt.Println("Your words echoed something already out there, so they were reshaped a little.")
	}
	if result.Echo != nil {
		fmt.Printf("Echo released: %s\n", result.Echo.ID)
	} else {
		fmt.Println("Echo released.")
	}
	return nil
}
