package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"echoes/internal/catching"
	"echoes/internal/cmd/flags"
	"echoes/internal/config"
	"echoes/internal/core"
)

var catchCmd = &cli.Command{
	Name:  "catch",
	Usage: "Catch one echo you have not seen yet",
	Flags: []cli.Flag{
		flags.Mood,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&catching.Controller{}),
			pal.Provide(&catcher{}),
		)
	},
}

type catcher struct {
	Config   *config.Config
	Session  core.Session
	Catching *catching.Controller
}

func (c *catcher) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (c *catcher) Run(ctx context.Context) error {
	if _, err := c.Session.Await(ctx); err != nil {
		return err
	}

	result, err := c.Catching.Catch(ctx, c.Config.MoodID())
	if err != nil {
		return err
	}

	switch result.Empty {
	case core.NoEchoesExist:
		fmt.Println("The void is silent. Drop the first echo with `echoes drop`.")
		return nil
	case core.AllSeenByUser:
		fmt.Println("You have heard every echo out there. Come back later.")
		return nil
	}

	printEcho(result.Echo)
	if result.SeenMarkFailed {
		fmt.Println("(this echo may resurface later)")
	}
	return nil
}
