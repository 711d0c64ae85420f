package cmd

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"echoes/internal/backend"
	"echoes/internal/cmd/flags"
	"echoes/internal/config"
	"echoes/internal/core"
	"echoes/internal/session"
	"echoes/internal/view"
	"echoes/pkg/clicfg"
)

const VERSION = "0.1.0"

var cmd = &cli.Command{
	Name:    "echoes",
	Usage:   "Ephemeral Echoes is an anonymous thought-sharing client",
	Version: VERSION,
	Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
		if err := initLogger(c.String("log-level")); err != nil {
			return ctx, err
		}
		return ctx, nil
	},
	Flags: []cli.Flag{
		flags.LogLevel,
	},
	Commands: []*cli.Command{
		catchCmd,
		dropCmd,
		reactCmd,
		threadCmd,
		replyCmd,
		historyCmd,
		statsCmd,
		likesCmd,
		moodsCmd,
		watchCmd,
	},
}

func Run() {
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// run starts a pal application around the shared service set: the config, the
// view state, the backend adapter and the session bootstrapper. Every command
// adds its own controllers on top.
func run(ctx context.Context, c *cli.Command, services ...pal.ServiceDef) error {
	cfg := config.Config{}
	if err := clicfg.ParseFlags(c, &cfg); err != nil {
		return err
	}
	services = append(services,
		pal.Provide(&cfg),
		pal.Provide(&view.State{}),
		pal.Provide[core.Backend](&backend.Service{}),
		pal.Provide[core.Session](&session.Bootstrapper{}),
	)

	return pal.New(services...).
		InjectSlog().
		InitTimeout(2*time.Second).
		HealthCheckTimeout(1*time.Second).
		ShutdownTimeout(10*time.Second).
		Run(ctx, syscall.SIGINT, syscall.SIGTERM)
}
