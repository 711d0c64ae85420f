package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"echoes/internal/cmd/flags"
	"echoes/internal/config"
	"echoes/internal/core"
	"echoes/internal/history"
	"echoes/internal/reacting"
)

var likesCmd = &cli.Command{
	Name:  "likes",
	Usage: "List the echoes you liked recently, or take a like back",
	Flags: []cli.Flag{
		flags.Unlike,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&history.Controller{}),
			pal.Provide(&reacting.Controller{}),
			pal.Provide(&liker{}),
		)
	},
}

type liker struct {
	Config   *config.Config
	Session  core.Session
	History  *history.Controller
	Reacting *reacting.Controller
}

func (l *liker) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (l *liker) Run(ctx context.Context) error {
	if _, err := l.Session.Await(ctx); err != nil {
		return err
	}

	if l.Config.UnlikeID != "" {
		if err := l.Reacting.Unlike(ctx, l.Config.UnlikeID); err != nil {
			return err
		}
		fmt.Println("Like removed.")
		return nil
	}

	likes, err := l.History.RecentLikes(ctx)
	if err != nil {
		return err
	}
	if len(likes) == 0 {
		fmt.Println("You have not liked anything recently.")
		return nil
	}

	for _, liked := range likes {
		fmt.Printf("%s · %s · %d likes\n", liked.ID, formatTimeAgo(liked.CreatedAt), liked.LikesCount)
		fmt.Println(liked.Content)
		fmt.Println()
	}
	return nil
}
