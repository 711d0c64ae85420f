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
)

var historyCmd = &cli.Command{
	Name:  "history",
	Usage: "Browse your own echoes, newest first",
	Flags: []cli.Flag{
		flags.Page,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&history.Controller{}),
			pal.Provide(&historian{}),
		)
	},
}

var statsCmd = &cli.Command{
	Name:  "stats",
	Usage: "Show how your echoes have resonated",
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&history.Controller{}),
			pal.Provide(&statsViewer{}),
		)
	},
}

type historian struct {
	Config  *config.Config
	Session core.Session
	History *history.Controller
}

func (h *historian) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (h *historian) Run(ctx context.Context) error {
	if _, err := h.Session.Await(ctx); err != nil {
		return err
	}

	page, err := h.History.History(ctx, h.Config.Page)
	if err != nil {
		return err
	}

	if len(page.Echoes) == 0 {
		if page.Number == 0 {
			fmt.Println("You have not dropped any echoes yet.")
		} else {
			fmt.Println("No more echoes on this page.")
		}
		return nil
	}

	for _, echo := range page.Echoes {
		fmt.Printf("%s · %s\n", echo.ID, formatTimeAgo(echo.CreatedAt))
		fmt.Println(echo.Content)
		fmt.Printf("seen %d times · %d reactions\n\n", echo.TimesSeen, echo.Total)
	}
	if page.More {
		fmt.Printf("More with --page %d\n", page.Number+1)
	}
	return nil
}

type statsViewer struct {
	Session core.Session
	History *history.Controller
}

func (s *statsViewer) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (s *statsViewer) Run(ctx context.Context) error {
	if _, err := s.Session.Await(ctx); err != nil {
		return err
	}

	stats, err := s.History.Stats(ctx)
	if err != nil {
		return err
	}
	if stats == nil {
		fmt.Println("No stats yet. Drop an echo first.")
		return nil
	}

	fmt.Printf("Echoes dropped:      %d\n", stats.TotalEchoes)
	fmt.Printf("Reactions received:  %d\n", stats.TotalReactionsReceived)
	fmt.Printf("Days active:         %d\n", stats.DaysActive)
	if stats.FavoriteMood != "" {
		fmt.Printf("Favorite mood:       %s %s\n", stats.FavoriteMoodEmoji, stats.FavoriteMood)
	}
	if stats.MostPopularEchoID != nil {
		fmt.Printf("Loudest echo:        %s (%d reactions)\n", *stats.MostPopularEchoID, stats.MostPopularEchoReactions)
	}
	return nil
}
