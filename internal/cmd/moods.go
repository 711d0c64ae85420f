package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"echoes/internal/core"
)

var moodsCmd = &cli.Command{
	Name:  "moods",
	Usage: "List the mood vocabulary",
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&moodLister{}),
		)
	},
}

type moodLister struct {
	Backend core.Backend
	Session core.Session
}

func (m *moodLister) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (m *moodLister) Run(ctx context.Context) error {
	if _, err := m.Session.Await(ctx); err != nil {
		return err
	}

	moods, err := m.Backend.ListMoods(ctx)
	if err != nil {
		return err
	}

	for _, mood := range moods {
		fmt.Printf("%s %-12s %s  (%s)\n", mood.Emoji, mood.Name, mood.Description, mood.ID)
	}
	return nil
}
