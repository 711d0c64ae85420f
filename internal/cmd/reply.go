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
	"echoes/pkg/whisper"
)

var replyCmd = &cli.Command{
	Name:  "reply",
	Usage: "Reply to an echo, or to a reply inside its thread",
	Flags: []cli.Flag{
		flags.Echo,
		flags.Reply,
		flags.Text,
		flags.Mood,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&threads.Controller{}),
			pal.Provide(&replier{}),
		)
	},
}

type replier struct {
	Config  *config.Config
	Session core.Session
	Threads *threads.Controller
}

func (r *replier) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (r *replier) Run(ctx context.Context) error {
	if r.Config.EchoID == "" {
		return errors.New("an echo id is required, pass --echo")
	}
	if _, err := r.Session.Await(ctx); err != nil {
		return err
	}

	// Loading the thread first lets the depth gate see the parent.
	if _, err := r.Threads.Load(ctx, r.Config.EchoID); err != nil {
		return err
	}

	err := r.Threads.SubmitReply(ctx, whisper.ReplySubmission{
		ParentEchoID:  r.Config.EchoID,
		ParentReplyID: r.Config.ParentReplyID(),
		Content:       r.Config.Text,
		MoodID:        r.Config.MoodID(),
	})
	if err != nil {
		return err
	}

	fmt.Println("Reply sent.")
	return nil
}
