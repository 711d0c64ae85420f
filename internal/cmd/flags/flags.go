package flags

import (
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// TODO: extract custom EnumFlag
var LogLevel = &cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"l"},
	Usage:   "The level of the logs",
	Value:   "info",
	Validator: func(value string) error {
		if !slices.Contains(validLogLevels, value) {
			return fmt.Errorf("invalid log level: %s, allowed values are: %s", value, validLogLevels)
		}
		return nil
	},
	Sources: cli.EnvVars("LOG_LEVEL"),
}

var Mood = &cli.StringFlag{
	Name:    "mood",
	Aliases: []string{"m"},
	Usage:   "Narrow the operation to a mood id",
	Sources: cli.EnvVars("ECHOES_MOOD"),
}

var Echo = &cli.StringFlag{
	Name:    "echo",
	Aliases: []string{"e"},
	Usage:   "The id of an echo",
}

var Reply = &cli.StringFlag{
	Name:    "reply",
	Aliases: []string{"r"},
	Usage:   "The id of a reply",
}

var Kind = &cli.StringFlag{
	Name:    "kind",
	Aliases: []string{"k"},
	Usage:   "The reaction kind: like, love, laugh, think, sad or fire",
	Value:   "like",
}

var Text = &cli.StringFlag{
	Name:    "text",
	Aliases: []string{"t"},
	Usage:   "The content to submit",
}

var Page = &cli.IntFlag{
	Name:    "page",
	Aliases: []string{"p"},
	Usage:   "The zero-based history page",
	Value:   0,
}

var Unlike = &cli.StringFlag{
	Name:  "unlike",
	Usage: "Remove your like from the given echo id",
}
