package cli

import (
	"context"
	"fmt"

	"github.com/opensource-hub/phpbb-core/internal/commands/doctor"
	"github.com/opensource-hub/phpbb-core/internal/commands/extension"
	"github.com/opensource-hub/phpbb-core/internal/commands/initialize"
	"github.com/opensource-hub/phpbb-core/internal/printer"
	"github.com/opensource-hub/phpbb-core/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

var noColorFlag bool

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the phpbb-ext cli.
func New() *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "phpbb-ext",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Managed lifecycle for board extensions",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag)
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			initialize.Run(),
			extension.Run(),
			doctor.Run(),
		},
	}
}
