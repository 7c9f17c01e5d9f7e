package extension

import (
	"context"
	"fmt"

	"github.com/opensource-hub/phpbb-core/internal/printer"
	"github.com/urfave/cli/v3"
)

// removeCmd returns the "remove" subcommand.
func removeCmd() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"uninstall"},
		Usage:     "Remove managed extensions",
		ArgsUsage: "vendor/name ...",
		Description: `Remove one or more extensions from the board.

Every named extension must exist; a request naming an unknown extension is
refused before anything is removed. Enabled extensions are disabled first.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runRemove(cmd)
		},
	}
}

func runRemove(cmd *cli.Command) error {
	packages, err := parseSpecs(cmd.Args().Slice())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	e, err := loadEnv(cmd.Bool("verbose"))
	if err != nil {
		return fail(err)
	}

	if err := e.manager.Remove(packages); err != nil {
		return fail(err)
	}
	printer.PrintSuccess(fmt.Sprintf("Removed %d extension(s).", len(packages)))
	return nil
}
