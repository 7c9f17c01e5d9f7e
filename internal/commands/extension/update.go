package extension

import (
	"context"
	"fmt"

	"github.com/opensource-hub/phpbb-core/internal/printer"
	"github.com/urfave/cli/v3"
)

// updateCmd returns the "update" subcommand.
func updateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update managed extensions from the local package mirror",
		ArgsUsage: "vendor/name[@constraint] ...",
		Description: `Update one or more managed extensions.

Enabled extensions are disabled for the duration of the update and
re-enabled afterwards, even if the update itself fails. An extension that
cannot be re-enabled is reported but does not block the others.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runUpdate(cmd)
		},
	}
}

func runUpdate(cmd *cli.Command) error {
	packages, err := parseSpecs(cmd.Args().Slice())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	e, err := loadEnv(cmd.Bool("verbose"))
	if err != nil {
		return fail(err)
	}

	bracket, err := e.manager.Update(packages)
	if bracket != nil {
		for _, f := range bracket.Failures {
			printer.PrintWarning(fmt.Sprintf("%s: %v", f.Name, f.Err))
		}
	}
	if err != nil {
		return fail(err)
	}
	printer.PrintSuccess(fmt.Sprintf("Updated %d extension(s).", len(packages)))
	return nil
}
