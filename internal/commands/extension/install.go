package extension

import (
	"context"
	"fmt"

	"github.com/opensource-hub/phpbb-core/internal/printer"
	"github.com/urfave/cli/v3"
)

// installCmd returns the "install" subcommand.
func installCmd() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Install extensions from the local package mirror",
		ArgsUsage: "vendor/name[@constraint] ...",
		Description: `Install one or more extensions from the board's package mirror.

An extension that is already present on disk without being managed is
refused: migrate it with "phpbb-ext extension manage" instead of
overwriting it.

Examples:
  phpbb-ext extension install acme/demo
  phpbb-ext extension install acme/demo@^1.2.0 acme/other`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInstall(cmd)
		},
	}
}

func runInstall(cmd *cli.Command) error {
	packages, err := parseSpecs(cmd.Args().Slice())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	e, err := loadEnv(cmd.Bool("verbose"))
	if err != nil {
		return fail(err)
	}

	if err := e.manager.Install(packages); err != nil {
		return fail(err)
	}
	printer.PrintSuccess(fmt.Sprintf("Installed %d extension(s).", len(packages)))
	return nil
}
