package extension

import (
	"context"
	"fmt"

	"github.com/opensource-hub/phpbb-core/internal/printer"
	"github.com/urfave/cli/v3"
)

// enableCmd returns the "enable" subcommand.
func enableCmd() *cli.Command {
	return &cli.Command{
		Name:      "enable",
		Usage:     "Enable an installed extension",
		ArgsUsage: "vendor/name",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runEnable(cmd)
		},
	}
}

// runEnable enables an extension by adding it to the enabled list in the
// configuration file. The write is a surgical YAML replacement so comments
// and formatting are preserved.
func runEnable(cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return cli.Exit("provide an extension as vendor/name", 1)
	}
	e, err := loadEnv(cmd.Bool("verbose"))
	if err != nil {
		return fail(err)
	}

	// Distinguish "not on disk" from real failures so the user gets a
	// warning instead of a hard error.
	if !e.registry.IsAvailable(id) {
		printer.PrintWarning(fmt.Sprintf("extension %q is not installed", id))
		return nil
	}
	if err := e.registry.Enable(id); err != nil {
		return fail(err)
	}
	printer.PrintSuccess(fmt.Sprintf("Extension %q enabled.", id))
	return nil
}
