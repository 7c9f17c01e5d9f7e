package extension

import (
	"context"
	"fmt"

	"github.com/opensource-hub/phpbb-core/internal/printer"
	"github.com/urfave/cli/v3"
)

// disableCmd returns the "disable" subcommand.
func disableCmd() *cli.Command {
	return &cli.Command{
		Name:      "disable",
		Usage:     "Disable an enabled extension",
		ArgsUsage: "vendor/name",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDisable(cmd)
		},
	}
}

// runDisable disables an extension by removing it from the enabled list in
// the configuration file. Disabling an already disabled extension is a
// no-op, so the command is safe to repeat.
func runDisable(cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return cli.Exit("provide an extension as vendor/name", 1)
	}
	e, err := loadEnv(cmd.Bool("verbose"))
	if err != nil {
		return fail(err)
	}

	if !e.registry.IsEnabled(id) && !e.registry.Enabling(id) {
		printer.PrintInfo(fmt.Sprintf("Extension %q is not enabled.", id))
		return nil
	}
	if err := e.registry.Disable(id); err != nil {
		return fail(err)
	}
	printer.PrintSuccess(fmt.Sprintf("Extension %q disabled.", id))
	return nil
}
