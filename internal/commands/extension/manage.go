package extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/opensource-hub/phpbb-core/internal/config"
	"github.com/opensource-hub/phpbb-core/internal/core"
	"github.com/opensource-hub/phpbb-core/internal/extmgr"
	"github.com/opensource-hub/phpbb-core/internal/printer"
	"github.com/opensource-hub/phpbb-core/internal/tui"
	"github.com/urfave/cli/v3"
)

// manageCmd returns the "manage" subcommand.
func manageCmd() *cli.Command {
	return &cli.Command{
		Name:      "manage",
		Usage:     "Migrate a manually-installed extension into managed state",
		ArgsUsage: "vendor/name",
		Description: `Take over a manually-installed extension so future updates go through
the installer.

The current files are moved to a backup first. If the managed install
fails, the backup is moved back and the extension is left exactly as it
was. An enabled extension is disabled for the migration and re-enabled
afterwards.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runManage(cmd)
		},
	}
}

func runManage(cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" || !config.ValidID(id) {
		return cli.Exit("provide one extension as vendor/name", 1)
	}
	e, err := loadEnv(cmd.Bool("verbose"))
	if err != nil {
		return fail(err)
	}

	if !cmd.Bool("yes") && tui.IsInteractive() {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Migrate %q to managed installation?", id)).
				Description("The current files are backed up and restored if anything fails.").
				Value(&confirmed),
		)).WithTheme(tui.CurrentTheme())
		if err := form.Run(); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if !confirmed {
			printer.PrintInfo("Migration cancelled.")
			return nil
		}
	}

	var migrateErr error
	migrate := func() { migrateErr = e.manager.StartManaging(id) }
	if tui.IsInteractive() {
		_ = spinner.New().
			Title(fmt.Sprintf("Migrating %s...", id)).
			Action(migrate).
			Run()
	} else {
		migrate()
	}

	return reportManageResult(id, migrateErr)
}

// reportManageResult branches on the migration error taxonomy so the user
// gets precise remediation instead of a generic failure.
func reportManageResult(id string, err error) error {
	if err == nil {
		printer.PrintSuccess(fmt.Sprintf("Extension %q is now managed.", id))
		return nil
	}

	var cleanErr *extmgr.ManagedWithCleanError
	if errors.As(err, &cleanErr) {
		printer.PrintWarning(cleanErr.Error())
		printer.PrintInfo(cleanErr.Suggestion())
		return cli.Exit("", 1)
	}

	var enableErr *extmgr.ManagedWithEnableError
	if errors.As(err, &enableErr) {
		printer.PrintWarning(enableErr.Error())
		printer.PrintInfo(enableErr.Suggestion())
		return cli.Exit("", 1)
	}

	var installErr *extmgr.ManageInstallError
	if errors.As(err, &installErr) {
		printer.PrintError(installErr.Error())
		if installErr.RolledBack {
			printer.PrintInfo("Nothing was changed; the extension is still installed manually.")
		} else {
			printer.PrintInfo(fmt.Sprintf("The original files remain at %q.", id+core.BackupSuffix))
		}
		return cli.Exit("", 1)
	}

	return fail(err)
}
