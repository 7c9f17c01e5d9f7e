package extension

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/opensource-hub/phpbb-core/internal/discovery"
	"github.com/opensource-hub/phpbb-core/internal/printer"
	"github.com/opensource-hub/phpbb-core/internal/tui"
	"github.com/urfave/cli/v3"
)

// listCmd returns the "list" subcommand.
func listCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List the extensions found on the board",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "Plain line output, no table",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runList(ctx, cmd)
		},
	}
}

func runList(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd.Bool("verbose"))
	if err != nil {
		return fail(err)
	}

	svc := discovery.NewService(e.cfg, e.registry, e.installer)
	result, err := svc.Discover(ctx)
	if err != nil {
		return fail(err)
	}

	if !result.HasExtensions() {
		printer.PrintInfo("No extensions found.")
		return nil
	}

	if cmd.Bool("plain") || !tui.IsInteractive() {
		printPlain(result)
	} else {
		printTable(result)
	}

	for _, f := range result.Findings {
		printer.PrintWarning(fmt.Sprintf("%s: %s %s", f.Kind, f.ID, f.Detail))
	}
	return nil
}

func printPlain(result *discovery.Result) {
	for _, e := range result.Extensions {
		fmt.Printf("%s %s enabled=%t managed=%t\n", e.ID, e.Version, e.Enabled, e.Managed)
	}
}

func printTable(result *discovery.Result) {
	columns := []table.Column{
		{Title: "Extension", Width: 32},
		{Title: "Version", Width: 10},
		{Title: "Enabled", Width: 8},
		{Title: "Managed", Width: 8},
	}

	rows := make([]table.Row, 0, len(result.Extensions))
	for _, e := range result.Extensions {
		rows = append(rows, table.Row{e.ID, e.Version, yesNo(e.Enabled), yesNo(e.Managed)})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	fmt.Println(t.View())
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
