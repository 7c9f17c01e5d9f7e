// Package doctor implements the "doctor" command: configuration checks
// plus on-disk health findings for the current board.
package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/opensource-hub/phpbb-core/internal/composer"
	"github.com/opensource-hub/phpbb-core/internal/config"
	"github.com/opensource-hub/phpbb-core/internal/discovery"
	"github.com/opensource-hub/phpbb-core/internal/printer"
	"github.com/opensource-hub/phpbb-core/internal/registry"
	"github.com/urfave/cli/v3"
)

// Run returns the "doctor" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Check the board configuration and extension state for problems",
		Description: `Runs the configuration checks (identifier shape, duplicate enabled
entries, expected directories) and scans the extensions tree for
leftovers such as stale migration backups or half-enabled extensions.

Exits non-zero when any check fails.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctor(ctx)
		},
	}
}

func runDoctor(ctx context.Context) error {
	configPath, err := config.ConfigPath()
	if err != nil {
		return cli.Exit(printer.Error(err.Error()), 1)
	}
	cfg, err := config.LoadConfigFn()
	if err != nil {
		return cli.Exit(printer.Error(err.Error()), 1)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	results := config.NewValidator(cfg, configPath).Validate()

	reg := registry.New(cfg, configPath, nil)
	inst := composer.NewInstaller(cfg, nil)
	scan, err := discovery.NewService(cfg, reg, inst).Discover(ctx)
	if err != nil {
		return cli.Exit(printer.Error(err.Error()), 1)
	}

	fmt.Print(formatReport(results, scan))

	if !config.Passed(results) {
		return cli.Exit("", 1)
	}
	return nil
}

// formatReport renders the configuration results and scan findings as a
// sectioned report.
func formatReport(results []config.ValidationResult, scan *discovery.Result) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(printer.Info("Board Health"))
	sb.WriteString("\n")
	sb.WriteString(printer.Faint(strings.Repeat("-", 70)))
	sb.WriteString("\n")

	sb.WriteString(printer.Info("Configuration:"))
	sb.WriteString("\n")
	for _, r := range results {
		status := printer.Success("✓")
		switch {
		case !r.Passed && r.Warning:
			status = printer.Warning("⚠")
		case !r.Passed:
			status = printer.Error("✗")
		}
		fmt.Fprintf(&sb, "  %s %s %s\n", status, r.Message, printer.Faint("("+r.Category+")"))
	}
	sb.WriteString("\n")

	if unmanaged := scan.Unmanaged(); len(unmanaged) > 0 {
		fmt.Fprintf(&sb, "%d extension(s) installed manually. Migrate them with \"phpbb-ext extension manage\".\n", len(unmanaged))
		sb.WriteString("\n")
	}

	if scan.HasFindings() {
		sb.WriteString(printer.Warning("Extension Findings:"))
		sb.WriteString("\n")
		for _, f := range scan.Findings {
			fmt.Fprintf(&sb, "  %s %s: %s %s\n", printer.Warning("⚠"), f.Kind, f.ID, printer.Faint(f.Detail))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString(printer.Success("No extension findings."))
		sb.WriteString("\n")
	}

	return sb.String()
}
