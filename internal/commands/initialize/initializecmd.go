// Package initialize implements the "init" command, which writes a
// starter ext.yaml for the board in the current directory.
package initialize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opensource-hub/phpbb-core/internal/config"
	"github.com/opensource-hub/phpbb-core/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "init" command.
func Run() *cli.Command {
	var force bool
	return &cli.Command{
		Name:  "init",
		Usage: "Write a starter ext.yaml for the current board",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "Overwrite an existing ext.yaml",
				Destination: &force,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInit(force)
		},
	}
}

func runInit(force bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return cli.Exit(printer.Error(err.Error()), 1)
	}

	configPath := filepath.Join(cwd, config.DefaultConfigFile)
	if _, err := os.Stat(configPath); err == nil && !force {
		printer.PrintWarning(fmt.Sprintf("%s already exists. Use --force to overwrite.", config.DefaultConfigFile))
		return cli.Exit("", 1)
	}

	data, err := GenerateConfig(cwd)
	if err != nil {
		return cli.Exit(printer.Error(err.Error()), 1)
	}
	if err := os.WriteFile(configPath, data, config.ConfigFilePerm); err != nil {
		return cli.Exit(printer.Error(err.Error()), 1)
	}

	printer.PrintSuccess(fmt.Sprintf("Created %s.", config.DefaultConfigFile))
	if _, err := os.Stat(filepath.Join(cwd, config.Default().ExtDir)); err != nil {
		printer.PrintInfo("No extensions directory found yet; it will be created on the first install.")
	}
	return nil
}
