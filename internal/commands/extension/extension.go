// Package extension implements the "extension" subcommands: bulk
// install/update/remove with enable/disable bracketing, single-extension
// enable/disable, the managed-state migration, and listing.
package extension

import (
	"errors"
	"fmt"

	"github.com/opensource-hub/phpbb-core/internal/composer"
	"github.com/opensource-hub/phpbb-core/internal/config"
	"github.com/opensource-hub/phpbb-core/internal/extmgr"
	"github.com/opensource-hub/phpbb-core/internal/fsops"
	"github.com/opensource-hub/phpbb-core/internal/iosink"
	"github.com/opensource-hub/phpbb-core/internal/printer"
	"github.com/opensource-hub/phpbb-core/internal/registry"
	"github.com/opensource-hub/phpbb-core/internal/semver"
	"github.com/urfave/cli/v3"
)

// Run returns the "extension" command with all lifecycle subcommands.
func Run() *cli.Command {
	return &cli.Command{
		Name:    "extension",
		Aliases: []string{"ext"},
		Usage:   "Manage board extensions",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Show debug-level progress notices",
			},
		},
		Commands: []*cli.Command{
			installCmd(),
			updateCmd(),
			removeCmd(),
			manageCmd(),
			enableCmd(),
			disableCmd(),
			listCmd(),
		},
	}
}

// env bundles the collaborators the subcommands operate on.
type env struct {
	cfg        *config.Config
	configPath string
	registry   *registry.Registry
	installer  *composer.Installer
	manager    *extmgr.Manager
}

// loadEnv wires the registry, installer and manager from the configuration
// file of the current board.
func loadEnv(verbose bool) (*env, error) {
	configPath, err := config.ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfigFn()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}

	reg := registry.New(cfg, configPath, nil)
	inst := composer.NewInstaller(cfg, nil)
	sink := &iosink.PrinterSink{Verbose: verbose}
	return &env{
		cfg:        cfg,
		configPath: configPath,
		registry:   reg,
		installer:  inst,
		manager:    extmgr.New(inst, reg, fsops.NewOSOperator(), sink),
	}, nil
}

// parseSpecs turns "vendor/name[@constraint]" arguments into a package set.
func parseSpecs(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("provide at least one extension as vendor/name[@constraint]")
	}
	packages := make(map[string]string, len(args))
	for _, arg := range args {
		id, constraint, err := semver.ParseSpec(arg)
		if err != nil {
			return nil, err
		}
		if !config.ValidID(id) {
			return nil, fmt.Errorf("invalid extension identifier %q (want vendor/name)", id)
		}
		if _, dup := packages[id]; dup {
			return nil, fmt.Errorf("extension %q given more than once", id)
		}
		packages[id] = constraint
	}
	return packages, nil
}

// fail prints the error plus any remediation suggestion it carries and
// returns a non-zero exit.
func fail(err error) error {
	printer.PrintError(err.Error())
	var withSuggestion interface{ Suggestion() string }
	if errors.As(err, &withSuggestion) {
		printer.PrintInfo(withSuggestion.Suggestion())
	}
	return cli.Exit("", 1)
}
