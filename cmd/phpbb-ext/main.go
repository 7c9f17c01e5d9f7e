package main

import (
	"context"
	"fmt"
	"os"

	"github.com/opensource-hub/phpbb-core/internal/cli"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	return cli.New().Run(context.Background(), args)
}
