package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvVars mark a CI run, where a confirmation prompt would hang the job.
var ciEnvVars = []string{
	"CI",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"JENKINS_HOME",
	"BUILDKITE",
	"TF_BUILD",
}

// IsInteractive reports whether prompts and spinners can be shown: stdout
// must be a terminal and none of the CI markers may be set. Commands fall
// back to plain output and --yes style flags otherwise.
func IsInteractive() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	for _, env := range ciEnvVars {
		if os.Getenv(env) != "" {
			return false
		}
	}
	return true
}
