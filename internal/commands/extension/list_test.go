package extension

import (
	"testing"

	"github.com/opensource-hub/phpbb-core/internal/testutils"
	"github.com/urfave/cli/v3"
)

/* ------------------------------------------------------------------------- */
/* EXTENSION LIST COMMAND                                                    */
/* ------------------------------------------------------------------------- */

func TestExtensionListCmd_Empty(t *testing.T) {
	root := newBoard(t, nil, nil, nil)

	app := testutils.BuildCLIForTests([]*cli.Command{Run()})
	output, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, app, []string{
			"phpbb-ext", "extension", "list",
		}, root)
	})
	if err != nil {
		t.Fatalf("CLI run failed: %v", err)
	}

	checkOutputContains(t, output, "No extensions found.")
}

func TestExtensionListCmd_Plain(t *testing.T) {
	root := newBoard(t, nil, []string{"acme/demo", "acme/other"}, []string{"acme/demo"})

	app := testutils.BuildCLIForTests([]*cli.Command{Run()})
	output, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, app, []string{
			"phpbb-ext", "extension", "list", "--plain",
		}, root)
	})
	if err != nil {
		t.Fatalf("CLI run failed: %v", err)
	}

	checkOutputContains(t, output, "acme/demo 1.0.0 enabled=true managed=false")
	checkOutputContains(t, output, "acme/other 1.0.0 enabled=false managed=false")
}

func TestExtensionListCmd_ReportsFindings(t *testing.T) {
	// An enabled extension with no files on disk is flagged.
	root := newBoard(t, nil, []string{"acme/demo"}, []string{"acme/demo", "acme/gone"})

	app := testutils.BuildCLIForTests([]*cli.Command{Run()})
	output, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, app, []string{
			"phpbb-ext", "extension", "list", "--plain",
		}, root)
	})
	if err != nil {
		t.Fatalf("CLI run failed: %v", err)
	}

	checkOutputContains(t, output, "enabled but missing: acme/gone")
}
