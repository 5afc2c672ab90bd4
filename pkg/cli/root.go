package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootOptions holds the persistent flags shared by all subcommands.
type rootOptions struct {
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "serverify",
		Short: "serverify is a stub HTTP server for integration tests",
		Long: `serverify answers HTTP requests from a declarative endpoint table and records
every request it receives, grouped by session, so a test can later assert on
what the system under test sent.

Settings can be provided via flags, SERVERIFY_* environment variables, or a
settings file passed with --settings.`,
		// No Run function here means 'serverify' with no args prints help.
		SilenceUsage:  true,
		SilenceErrors: true, // errors are printed by Run
	}

	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output command results in JSON format")

	cmd.AddCommand(
		newServeCmd(opts),
		newValidateCmd(opts),
		newVersionCmd(opts),
	)
	return cmd
}

// Run executes the command line in args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// Execute runs the command line of the current process and exits.
// This is called by main.main().
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
