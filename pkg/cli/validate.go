package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/getmockd/serverify/internal/cliconfig"
	"github.com/getmockd/serverify/pkg/cli/internal/flags"
	"github.com/getmockd/serverify/pkg/cli/internal/output"
	"github.com/getmockd/serverify/pkg/config"
	"github.com/getmockd/serverify/pkg/registry"
	"github.com/spf13/cobra"
)

// ValidateOutput represents JSON output format
type ValidateOutput struct {
	Valid     bool                 `json:"valid"`
	File      string               `json:"file,omitempty"`
	Endpoints int                  `json:"endpoints"`
	Errors    []config.FieldError  `json:"errors,omitempty"`
	Routes    []ValidateRouteEntry `json:"routes,omitempty"`
}

// ValidateRouteEntry describes one endpoint in the validate output.
type ValidateRouteEntry struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Type   string `json:"type"`
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var (
		configs flags.StringSlice
		list    bool
	)

	cmd := &cobra.Command{
		Use:   "validate [file|glob]...",
		Short: "Validate endpoint tables without serving them",
		Long: `Validate parses every endpoint table, checks it against the schema and merges
the files exactly like serve does. The exit code is 1 when anything is wrong.`,
		Example: `  serverify validate -c mocks.yaml
  serverify validate -c 'mocks/**/*.yaml' --list
  serverify validate --json mocks.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := slices.Concat([]string(configs), args)
			if len(patterns) == 0 {
				env := cliconfig.NewDefault()
				cliconfig.LoadEnvConfig(env)
				patterns = env.ConfigFiles
			}
			if len(patterns) == 0 {
				return ErrNoEndpointTable
			}

			reg, err := config.Load(patterns)
			out := validateResult(reg, err, list || opts.jsonOutput)

			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				if jerr := output.JSON(w, out); jerr != nil {
					return jerr
				}
			} else if err := printValidateResult(w, out, list); err != nil {
				return err
			}

			if !out.Valid {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}

	cmd.Flags().VarP(&configs, "config", "c", "Endpoint table file or glob (repeatable)")
	cmd.Flags().BoolVar(&list, "list", false, "List the validated endpoints")
	return cmd
}

func validateResult(reg *registry.Registry, err error, withRoutes bool) ValidateOutput {
	if err != nil {
		out := ValidateOutput{Errors: config.Problems(err)}
		var ferr *config.FileError
		if errors.As(err, &ferr) {
			out.File = ferr.File
		}
		return out
	}

	out := ValidateOutput{Valid: true, Endpoints: reg.Len()}
	if withRoutes {
		for _, ep := range reg.Endpoints() {
			out.Routes = append(out.Routes, ValidateRouteEntry{
				Method: ep.Method,
				Path:   ep.Path,
				Type:   ep.Response.Type(),
			})
		}
	}
	return out
}

func printValidateResult(w io.Writer, out ValidateOutput, list bool) error {
	if !out.Valid {
		if out.File != "" {
			fmt.Fprintf(w, "INVALID: %s\n", out.File)
		} else {
			fmt.Fprintln(w, "INVALID")
		}
		for _, fe := range out.Errors {
			fmt.Fprintf(w, "  %s\n", fe.Error())
		}
		return nil
	}

	fmt.Fprintf(w, "OK: %d endpoints\n", out.Endpoints)
	if !list || len(out.Routes) == 0 {
		return nil
	}

	tw := output.Table(w)
	fmt.Fprintln(tw, "METHOD\tPATH\tTYPE")
	for _, r := range out.Routes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Method, r.Path, r.Type)
	}
	return tw.Flush()
}
