package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/davetashner/bugconf/internal/cli"
	"github.com/davetashner/bugconf/internal/dispatch"
	bclog "github.com/davetashner/bugconf/internal/log"
	"github.com/davetashner/bugconf/internal/redact"
)

// newRootCmd builds the command for the program name in argv0.
func newRootCmd(argv0 string, env dispatch.Env) *cobra.Command {
	verb := dispatch.VerbFor(argv0)
	cmd := cli.NewCommand(filepath.Base(argv0), verb.TakesTestcase(), func(cmd *cobra.Command, p cli.Parsed) error {
		env := env
		if env.Logger == nil {
			env.Logger = bclog.New(cmd.ErrOrStderr(), p.Verbose)
		}
		return dispatch.New(env).Run(cmd.Context(), verb, p)
	})
	cmd.Long = longHelp(verb)
	cmd.Version = Version
	if env.Stdout != nil {
		cmd.SetOut(env.Stdout)
	}
	if env.Stderr != nil {
		cmd.SetErr(env.Stderr)
	}
	return cmd
}

func longHelp(verb dispatch.Verb) string {
	switch verb {
	case dispatch.Repro:
		return "Launch the configured build on a testcase and summarize the crash logs."
	case dispatch.Reduce:
		return "Reduce a testcase with the configured reducer."
	case dispatch.ListBuilds:
		return "List the builds available under the build path."
	case dispatch.Show:
		return "Show every set option and the layer it came from."
	default:
		return `Merge the user defaults (~/.bugconfrc), the project file (./bugconf) and
the command line. With --write the result is saved to ./bugconf.`
	}
}

// run executes one invocation and returns the process exit status.
func run(ctx context.Context, args []string, env dispatch.Env) int {
	cmd := newRootCmd(args[0], env)
	cmd.SetArgs(args[1:])
	return exitCode(cmd.ErrOrStderr(), cmd.ExecuteContext(ctx))
}

// exitCode reports err on w and maps it to an exit status. External tool
// failures are passed through silently; the tool has already spoken.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}

	var toolErr *dispatch.ExitError
	if errors.As(err, &toolErr) {
		if toolErr.Code > 0 {
			return toolErr.Code
		}
		return ExitFatal
	}

	_, _ = fmt.Fprintln(w, "error:", redact.String(err.Error()))
	var usageErr *cli.UsageError
	if errors.As(err, &usageErr) {
		return ExitUsage
	}
	return ExitFatal
}
