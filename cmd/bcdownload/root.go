package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/davetashner/bugconf/internal/bucket"
	"github.com/davetashner/bugconf/internal/cli"
	"github.com/davetashner/bugconf/internal/fuzzmanager"
	bclog "github.com/davetashner/bugconf/internal/log"
	"github.com/davetashner/bugconf/internal/redact"
)

// Exit codes for bcdownload.
const (
	ExitOK    = 0
	ExitFatal = 1
	ExitUsage = 2
)

// options holds the flag values of one invocation.
type options struct {
	bucket   bool
	confPath string
	dir      string
	verbose  int
}

// newRootCmd builds the bcdownload command.
func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "bcdownload [flags] <id>",
		Short: "Download a crash testcase from FuzzManager",
		Long: `Download the testcase of crash <id> into the output directory. The product
and revision are printed on stderr and the testcase file name on stdout.

With --bucket, <id> is a bucket: a directory named after it is created with
the bucket signature, the testcase of the best crash in the bucket and a
bugconf file pointing at the signature.

Server settings are read from the [Main] section of ~/.fuzzmanagerconf.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return &cli.UsageError{Err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id < 0 {
				return &cli.UsageError{Err: fmt.Errorf("invalid id %q: expected a non-negative integer", args[0])}
			}
			return runDownload(cmd, opts, id)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &cli.UsageError{Err: err}
	})

	cmd.Flags().BoolVar(&opts.bucket, "bucket", false, "treat <id> as a bucket and initialize a directory for it")
	cmd.Flags().StringVar(&opts.confPath, "conf", fuzzmanager.DefaultConfPath(), "FuzzManager client configuration")
	cmd.Flags().StringVarP(&opts.dir, "output", "o", ".", "directory to download into")
	cmd.Flags().CountVarP(&opts.verbose, "verbose", "v", "increase verbosity (repeatable)")
	return cmd
}

func runDownload(cmd *cobra.Command, opts options, id int) error {
	ctx := cmd.Context()
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	logger := bclog.New(stderr, opts.verbose)

	srv, err := fuzzmanager.LoadServer(nil, opts.confPath)
	if err != nil {
		return err
	}
	logger.Debug("using server", "url", srv.URL)
	client := fuzzmanager.NewClient(srv, nil)

	if opts.bucket {
		res, err := bucket.Init(ctx, client, nil, logger, opts.dir, id)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, res.Dir)
		return err
	}

	crash, err := client.Crash(ctx, id)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stderr, "product=%s\n", crash.Product)
	_, _ = fmt.Fprintf(stderr, "product_version=%s\n", crash.ProductVersion)

	name, err := client.DownloadTestcase(ctx, nil, crash, opts.dir)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, name)
	return err
}

// exitCode reports err on w and maps it to an exit status.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return ExitOK
	}
	_, _ = fmt.Fprintln(w, "error:", redact.String(err.Error()))
	var usageErr *cli.UsageError
	if errors.As(err, &usageErr) {
		return ExitUsage
	}
	return ExitFatal
}
