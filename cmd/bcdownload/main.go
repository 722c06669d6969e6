// Command bcdownload fetches a crash test case from a FuzzManager server, or
// with --bucket prepares a working directory for a whole crash bucket.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd := newRootCmd()
	cmd.SetArgs(os.Args[1:])
	code := exitCode(cmd.ErrOrStderr(), cmd.ExecuteContext(ctx))
	stop()
	os.Exit(code)
}
