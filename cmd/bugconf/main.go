// Command bugconf stores triage settings for browser fuzzing test cases and
// runs the launcher and reducer with them. The action depends on the name it
// is invoked as (bcrepro, bcreduce, bclistbuilds, bcshow); install it under
// those names with symlinks.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/davetashner/bugconf/internal/dispatch"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, dispatch.Env{Stdout: os.Stdout, Stderr: os.Stderr})
	stop()
	os.Exit(code)
}
