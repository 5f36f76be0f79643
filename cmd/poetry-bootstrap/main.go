// Command poetry-bootstrap installs Poetry when it is missing and sets up the
// Python project in the working directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	rootcmd "github.com/go-ports/poetry-bootstrap/cmd/poetry-bootstrap/root"
)

func main() {
	os.Exit(run())
}

// run executes the CLI and maps its outcome to a process exit status. The
// user-facing guidance for a failed bootstrap has already been printed on
// stdout; stderr only gets the short reason.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootcmd.New().ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "poetry-bootstrap: interrupted")
	default:
		fmt.Fprintf(os.Stderr, "poetry-bootstrap: %v\n", err)
	}
	return 1
}
