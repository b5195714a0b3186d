package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/colegioapp/colegio/internal/cmd"
	"github.com/colegioapp/colegio/internal/exitcode"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		exitcode.Exit(exitcode.Success)
	}

	// A command that died because the signal context fired is an
	// interruption, whatever error it happened to bubble up.
	if ctx.Err() != nil && !errors.Is(err, context.Canceled) {
		err = context.Canceled
	}

	code := exitcode.DetermineExitCode(err)
	if code == exitcode.Interrupted {
		fmt.Fprintln(os.Stderr, "Cancelled.")
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	exitcode.Exit(code)
}
