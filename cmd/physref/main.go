// Package main provides the entry point for the physref CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Aman-CERP/physref/cmd/physref/cmd"
	amerrors "github.com/Aman-CERP/physref/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, amerrors.FormatForCLI(err))
		os.Exit(1)
	}
}
