// Package main provides the CLI entry point for playcheck.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	pcerrors "github.com/five82/playcheck/internal/errors"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) && !pcerrors.IsCancelled(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
