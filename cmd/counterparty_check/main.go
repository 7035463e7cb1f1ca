// Package main is the entry point for the counterparty check CLI.
package main

import (
	"fmt"
	"os"

	"counterpartycheck/cmd/counterparty_check/cmd"
	apperrors "counterpartycheck/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(apperrors.ExitCode(err))
	}
}
