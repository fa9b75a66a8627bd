// Package main provides the donations CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/donations/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "donations:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// userErrors are failures caused by what was asked for rather than by the
// system.
var userErrors = []error{
	types.ErrUnknownEntity,
	types.ErrInvalidID,
	types.ErrNotFound,
	types.ErrHasDependents,
	types.ErrValidation,
	types.ErrConstraint,
	types.ErrDBPathEmpty,
	types.ErrSeedWithoutReset,
	errUsage,
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}
