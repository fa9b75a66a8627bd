package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "v0.1.0"

const modulePath = "github.com/mesh-intelligence/donations"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the donations version",
	Args:  usageArgs(cobra.NoArgs),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "donations %s\nmodule: %s\n", version, modulePath)
	},
}
