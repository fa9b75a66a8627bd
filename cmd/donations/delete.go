package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/donations/internal/validate"
	"github.com/mesh-intelligence/donations/pkg/types"
)

var flagCascade bool

var deleteCmd = &cobra.Command{
	Use:   "delete <entity> <id>",
	Short: "Remove a row by ID",
	Long: `Delete removes one row. A row that other rows still reference is kept and
the command fails, unless --cascade is given, in which case everything that
depends on it is removed too.`,
	Args: usageArgs(cobra.ExactArgs(2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		entity, err := types.ParseEntity(args[0])
		if err != nil {
			return err
		}
		id, err := validate.ID(args[1])
		if err != nil {
			return fmt.Errorf("%w: %v", types.ErrInvalidID, err)
		}

		logger, err := newLogger()
		if err != nil {
			return err
		}
		config, err := storeConfig(false)
		if err != nil {
			return err
		}
		backend, err := attachBackend(cmd.Context(), logger, config)
		if err != nil {
			return err
		}
		defer backend.Detach()

		out := cmd.OutOrStdout()
		if !flagCascade {
			if err := backend.Delete(cmd.Context(), entity, id); err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted %s/%d\n", entity, id)
			return nil
		}

		removed, err := backend.DeleteCascade(cmd.Context(), entity, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %s/%d and %s\n", entity, id, removed)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&flagCascade, "cascade", false, "also delete every row that depends on this one")
}
