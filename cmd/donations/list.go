package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/donations/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list <entity>",
	Short: "Print every row of an entity as JSON",
	Long: `List prints all rows of one entity, ordered by ID, as a JSON array.

Valid entities: ` + strings.Join(types.EntityNames(), ", ") + `

Example:
  donations list donors
  donations list donation`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		entity, err := types.ParseEntity(args[0])
		if err != nil {
			return err
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

		rows, err := backend.FetchAll(cmd.Context(), entity)
		if err != nil {
			return fmt.Errorf("list %s: %w", entity, err)
		}

		output, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal rows: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	},
}
