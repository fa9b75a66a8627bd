package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	DBPath         string `yaml:"db_path,omitempty"`
	LogLevel       string `yaml:"log_level"`
	ResetOnStart   bool   `yaml:"reset_on_start"`
	SeedSampleData bool   `yaml:"seed_sample_data"`
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write config.yaml and create the database",
	Long: `Init records the resolved database path in config.yaml and creates the
database file with its schema, applying reset_on_start and seed_sample_data.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		config, err := storeConfig(true)
		if err != nil {
			return err
		}

		configPath := filepath.Join(configDir, configFileExt)
		err = writeConfig(configPath, configFile{
			DBPath:         config.DBPath,
			LogLevel:       cfg.GetString(cfgKeyLogLevel),
			ResetOnStart:   config.ResetOnStart,
			SeedSampleData: config.SeedSampleData,
		})
		if err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		logger, err := newLogger()
		if err != nil {
			return err
		}
		backend, err := attachBackend(cmd.Context(), logger, config)
		if err != nil {
			return err
		}
		if err := backend.Detach(); err != nil {
			return fmt.Errorf("finalize store: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Donations initialized successfully")
		fmt.Fprintln(out, "  config:  ", configPath)
		fmt.Fprintln(out, "  database:", config.DBPath)
		return nil
	},
}

// writeConfig marshals c to path, replacing any existing file.
func writeConfig(path string, c configFile) error {
	data, err := yaml.Marshal(&c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
