package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/donations/internal/menu"
	"github.com/mesh-intelligence/donations/internal/paths"
)

// errUsage wraps bad command-line arguments.
var errUsage = errors.New("usage")

// Global flag values.
var (
	flagConfigDir string
	flagDBPath    string
	flagLogLevel  string
)

// cfg holds config.yaml as loaded by PersistentPreRunE.
var cfg *viper.Viper

var rootCmd = &cobra.Command{
	Use:   "donations",
	Short: "Donations manages donors, beneficiaries, events and their donations",
	Long: `Donations is a single-user donation management tool over a local SQLite
file. Run without a subcommand it opens the interactive menu.`,
	Args:          usageArgs(cobra.NoArgs),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		v, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		cfg = v
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		config, err := storeConfig(true)
		if err != nil {
			return err
		}
		backend, err := attachBackend(cmd.Context(), logger, config)
		if err != nil {
			return err
		}
		defer backend.Detach()

		return menu.New(backend, cmd.InOrStdin(), cmd.OutOrStdout(), logger).Run(cmd.Context())
	},
}

// usageArgs marks positional argument errors as user errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		return nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "database file (default: $(CWD)/donation_app.db)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})
	rootCmd.SetErr(os.Stderr)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence --config-dir flag > DONATIONS_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
