package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/donations/internal/logging"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDBPath         = "db_path"
	cfgKeyLogLevel       = "log_level"
	cfgKeyResetOnStart   = "reset_on_start"
	cfgKeySeedSampleData = "seed_sample_data"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# Donations CLI configuration

# Database file (optional; overridable by --db and DONATIONS_DB)
# db_path:

# Log level: debug, info, warn, error
log_level: warn

# Drop and recreate every table when the menu starts
reset_on_start: true

# Insert the sample rows after a reset
seed_sample_data: true
`

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, logging.DefaultLevel)
	v.SetDefault(cfgKeyResetOnStart, true)
	v.SetDefault(cfgKeySeedSampleData, true)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
