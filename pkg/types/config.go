package types

import "errors"

// Config holds the parameters for Backend.Attach.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `json:"db_path" yaml:"db_path"`

	// ResetOnStart drops and recreates every table on attach.
	ResetOnStart bool `json:"reset_on_start" yaml:"reset_on_start"`

	// SeedSampleData inserts the fixed sample rows after a reset.
	SeedSampleData bool `json:"seed_sample_data" yaml:"seed_sample_data"`
}

// Config validation errors.
var (
	ErrDBPathEmpty      = errors.New("database path must not be empty")
	ErrSeedWithoutReset = errors.New("seeding sample data requires reset on start")
)

// Validate checks that the Config is well-formed. Seeding without a reset
// would collide with the unique contact columns on the second start.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return ErrDBPathEmpty
	}
	if c.SeedSampleData && !c.ResetOnStart {
		return ErrSeedWithoutReset
	}
	return nil
}
