package types

import "strings"

// Fields carries raw user input for one add or update, keyed by column name
// (for example "first_name"). Values are trimmed on read.
type Fields map[string]string

// Get returns the trimmed value for name, or "" when absent.
func (f Fields) Get(name string) string {
	return strings.TrimSpace(f[name])
}
