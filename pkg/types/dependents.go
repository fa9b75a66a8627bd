package types

import (
	"fmt"
	"strings"
)

// Dependents counts, per entity, the rows that reference one target row.
type Dependents map[Entity]int

// Total returns the number of dependent rows across all entities.
func (d Dependents) Total() int {
	n := 0
	for _, c := range d {
		n += c
	}
	return n
}

// Add increments the count for e by n. Zero counts are not recorded.
func (d Dependents) Add(e Entity, n int) {
	if n > 0 {
		d[e] += n
	}
}

// Merge adds every count in other to d.
func (d Dependents) Merge(other Dependents) {
	for e, n := range other {
		d.Add(e, n)
	}
}

// String renders the counts in dependency order, e.g. "2 volunteers, 1 donation".
func (d Dependents) String() string {
	if d.Total() == 0 {
		return "nothing"
	}
	var parts []string
	for _, e := range Entities {
		n := d[e]
		if n == 0 {
			continue
		}
		name := strings.ToLower(e.Label())
		if n != 1 {
			name = strings.ToLower(e.Plural())
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, name))
	}
	return strings.Join(parts, ", ")
}
