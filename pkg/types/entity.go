package types

import (
	"fmt"
	"strings"
)

// Entity names one of the stored record types. The set is closed: storage
// maps each value to a fixed table and rejects anything else with
// ErrUnknownEntity.
type Entity string

// Stored entity types.
const (
	EntityDonor       Entity = "donor"
	EntityBeneficiary Entity = "beneficiary"
	EntityEvent       Entity = "event"
	EntityBusiness    Entity = "business"
	EntityVolunteer   Entity = "volunteer"
	EntityDonation    Entity = "donation"
)

// Entities lists every entity in dependency order: a parent always appears
// before the entities that reference it.
var Entities = []Entity{
	EntityDonor,
	EntityBeneficiary,
	EntityEvent,
	EntityBusiness,
	EntityVolunteer,
	EntityDonation,
}

// entityLabels holds the display name and plural for each entity.
var entityLabels = map[Entity][2]string{
	EntityDonor:       {"Donor", "Donors"},
	EntityBeneficiary: {"Beneficiary", "Beneficiaries"},
	EntityEvent:       {"Event", "Events"},
	EntityBusiness:    {"Business", "Businesses"},
	EntityVolunteer:   {"Volunteer", "Volunteers"},
	EntityDonation:    {"Donation", "Donations"},
}

// Valid reports whether e is one of the known entities.
func (e Entity) Valid() bool {
	_, ok := entityLabels[e]
	return ok
}

// Label returns the capitalized display name, e.g. "Donor".
func (e Entity) Label() string {
	if l, ok := entityLabels[e]; ok {
		return l[0]
	}
	return string(e)
}

// Plural returns the capitalized plural display name, e.g. "Beneficiaries".
func (e Entity) Plural() string {
	if l, ok := entityLabels[e]; ok {
		return l[1]
	}
	return string(e)
}

// ParseEntity resolves a user-supplied name (singular or plural, any case)
// to an Entity.
func ParseEntity(name string) (Entity, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for e, l := range entityLabels {
		if n == string(e) || n == strings.ToLower(l[1]) {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEntity, name)
}

// EntityNames returns the entity names in dependency order, for help and
// error output.
func EntityNames() []string {
	names := make([]string, len(Entities))
	for i, e := range Entities {
		names[i] = string(e)
	}
	return names
}
