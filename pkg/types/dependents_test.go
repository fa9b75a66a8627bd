package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDependents(t *testing.T) {
	d := Dependents{}
	assert.Equal(t, 0, d.Total())
	assert.Equal(t, "nothing", d.String())

	d.Add(EntityDonation, 1)
	d.Add(EntityVolunteer, 0)
	assert.NotContains(t, d, EntityVolunteer, "zero counts are not recorded")
	assert.Equal(t, "1 donation", d.String())

	d.Merge(Dependents{EntityVolunteer: 2, EntityDonation: 2})
	assert.Equal(t, 5, d.Total())
	assert.Equal(t, "2 volunteers, 3 donations", d.String())
}

func TestDependentsPluralLabels(t *testing.T) {
	d := Dependents{EntityBeneficiary: 2, EntityBusiness: 1}
	assert.Equal(t, "2 beneficiaries, 1 business", d.String())
}
