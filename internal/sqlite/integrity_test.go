package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/donations/pkg/types"
)

func TestIntegrity_Dependents(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t, true)

	tests := []struct {
		entity types.Entity
		id     int64
		want   types.Dependents
	}{
		{types.EntityDonor, 1, types.Dependents{types.EntityDonation: 2}},
		{types.EntityDonor, 3, types.Dependents{}},
		{types.EntityBeneficiary, 4, types.Dependents{types.EntityDonation: 2}},
		{types.EntityEvent, 1, types.Dependents{types.EntityVolunteer: 1, types.EntityDonation: 1}},
		{types.EntityEvent, 3, types.Dependents{}},
		{types.EntityBusiness, 2, types.Dependents{types.EntityDonation: 1}},
		{types.EntityVolunteer, 1, types.Dependents{}},
		{types.EntityDonation, 1, types.Dependents{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.entity), func(t *testing.T) {
			got, err := b.Dependents(ctx, tt.entity, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntegrity_DeleteRestrictsReferencedBeneficiary(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t, true)

	err := b.Delete(ctx, types.EntityBeneficiary, 1)
	require.ErrorIs(t, err, types.ErrHasDependents)

	var de *types.DependentsError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, types.EntityBeneficiary, de.Entity)
	assert.Equal(t, int64(1), de.ID)
	assert.Equal(t, 2, de.Dependents[types.EntityDonation])

	_, err = b.Get(ctx, types.EntityBeneficiary, 1)
	assert.NoError(t, err, "beneficiary must still exist")
	rows, err := b.FetchAll(ctx, types.EntityDonation)
	require.NoError(t, err)
	assert.Len(t, rows, 7)
}

func TestIntegrity_DeleteRestrictsEventWithVolunteers(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t, true)

	// Event 2 has one volunteer and one donation.
	err := b.Delete(ctx, types.EntityEvent, 2)
	var de *types.DependentsError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 1, de.Dependents[types.EntityVolunteer])
	assert.Equal(t, 1, de.Dependents[types.EntityDonation])
	assert.Equal(t, "cannot delete event 2: referenced by 1 volunteer, 1 donation", err.Error())
}

func TestIntegrity_DeleteUnreferencedEvent(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t, true)

	require.NoError(t, b.Delete(ctx, types.EntityEvent, 3))

	rows, err := b.FetchAll(ctx, types.EntityEvent)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	for _, row := range rows {
		assert.NotEqual(t, int64(3), row.(*types.Event).EventID)
	}
}

func TestIntegrity_DeleteNotFound(t *testing.T) {
	b := newTestBackend(t, true)

	assert.ErrorIs(t, b.Delete(context.Background(), types.EntityDonor, 99), types.ErrNotFound)
	assert.ErrorIs(t, b.Delete(context.Background(), types.EntityDonor, -1), types.ErrInvalidID)
}

func TestIntegrity_DonorDeletionScenario(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t, true)

	deps, err := b.Dependents(ctx, types.EntityDonor, 1)
	require.NoError(t, err)
	assert.Equal(t, types.Dependents{types.EntityDonation: 2}, deps)

	err = b.Delete(ctx, types.EntityDonor, 1)
	require.ErrorIs(t, err, types.ErrHasDependents)

	donations, err := b.DonationsBy(ctx, types.EntityDonor, 1)
	require.NoError(t, err)
	require.Len(t, donations, 2)
	for _, d := range donations {
		require.NoError(t, b.Delete(ctx, types.EntityDonation, d.DonationID))
	}

	require.NoError(t, b.Delete(ctx, types.EntityDonor, 1))
	_, err = b.Get(ctx, types.EntityDonor, 1)
	assert.ErrorIs(t, err, types.ErrNotFound)

	rows, err := b.FetchAll(ctx, types.EntityDonation)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestIntegrity_DeleteCascadeEvent(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t, true)

	// A donation through volunteer 1, and one naming both event 1 and
	// volunteer 1, which must be removed once.
	_, err := b.Insert(ctx, &types.Donation{Amount: decimal.NewFromInt(25), Date: "2025-12-15", VolunteerID: types.ID(1), BeneficiaryID: 2})
	require.NoError(t, err)
	_, err = b.Insert(ctx, &types.Donation{Amount: decimal.NewFromInt(30), Date: "2025-12-15", EventID: types.ID(1), VolunteerID: types.ID(1), BeneficiaryID: 3})
	require.NoError(t, err)

	removed, err := b.DeleteCascade(ctx, types.EntityEvent, 1)
	require.NoError(t, err)
	assert.Equal(t, types.Dependents{types.EntityVolunteer: 1, types.EntityDonation: 3}, removed)

	_, err = b.Get(ctx, types.EntityEvent, 1)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = b.Get(ctx, types.EntityVolunteer, 1)
	assert.ErrorIs(t, err, types.ErrNotFound)

	rows, err := b.FetchAll(ctx, types.EntityDonation)
	require.NoError(t, err)
	assert.Len(t, rows, 6)
	for _, row := range rows {
		d := row.(*types.Donation)
		if d.EventID != nil {
			assert.NotEqual(t, int64(1), *d.EventID)
		}
		if d.VolunteerID != nil {
			assert.NotEqual(t, int64(1), *d.VolunteerID)
		}
	}
}

func TestIntegrity_DeleteCascadeWithoutDependents(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t, true)

	removed, err := b.DeleteCascade(ctx, types.EntityDonor, 4)
	require.NoError(t, err)
	assert.Zero(t, removed.Total())

	_, err = b.DeleteCascade(ctx, types.EntityDonor, 4)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestIntegrity_DependentsOfCoversEveryReference(t *testing.T) {
	assert.Len(t, dependentsOf[types.EntityEvent], 2)
	assert.Equal(t, types.EntityVolunteer, dependentsOf[types.EntityEvent][0].child.entity)
	assert.Equal(t, types.EntityDonation, dependentsOf[types.EntityEvent][1].child.entity)
	for _, e := range []types.Entity{types.EntityDonor, types.EntityBeneficiary, types.EntityBusiness, types.EntityVolunteer} {
		require.Len(t, dependentsOf[e], 1, "%s", e)
		assert.Equal(t, types.EntityDonation, dependentsOf[e][0].child.entity)
	}
	assert.Empty(t, dependentsOf[types.EntityDonation])
}
