package sqlite

import (
	"context"
	"fmt"

	"github.com/huandu/go-sqlbuilder"

	"github.com/mesh-intelligence/donations/pkg/types"
)

// DonationsBy returns the donations that reference the given donor, event,
// business, volunteer or beneficiary, ordered by key.
func (b *Backend) DonationsBy(ctx context.Context, e types.Entity, id int64) ([]types.Donation, error) {
	donations := tables[types.EntityDonation]
	column, ok := donations.refTo(e)
	if !ok {
		return nil, fmt.Errorf("%w: donations do not reference %s", types.ErrUnknownEntity, e)
	}
	if id <= 0 {
		return nil, types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(donations.allColumns()...).
		From(donations.name).
		Where(sb.Equal(column, id)).
		OrderBy(donations.key).Asc()
	query, args := sb.Build()

	var out []types.Donation
	if err := db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, b.storageError(ctx, "search donations by "+column, err)
	}
	return out, nil
}

// EventsByVolunteer returns the events the volunteer is assigned to.
func (b *Backend) EventsByVolunteer(ctx context.Context, volunteerID int64) ([]types.Event, error) {
	if volunteerID <= 0 {
		return nil, types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	events := tables[types.EntityEvent]
	cols := make([]string, 0, len(events.allColumns()))
	for _, c := range events.allColumns() {
		cols = append(cols, fmt.Sprintf("e.%s AS %s", c, c))
	}

	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(cols...).
		From(sb.As("event", "e")).
		Join(sb.As("volunteer", "v"), "e.event_id = v.event_id").
		Where(sb.Equal("v.volunteer_id", volunteerID)).
		OrderBy("e.event_id").Asc()
	query, args := sb.Build()

	var out []types.Event
	if err := db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, b.storageError(ctx, "search events by volunteer", err)
	}
	return out, nil
}
