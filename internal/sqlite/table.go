package sqlite

import (
	"context"
	"fmt"
	"math"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"github.com/mesh-intelligence/donations/pkg/types"
)

// querier is satisfied by both *sqlx.DB and *sqlx.Tx.
type querier interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

// foreignKey is a column that references the key of a parent entity.
type foreignKey struct {
	column string
	parent types.Entity
}

// dependent is a child table column that references a parent.
type dependent struct {
	child  *table
	column string
}

// table describes one entity's SQLite table. Table and column names are only
// ever interpolated from these descriptors; values are always bound.
type table struct {
	entity  types.Entity
	name    string
	key     string
	columns []string
	refs    []foreignKey
	list    func(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) ([]any, error)
	one     func(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (any, error)
}

var tables = map[types.Entity]*table{
	types.EntityDonor: {
		entity:  types.EntityDonor,
		name:    "donor",
		key:     "donor_id",
		columns: []string{"first_name", "last_name", "email", "phone", "address", "date_of_birth"},
		list:    selectAll[types.Donor],
		one:     selectOne[types.Donor],
	},
	types.EntityBeneficiary: {
		entity:  types.EntityBeneficiary,
		name:    "beneficiary",
		key:     "beneficiary_id",
		columns: []string{"name", "type", "address", "support_duration", "funding_priority"},
		list:    selectAll[types.Beneficiary],
		one:     selectOne[types.Beneficiary],
	},
	types.EntityEvent: {
		entity:  types.EntityEvent,
		name:    "event",
		key:     "event_id",
		columns: []string{"name", "date", "location", "fundraising_goal", "description"},
		list:    selectAll[types.Event],
		one:     selectOne[types.Event],
	},
	types.EntityBusiness: {
		entity:  types.EntityBusiness,
		name:    "business",
		key:     "business_id",
		columns: []string{"name", "email", "phone", "address", "registration_date"},
		list:    selectAll[types.Business],
		one:     selectOne[types.Business],
	},
	types.EntityVolunteer: {
		entity:  types.EntityVolunteer,
		name:    "volunteer",
		key:     "volunteer_id",
		columns: []string{"first_name", "last_name", "email", "phone", "address", "date_of_birth", "event_id"},
		refs: []foreignKey{
			{column: "event_id", parent: types.EntityEvent},
		},
		list: selectAll[types.Volunteer],
		one:  selectOne[types.Volunteer],
	},
	types.EntityDonation: {
		entity: types.EntityDonation,
		name:   "donation",
		key:    "donation_id",
		columns: []string{
			"amount", "date", "notes",
			"donor_id", "event_id", "business_id", "volunteer_id", "beneficiary_id",
		},
		refs: []foreignKey{
			{column: "donor_id", parent: types.EntityDonor},
			{column: "event_id", parent: types.EntityEvent},
			{column: "business_id", parent: types.EntityBusiness},
			{column: "volunteer_id", parent: types.EntityVolunteer},
			{column: "beneficiary_id", parent: types.EntityBeneficiary},
		},
		list: selectAll[types.Donation],
		one:  selectOne[types.Donation],
	},
}

// dependentsOf inverts the foreign keys: parent entity to the child columns
// that reference it, children in dependency order.
var dependentsOf = func() map[types.Entity][]dependent {
	out := make(map[types.Entity][]dependent)
	for _, e := range types.Entities {
		child := tables[e]
		for _, ref := range child.refs {
			out[ref.parent] = append(out[ref.parent], dependent{child: child, column: ref.column})
		}
	}
	return out
}()

// tableFor returns the descriptor for e.
func tableFor(e types.Entity) (*table, error) {
	t, ok := tables[e]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownEntity, string(e))
	}
	return t, nil
}

// refTo returns the column of t that references parent.
func (t *table) refTo(parent types.Entity) (string, bool) {
	for _, ref := range t.refs {
		if ref.parent == parent {
			return ref.column, true
		}
	}
	return "", false
}

// allColumns returns the key followed by the writable columns.
func (t *table) allColumns() []string {
	return append([]string{t.key}, t.columns...)
}

// values extracts the writable columns from rec in column order. A REAL
// column never receives an infinity or NaN: those cannot be read back.
func (t *table) values(rec types.Record) (map[string]any, error) {
	vals := rec.Values()
	for _, c := range t.columns {
		v, ok := vals[c]
		if !ok {
			return nil, fmt.Errorf("%w: %s record has no %s", types.ErrInvalidData, t.entity, c)
		}
		if f, isFloat := v.(float64); isFloat && (math.IsInf(f, 0) || math.IsNaN(f)) {
			return nil, fmt.Errorf("%w: %s %s out of range", types.ErrInvalidData, t.entity, c)
		}
	}
	return vals, nil
}

func (t *table) selectAllSQL() (string, []any) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(t.allColumns()...).From(t.name).OrderBy(t.key).Asc()
	return sb.Build()
}

func (t *table) selectByKeySQL(id int64) (string, []any) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(t.allColumns()...).From(t.name).Where(sb.Equal(t.key, id))
	return sb.Build()
}

func (t *table) insertSQL(vals map[string]any) (string, []any) {
	ib := sqlbuilder.SQLite.NewInsertBuilder()
	row := make([]any, 0, len(t.columns))
	for _, c := range t.columns {
		row = append(row, vals[c])
	}
	ib.InsertInto(t.name).Cols(t.columns...).Values(row...)
	return ib.Build()
}

func (t *table) updateSQL(id int64, vals map[string]any) (string, []any) {
	ub := sqlbuilder.SQLite.NewUpdateBuilder()
	assignments := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		assignments = append(assignments, ub.Assign(c, vals[c]))
	}
	ub.Update(t.name).Set(assignments...).Where(ub.Equal(t.key, id))
	return ub.Build()
}

func (t *table) deleteSQL(id int64) (string, []any) {
	delb := sqlbuilder.SQLite.NewDeleteBuilder()
	delb.DeleteFrom(t.name).Where(delb.Equal(t.key, id))
	return delb.Build()
}

// countSQL counts the rows of t whose column equals id.
func (t *table) countSQL(column string, id int64) (string, []any) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("COUNT(*)").From(t.name).Where(sb.Equal(column, id))
	return sb.Build()
}

// keysSQL selects the keys of the rows of t whose column equals id.
func (t *table) keysSQL(column string, id int64) (string, []any) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(t.key).From(t.name).Where(sb.Equal(column, id)).OrderBy(t.key).Asc()
	return sb.Build()
}

func selectAll[T any](ctx context.Context, q sqlx.QueryerContext, query string, args ...any) ([]any, error) {
	var rows []T
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]any, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func selectOne[T any](ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (any, error) {
	var row T
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		return nil, err
	}
	return &row, nil
}

// count runs a COUNT query.
func count(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, q, &n, query, args...); err != nil {
		return 0, err
	}
	return n, nil
}
