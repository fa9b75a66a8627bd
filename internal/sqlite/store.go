package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mesh-intelligence/donations/pkg/types"
)

// FetchAll returns every row of the entity's table ordered by key. Elements
// are pointers to the entity struct (e.g. *types.Donor).
func (b *Backend) FetchAll(ctx context.Context, e types.Entity) ([]any, error) {
	t, err := tableFor(e)
	if err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	query, args := t.selectAllSQL()
	rows, err := t.list(ctx, db, query, args...)
	if err != nil {
		return nil, b.storageError(ctx, "fetch "+t.name, err)
	}
	b.logger.WithContext(ctx).Debugf("fetched %d %s rows", len(rows), t.name)
	return rows, nil
}

// Get returns one row by key.
// Returns ErrInvalidID if id is not positive, ErrNotFound if no row matches.
func (b *Backend) Get(ctx context.Context, e types.Entity, id int64) (any, error) {
	t, err := tableFor(e)
	if err != nil {
		return nil, err
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

	query, args := t.selectByKeySQL(id)
	row, err := t.one(ctx, db, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s %d", types.ErrNotFound, e, id)
	}
	if err != nil {
		return nil, b.storageError(ctx, "get "+t.name, err)
	}
	return row, nil
}

// Insert writes a new row and returns its system-assigned key. Every
// referenced key is checked in the same transaction as the write.
func (b *Backend) Insert(ctx context.Context, rec types.Record) (int64, error) {
	if rec == nil {
		return 0, types.ErrInvalidData
	}
	t, err := tableFor(rec.Entity())
	if err != nil {
		return 0, err
	}
	vals, err := t.values(rec)
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := b.handle()
	if err != nil {
		return 0, err
	}

	var id int64
	err = b.withTx(ctx, db, "insert "+t.name, func(tx *sqlx.Tx) error {
		id, err = b.insert(ctx, tx, t, vals)
		return err
	})
	if err != nil {
		return 0, err
	}

	b.logger.WithContext(ctx).WithFields(map[string]any{
		"entity": string(t.entity),
		"id":     id,
	}).Info("record added")
	return id, nil
}

// Update replaces every writable column of the row with the given key.
// There is no partial update. Returns ErrNotFound if no row matches.
func (b *Backend) Update(ctx context.Context, id int64, rec types.Record) error {
	if rec == nil {
		return types.ErrInvalidData
	}
	t, err := tableFor(rec.Entity())
	if err != nil {
		return err
	}
	if id <= 0 {
		return types.ErrInvalidID
	}
	vals, err := t.values(rec)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := b.handle()
	if err != nil {
		return err
	}

	op := "update " + t.name
	err = b.withTx(ctx, db, op, func(tx *sqlx.Tx) error {
		if err := b.checkReferences(ctx, tx, t, vals); err != nil {
			return err
		}
		query, args := t.updateSQL(id, vals)
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return b.classify(ctx, op, t.entity, err)
		}
		return b.requireAffected(ctx, op, res, t.entity, id)
	})
	if err != nil {
		return err
	}

	b.logger.WithContext(ctx).WithFields(map[string]any{
		"entity": string(t.entity),
		"id":     id,
	}).Info("record updated")
	return nil
}

// insert checks references and writes one row inside q.
func (b *Backend) insert(ctx context.Context, q querier, t *table, vals map[string]any) (int64, error) {
	op := "insert " + t.name
	if err := b.checkReferences(ctx, q, t, vals); err != nil {
		return 0, err
	}
	query, args := t.insertSQL(vals)
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, b.classify(ctx, op, t.entity, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, b.storageError(ctx, op, err)
	}
	return id, nil
}

// checkReferences verifies that every non-null foreign key in vals names an
// existing parent row.
func (b *Backend) checkReferences(ctx context.Context, q querier, t *table, vals map[string]any) error {
	for _, ref := range t.refs {
		v := vals[ref.column]
		if v == nil {
			continue
		}
		id, ok := v.(int64)
		if !ok {
			return fmt.Errorf("%w: %s must be an integer key", types.ErrInvalidData, ref.column)
		}
		parent := tables[ref.parent]
		query, args := parent.countSQL(parent.key, id)
		n, err := count(ctx, q, query, args...)
		if err != nil {
			return b.storageError(ctx, "check "+ref.column, err)
		}
		if n == 0 {
			return &types.ConstraintViolation{
				Entity: t.entity,
				Field:  ref.column,
				Kind:   types.ConstraintForeignKey,
				Detail: fmt.Sprintf("%s %d does not exist", ref.parent, id),
			}
		}
	}
	return nil
}

// requireAffected turns a write that touched no rows into ErrNotFound.
func (b *Backend) requireAffected(ctx context.Context, op string, res sql.Result, e types.Entity, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return b.storageError(ctx, op, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %d", types.ErrNotFound, e, id)
	}
	return nil
}
