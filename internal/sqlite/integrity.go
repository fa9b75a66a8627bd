package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mesh-intelligence/donations/pkg/types"
)

// Dependents counts, per entity, the rows that directly reference the row
// with the given key. An empty result means the row may be deleted.
func (b *Backend) Dependents(ctx context.Context, e types.Entity, id int64) (types.Dependents, error) {
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
	return b.countDependents(ctx, db, t, id)
}

// Delete removes one row under the restrict policy: if anything still
// references it the row stays and a DependentsError is returned.
// Returns ErrNotFound if no row matches.
func (b *Backend) Delete(ctx context.Context, e types.Entity, id int64) error {
	t, err := tableFor(e)
	if err != nil {
		return err
	}
	if id <= 0 {
		return types.ErrInvalidID
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := b.handle()
	if err != nil {
		return err
	}

	op := "delete " + t.name
	err = b.withTx(ctx, db, op, func(tx *sqlx.Tx) error {
		deps, err := b.countDependents(ctx, tx, t, id)
		if err != nil {
			return err
		}
		if deps.Total() > 0 {
			return &types.DependentsError{Entity: e, ID: id, Dependents: deps}
		}
		query, args := t.deleteSQL(id)
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return b.classify(ctx, op, e, err)
		}
		return b.requireAffected(ctx, op, res, e, id)
	})
	if err != nil {
		b.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"entity": string(e),
			"id":     id,
		}).Debug("delete refused")
		return err
	}

	b.logger.WithContext(ctx).WithFields(map[string]any{
		"entity": string(e),
		"id":     id,
	}).Info("record deleted")
	return nil
}

// DeleteCascade removes the row and everything that depends on it,
// transitively, children before parents, in one transaction. It returns the
// number of dependent rows removed per entity, not counting the row itself.
func (b *Backend) DeleteCascade(ctx context.Context, e types.Entity, id int64) (types.Dependents, error) {
	t, err := tableFor(e)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, types.ErrInvalidID
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	removed := types.Dependents{}
	err = b.withTx(ctx, db, "cascade delete "+t.name, func(tx *sqlx.Tx) error {
		query, args := t.countSQL(t.key, id)
		n, err := count(ctx, tx, query, args...)
		if err != nil {
			return b.storageError(ctx, "cascade delete "+t.name, err)
		}
		if n == 0 {
			return fmt.Errorf("%w: %s %d", types.ErrNotFound, e, id)
		}
		return b.cascade(ctx, tx, t, id, removed)
	})
	if err != nil {
		return nil, err
	}

	b.logger.WithContext(ctx).WithFields(map[string]any{
		"entity":  string(e),
		"id":      id,
		"removed": removed.String(),
	}).Info("record deleted with dependents")
	return removed, nil
}

// cascade deletes the dependents of one row depth first, then the row.
func (b *Backend) cascade(ctx context.Context, tx *sqlx.Tx, t *table, id int64, removed types.Dependents) error {
	for _, dep := range dependentsOf[t.entity] {
		query, args := dep.child.keysSQL(dep.column, id)
		var keys []int64
		if err := tx.SelectContext(ctx, &keys, query, args...); err != nil {
			return b.storageError(ctx, "list "+dep.child.name, err)
		}
		for _, key := range keys {
			if err := b.cascade(ctx, tx, dep.child, key, removed); err != nil {
				return err
			}
			removed.Add(dep.child.entity, 1)
		}
	}

	op := "delete " + t.name
	query, args := t.deleteSQL(id)
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return b.classify(ctx, op, t.entity, err)
	}
	return nil
}

// countDependents counts the rows of every child table that reference id.
func (b *Backend) countDependents(ctx context.Context, q sqlx.QueryerContext, t *table, id int64) (types.Dependents, error) {
	deps := types.Dependents{}
	for _, dep := range dependentsOf[t.entity] {
		query, args := dep.child.countSQL(dep.column, id)
		n, err := count(ctx, q, query, args...)
		if err != nil {
			return nil, b.storageError(ctx, "count "+dep.child.name, err)
		}
		deps.Add(dep.child.entity, n)
	}
	return deps, nil
}
