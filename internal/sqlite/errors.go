package sqlite

import (
	"context"
	"errors"
	"regexp"
	"strings"

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/donations/pkg/types"
)

// constraintColumn extracts table and column from messages such as
// "UNIQUE constraint failed: donor.email".
var constraintColumn = regexp.MustCompile(`constraint failed: (\w+)\.(\w+)`)

// constraintViolation maps an engine constraint failure to a
// ConstraintViolation. It returns nil for any other error.
func constraintViolation(e types.Entity, err error) *types.ConstraintViolation {
	var se *sqlitedriver.Error
	if !errors.As(err, &se) || se.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return nil
	}

	msg := se.Error()
	cv := &types.ConstraintViolation{Entity: e, Err: err}
	switch {
	case strings.Contains(msg, "UNIQUE"):
		cv.Kind = types.ConstraintUnique
	case strings.Contains(msg, "NOT NULL"):
		cv.Kind = types.ConstraintNotNull
	case strings.Contains(msg, "FOREIGN KEY"):
		cv.Kind = types.ConstraintForeignKey
	default:
		cv.Kind = types.ConstraintCheck
		cv.Detail = checkDetail(msg)
	}
	if m := constraintColumn.FindStringSubmatch(msg); m != nil {
		cv.Field = m[2]
	}
	return cv
}

// checkDetail returns the failed expression from a message such as
// "constraint failed: CHECK constraint failed: amount > 0 (275)".
func checkDetail(msg string) string {
	const marker = "constraint failed: "
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return ""
	}
	detail := msg[i+len(marker):]
	if j := strings.LastIndex(detail, " ("); j >= 0 {
		detail = detail[:j]
	}
	return strings.TrimSpace(detail)
}

// classify turns a write error into a ConstraintViolation when the engine
// rejected the row, and a StorageError otherwise.
func (b *Backend) classify(ctx context.Context, op string, e types.Entity, err error) error {
	if cv := constraintViolation(e, err); cv != nil {
		b.logger.WithContext(ctx).WithFields(map[string]any{
			"op":     op,
			"entity": string(e),
			"field":  cv.Field,
			"kind":   string(cv.Kind),
		}).Debug("write rejected by constraint")
		return cv
	}
	return b.storageError(ctx, op, err)
}

// storageError logs an engine fault and wraps it.
func (b *Backend) storageError(ctx context.Context, op string, err error) error {
	b.logger.WithContext(ctx).WithError(err).WithField("op", op).Error("storage operation failed")
	return &types.StorageError{Op: op, Err: err}
}
