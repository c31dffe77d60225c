// Package pgutil holds helpers shared by the PostgreSQL repositories.
package pgutil

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// AggregateTracker is implemented by the unit of work; repositories report every
// aggregate they write so its domain events can be collected after commit.
type AggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// TranslateError maps the failures PostgreSQL reports for a lost race onto
// errs.ErrConcurrentModification: serialization failures, deadlocks and unique
// violations. Any other error is returned unchanged.
func TranslateError(entity string, id any, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected, pgerrcode.UniqueViolation:
			return errs.NewConcurrentModificationErrorWithCause(entity, id, err)
		}
	}
	return err
}

// CheckSwap turns the result of an UPDATE ... WHERE version = ? into an error:
// zero affected rows means another transaction got there first.
func CheckSwap(entity string, id any, result *gorm.DB) error {
	if result.Error != nil {
		return TranslateError(entity, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError(entity, id)
	}
	return nil
}

// NotFound converts gorm.ErrRecordNotFound into errs.ObjectNotFoundError.
func NotFound(entity string, id any, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(entity, id)
	}
	return TranslateError(entity, id, err)
}

// UTC normalizes timestamps read back from timestamptz columns.
func UTC(t time.Time) time.Time {
	return t.UTC()
}

// UTCPtr is UTC for nullable columns.
func UTCPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
