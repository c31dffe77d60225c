// Package queries contains the read side of the engine. Query handlers read
// committed rows directly through GORM and never load aggregates, so they carry
// no invariants and must not be used to make write decisions.
package queries

import (
	"marketplace/internal/core/domain/model/kernel"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// psql builds SELECTs with '?' placeholders; GORM's Raw rebinds them for PostgreSQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

func nullableID(raw uuid.NullUUID) (*kernel.UUID, error) {
	if !raw.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func limitOrDefault(limit int) int {
	if limit == 0 {
		return DefaultLimit
	}
	return limit
}
