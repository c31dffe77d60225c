package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListUnsettledDeliveredOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListUnsettledDeliveredOrdersQueryHandler(db *gorm.DB) ListUnsettledDeliveredOrdersQueryHandler {
	return ListUnsettledDeliveredOrdersQueryHandler{db: db}
}

// Handle returns order ids, oldest delivery first.
func (h ListUnsettledDeliveredOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListUnsettledDeliveredOrdersQuery,
) ([]kernel.UUID, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt, args, err := psql.
		Select("id").
		From("orders").
		Where(sq.Eq{"status": order.Delivered.String(), "paid_out": false}).
		OrderBy("delivered_at", "id").
		Limit(uint64(query.Limit())). //nolint:gosec // limit is validated by the constructor
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]kernel.UUID, 0)
	for rows.Next() {
		var raw uuid.UUID
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}
		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
