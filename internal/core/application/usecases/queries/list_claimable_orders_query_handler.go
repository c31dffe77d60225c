package queries

import (
	"context"
	"database/sql"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListClaimableOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListClaimableOrdersQueryHandler(db *gorm.DB) ListClaimableOrdersQueryHandler {
	return ListClaimableOrdersQueryHandler{db: db}
}

func (h ListClaimableOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListClaimableOrdersQuery,
) ([]ClaimableOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt, args, err := psql.
		Select("id", "shop_id", "city", "ship_fee", "total", "ready_at").
		From("orders").
		Where(sq.Eq{"status": order.Ready.String(), "shipper_id": nil}).
		OrderBy("ready_at", "id").
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

	views := make([]ClaimableOrderView, 0)
	for rows.Next() {
		var (
			view       ClaimableOrderView
			id, shopID uuid.UUID
			readyAt    sql.NullTime
		)
		if err = rows.Scan(&id, &shopID, &view.City, &view.ShipFee, &view.Total, &readyAt); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.ShopID, err = kernel.UUIDFromBytes(shopID[:]); err != nil {
			return nil, err
		}
		view.ReadyAt = readyAt.Time
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
