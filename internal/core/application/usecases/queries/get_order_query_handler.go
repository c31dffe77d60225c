package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for an unknown order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	view, err := h.readOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	if view.Items, err = h.readItems(ctx, query.OrderID()); err != nil {
		return nil, err
	}
	return view, nil
}

func (h GetOrderQueryHandler) readOrder(ctx context.Context, orderID kernel.UUID) (*OrderView, error) {
	stmt, args, err := psql.
		Select(
			"id", "customer_id", "shop_id", "shipper_id", "status", "payment_status",
			"recipient", "phone", "address_line", "city",
			"subtotal", "discount", "ship_fee", "total", "voucher_code", "paid_out",
			"placed_at", "delivered_at", "cancelled_at", "cancel_reason",
		).
		From("orders").
		Where(sq.Eq{"id": orderID.String()}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		view                   OrderView
		id, customerID, shopID uuid.UUID
		shipperID              uuid.NullUUID
		deliveredAt            sql.NullTime
		cancelledAt            sql.NullTime
	)
	row := h.db.WithContext(ctx).Raw(stmt, args...).Row()
	err = row.Scan(
		&id, &customerID, &shopID, &shipperID, &view.Status, &view.PaymentStatus,
		&view.Recipient, &view.Phone, &view.AddressLine, &view.City,
		&view.Subtotal, &view.Discount, &view.ShipFee, &view.Total, &view.VoucherCode, &view.PaidOut,
		&view.PlacedAt, &deliveredAt, &cancelledAt, &view.CancelReason,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("order", orderID.String())
	}
	if err != nil {
		return nil, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	if view.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return nil, err
	}
	if view.ShopID, err = kernel.UUIDFromBytes(shopID[:]); err != nil {
		return nil, err
	}
	if view.ShipperID, err = nullableID(shipperID); err != nil {
		return nil, err
	}
	if deliveredAt.Valid {
		view.DeliveredAt = &deliveredAt.Time
	}
	if cancelledAt.Valid {
		view.CancelledAt = &cancelledAt.Time
	}
	return &view, nil
}

func (h GetOrderQueryHandler) readItems(ctx context.Context, orderID kernel.UUID) ([]OrderItemView, error) {
	stmt, args, err := psql.
		Select("product_id", "name", "unit_price", "quantity").
		From("order_items").
		Where(sq.Eq{"order_id": orderID.String()}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var (
			item      OrderItemView
			productID uuid.UUID
		)
		if err = rows.Scan(&productID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
