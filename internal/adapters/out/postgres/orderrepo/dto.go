// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order is stored in the orders table; its frozen line items live in order_items.
package orderrepo

import (
	"errors"
	"time"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID  `gorm:"type:uuid"`
	ShopID        uuid.UUID  `gorm:"type:uuid"`
	OwnerID       uuid.UUID  `gorm:"type:uuid"`
	ShipperID     *uuid.UUID `gorm:"type:uuid"`
	Address       AddressDTO `gorm:"embedded"`
	Subtotal      int64
	Discount      int64
	ShipFee       int64
	Total         int64
	VoucherID     *uuid.UUID `gorm:"type:uuid"`
	VoucherCode   string
	Status        string
	PaymentStatus string
	PlacedAt      time.Time
	ConfirmedAt   *time.Time
	PreparingAt   *time.Time
	ReadyAt       *time.Time
	ShippingAt    *time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
	CancelReason  string
	CancelledBy   string
	CancelledByID *uuid.UUID `gorm:"type:uuid"`
	PaidOut       bool
	Version       int64
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the delivery address embedded in the orders table.
type AddressDTO struct {
	Recipient   string
	Phone       string
	AddressLine string
	City        string
}

// ItemDTO is one frozen line item. Position keeps checkout order.
type ItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Name      string
	UnitPrice int64
	Quantity  int
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) (OrderDTO, []ItemDTO) {
	ts := o.Timestamps()
	addr := o.Address()

	dto := OrderDTO{
		ID:         o.ID().Bytes(),
		CustomerID: o.CustomerID().Bytes(),
		ShopID:     o.ShopID().Bytes(),
		OwnerID:    o.OwnerID().Bytes(),
		ShipperID:  kernel.BytesPtr(o.ShipperID()),
		Address: AddressDTO{
			Recipient:   addr.Recipient(),
			Phone:       addr.Phone(),
			AddressLine: addr.Line(),
			City:        addr.City(),
		},
		Subtotal:      o.Subtotal().Amount(),
		Discount:      o.Discount().Amount(),
		ShipFee:       o.ShipFee().Amount(),
		Total:         o.Total().Amount(),
		VoucherID:     kernel.BytesPtr(o.VoucherID()),
		VoucherCode:   o.VoucherCode(),
		Status:        o.Status().String(),
		PaymentStatus: o.PaymentStatus().String(),
		PlacedAt:      ts.PlacedAt,
		ConfirmedAt:   ts.ConfirmedAt,
		PreparingAt:   ts.PreparingAt,
		ReadyAt:       ts.ReadyAt,
		ShippingAt:    ts.ShippingAt,
		DeliveredAt:   ts.DeliveredAt,
		CancelledAt:   ts.CancelledAt,
		CancelReason:  o.CancelReason(),
		CancelledBy:   string(o.CancelledBy()),
		CancelledByID: kernel.BytesPtr(o.CancelledByID()),
		PaidOut:       o.IsPaidOut(),
		Version:       o.Version(),
	}

	items := make([]ItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, ItemDTO{
			OrderID:   dto.ID,
			Position:  i,
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Amount(),
			Quantity:  item.Quantity(),
		})
	}

	return dto, items
}

// toDomain rebuilds the aggregate with RestoreOrder, which re-checks its invariants.
func toDomain(dto OrderDTO, itemDTOs []ItemDTO) (*order.Order, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.CustomerID, dto.ShopID, dto.OwnerID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	shipperID, shipperErr := kernel.UUIDPtrFromBytes(dto.ShipperID)
	voucherID, voucherErr := kernel.UUIDPtrFromBytes(dto.VoucherID)
	cancelledByID, cancelledErr := kernel.UUIDPtrFromBytes(dto.CancelledByID)
	status, statusErr := order.ParseStatus(dto.Status)
	paymentStatus, paymentErr := order.ParsePaymentStatus(dto.PaymentStatus)
	if err := errors.Join(shipperErr, voucherErr, cancelledErr, statusErr, paymentErr); err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(dto.Address.Recipient, dto.Address.Phone, dto.Address.AddressLine, dto.Address.City)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, itemErr := toLineItem(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	subtotal, subtotalErr := kernel.NewMoney(dto.Subtotal)
	discount, discountErr := kernel.NewMoney(dto.Discount)
	shipFee, shipFeeErr := kernel.NewMoney(dto.ShipFee)
	total, totalErr := kernel.NewMoney(dto.Total)
	if err = errors.Join(subtotalErr, discountErr, shipFeeErr, totalErr); err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:            ids[0],
		CustomerID:    ids[1],
		ShopID:        ids[2],
		OwnerID:       ids[3],
		ShipperID:     shipperID,
		Items:         items,
		Address:       address,
		Subtotal:      subtotal,
		Discount:      discount,
		ShipFee:       shipFee,
		Total:         total,
		VoucherID:     voucherID,
		VoucherCode:   dto.VoucherCode,
		Status:        status,
		PaymentStatus: paymentStatus,
		Timestamps: order.Timestamps{
			PlacedAt:    pgutil.UTC(dto.PlacedAt),
			ConfirmedAt: pgutil.UTCPtr(dto.ConfirmedAt),
			PreparingAt: pgutil.UTCPtr(dto.PreparingAt),
			ReadyAt:     pgutil.UTCPtr(dto.ReadyAt),
			ShippingAt:  pgutil.UTCPtr(dto.ShippingAt),
			DeliveredAt: pgutil.UTCPtr(dto.DeliveredAt),
			CancelledAt: pgutil.UTCPtr(dto.CancelledAt),
		},
		CancelReason:  dto.CancelReason,
		CancelledBy:   kernel.Role(dto.CancelledBy),
		CancelledByID: cancelledByID,
		PaidOut:       dto.PaidOut,
		Version:       dto.Version,
	})
}

func toLineItem(dto ItemDTO) (order.LineItem, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.LineItem{}, err
	}
	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.LineItem{}, err
	}
	return order.NewLineItem(productID, dto.Name, unitPrice, dto.Quantity)
}
