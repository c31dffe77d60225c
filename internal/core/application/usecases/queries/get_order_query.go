package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

// GetOrderQuery reads one order with its frozen line items.
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderView is the order as shown to its parties.
type OrderView struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	ShopID        kernel.UUID
	ShipperID     *kernel.UUID
	Status        string
	PaymentStatus string
	Recipient     string
	Phone         string
	AddressLine   string
	City          string
	Subtotal      int64
	Discount      int64
	ShipFee       int64
	Total         int64
	VoucherCode   string
	PaidOut       bool
	PlacedAt      time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
	CancelReason  string
	Items         []OrderItemView
}

type OrderItemView struct {
	ProductID kernel.UUID
	Name      string
	UnitPrice int64
	Quantity  int
}
