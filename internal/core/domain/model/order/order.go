package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Order is the aggregate root of the fulfillment engine. It is created by checkout,
// mutated only through Transition, AssignShipper and Settle, and never deleted.
//
// Order follows these invariants:
//   - total == subtotal - discount + shipFee and total >= 0
//   - line items are frozen at checkout
//   - status changes follow the transition table and the actor's role
//   - a shipper is set exactly once, when a READY order is claimed
//   - paidOut flips to true at most once, after DELIVERED
type Order struct {
	kernel.EventRecorder

	id         kernel.UUID
	customerID kernel.UUID
	shopID     kernel.UUID
	// ownerID is the shop owner at checkout time; it receives the shop's earnings.
	ownerID   kernel.UUID
	shipperID *kernel.UUID

	items   []LineItem
	address kernel.Address

	subtotal kernel.Money
	discount kernel.Money
	shipFee  kernel.Money
	total    kernel.Money

	voucherID   *kernel.UUID
	voucherCode string

	status        Status
	paymentStatus PaymentStatus
	timestamps    Timestamps

	cancelReason  string
	cancelledBy   kernel.Role
	cancelledByID *kernel.UUID

	paidOut bool
	version int64

	isConstructed bool
}

// Timestamps holds the instant each lifecycle status was entered.
type Timestamps struct {
	PlacedAt    time.Time
	ConfirmedAt *time.Time
	PreparingAt *time.Time
	ReadyAt     *time.Time
	ShippingAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// NewOrderParams carries everything checkout has computed for a new order.
type NewOrderParams struct {
	ID          kernel.UUID
	CustomerID  kernel.UUID
	ShopID      kernel.UUID
	OwnerID     kernel.UUID
	Items       []LineItem
	Address     kernel.Address
	Discount    kernel.Money
	ShipFee     kernel.Money
	VoucherID   *kernel.UUID
	VoucherCode string
	PlacedAt    time.Time
}

// NewOrder creates a PENDING, UNPAID order and records an order.placed event.
// The subtotal is derived from the line items.
func NewOrder(p NewOrderParams) (*Order, error) {
	var errList []error
	for _, id := range []kernel.UUID{p.ID, p.CustomerID, p.ShopID, p.OwnerID} {
		if err := id.Validate(); err != nil {
			errList = append(errList, err)
		}
	}
	if len(p.Items) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("line items"))
	}
	if err := p.Address.Validate(); err != nil {
		errList = append(errList, err)
	}
	if p.PlacedAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("placed at"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	subtotal, err := Subtotal(p.Items)
	if err != nil {
		return nil, err
	}
	total, err := ComputeTotal(subtotal, p.Discount, p.ShipFee)
	if err != nil {
		return nil, err
	}

	o := &Order{
		id:            p.ID,
		customerID:    p.CustomerID,
		shopID:        p.ShopID,
		ownerID:       p.OwnerID,
		items:         append([]LineItem(nil), p.Items...),
		address:       p.Address,
		subtotal:      subtotal,
		discount:      p.Discount,
		shipFee:       p.ShipFee,
		total:         total,
		voucherID:     p.VoucherID,
		voucherCode:   strings.TrimSpace(p.VoucherCode),
		status:        Pending,
		paymentStatus: Unpaid,
		timestamps:    Timestamps{PlacedAt: p.PlacedAt},
		isConstructed: true,
	}

	o.Record(PlacedEvent{
		OrderID:    o.id,
		CustomerID: o.customerID,
		ShopID:     o.shopID,
		Total:      o.total.Amount(),
		At:         p.PlacedAt,
	})

	return o, nil
}

// Subtotal sums the line totals.
func Subtotal(items []LineItem) (kernel.Money, error) {
	subtotal := kernel.Zero
	for _, item := range items {
		line, err := item.LineTotal()
		if err != nil {
			return kernel.Zero, err
		}
		if subtotal, err = subtotal.Add(line); err != nil {
			return kernel.Zero, err
		}
	}
	return subtotal, nil
}

// ComputeTotal returns subtotal - discount + shipFee or ErrNonNegativeTotalViolation.
func ComputeTotal(subtotal, discount, shipFee kernel.Money) (kernel.Money, error) {
	gross, err := subtotal.Add(shipFee)
	if err != nil {
		return kernel.Zero, err
	}
	if gross.LessThan(discount) {
		return kernel.Zero, ErrNonNegativeTotalViolation
	}
	return gross.Sub(discount)
}

// RestoreParams is the persisted state of an order.
type RestoreParams struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	ShopID        kernel.UUID
	OwnerID       kernel.UUID
	ShipperID     *kernel.UUID
	Items         []LineItem
	Address       kernel.Address
	Subtotal      kernel.Money
	Discount      kernel.Money
	ShipFee       kernel.Money
	Total         kernel.Money
	VoucherID     *kernel.UUID
	VoucherCode   string
	Status        Status
	PaymentStatus PaymentStatus
	Timestamps    Timestamps
	CancelReason  string
	CancelledBy   kernel.Role
	CancelledByID *kernel.UUID
	PaidOut       bool
	Version       int64
}

// RestoreOrder rebuilds an order loaded from storage. It re-checks the money
// invariant and the status/shipper consistency but records no events.
func RestoreOrder(p RestoreParams) (*Order, error) {
	if err := p.ID.Validate(); err != nil {
		return nil, err
	}
	if err := p.Status.Validate(); err != nil {
		return nil, err
	}
	total, err := ComputeTotal(p.Subtotal, p.Discount, p.ShipFee)
	if err != nil {
		return nil, err
	}
	if total != p.Total {
		return nil, errs.NewValueIsInvalidError("order total does not match subtotal - discount + ship fee")
	}
	if (p.Status == Shipping || p.Status == Delivered) && p.ShipperID == nil {
		return nil, errs.NewValueIsInvalidError("order in " + p.Status.String() + " must have a shipper")
	}

	return &Order{
		id:            p.ID,
		customerID:    p.CustomerID,
		shopID:        p.ShopID,
		ownerID:       p.OwnerID,
		shipperID:     p.ShipperID,
		items:         p.Items,
		address:       p.Address,
		subtotal:      p.Subtotal,
		discount:      p.Discount,
		shipFee:       p.ShipFee,
		total:         p.Total,
		voucherID:     p.VoucherID,
		voucherCode:   p.VoucherCode,
		status:        p.Status,
		paymentStatus: p.PaymentStatus,
		timestamps:    p.Timestamps,
		cancelReason:  p.CancelReason,
		cancelledBy:   p.CancelledBy,
		cancelledByID: p.CancelledByID,
		paidOut:       p.PaidOut,
		version:       p.Version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID                { return o.id }
func (o *Order) CustomerID() kernel.UUID        { return o.customerID }
func (o *Order) ShopID() kernel.UUID            { return o.shopID }
func (o *Order) OwnerID() kernel.UUID           { return o.ownerID }
func (o *Order) ShipperID() *kernel.UUID        { return o.shipperID }
func (o *Order) Address() kernel.Address        { return o.address }
func (o *Order) Subtotal() kernel.Money         { return o.subtotal }
func (o *Order) Discount() kernel.Money         { return o.discount }
func (o *Order) ShipFee() kernel.Money          { return o.shipFee }
func (o *Order) Total() kernel.Money            { return o.total }
func (o *Order) VoucherID() *kernel.UUID        { return o.voucherID }
func (o *Order) VoucherCode() string            { return o.voucherCode }
func (o *Order) Status() Status                 { return o.status }
func (o *Order) PaymentStatus() PaymentStatus   { return o.paymentStatus }
func (o *Order) Timestamps() Timestamps         { return o.timestamps }
func (o *Order) CancelReason() string           { return o.cancelReason }
func (o *Order) CancelledBy() kernel.Role       { return o.cancelledBy }
func (o *Order) CancelledByID() *kernel.UUID    { return o.cancelledByID }
func (o *Order) IsPaidOut() bool                { return o.paidOut }
func (o *Order) Version() int64                 { return o.version }
func (o *Order) IsEqual(other *Order) bool      { return other != nil && o.id.IsEqual(other.id) }
func (o *Order) Items() []LineItem              { return append([]LineItem(nil), o.items...) }
func (o *Order) IsShipper(id kernel.UUID) bool  { return o.shipperID != nil && o.shipperID.IsEqual(id) }
func (o *Order) IsCustomer(id kernel.UUID) bool { return o.customerID.IsEqual(id) }

// IncrementVersion is called by the repository after a successful compare-and-swap write.
func (o *Order) IncrementVersion() {
	o.version++
}

// Transition moves the order to target on behalf of actor.
//
// The edge must exist in the transition table and the actor's role must be allowed
// to trigger it. In addition the actor must be a party of this order: the customer
// for CUSTOMER, the shop owner for OWNER and the assigned shipper for SHIPPER.
// SYSTEM acts on any order. The reason is kept as cancellation metadata.
//
// Claiming a READY order is not a plain transition; use AssignShipper.
func (o *Order) Transition(actor kernel.Actor, target Status, reason string, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if err := ValidateTransition(o.status, target, actor.Role()); err != nil {
		return err
	}
	if err := o.checkParty(actor); err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if target == Cancelled {
		id := actor.ID()
		o.cancelReason = reason
		o.cancelledBy = actor.Role()
		o.cancelledByID = &id
	}

	o.apply(actor, target, reason, now)
	return nil
}

// AssignShipper lets shipper claim a READY, unassigned order and moves it to SHIPPING.
func (o *Order) AssignShipper(shipper kernel.Actor, now time.Time) error {
	if err := shipper.Validate(); err != nil {
		return err
	}
	if o.shipperID != nil {
		return &AlreadyAssignedError{OrderID: o.id, ShipperID: *o.shipperID}
	}
	if !o.status.IsClaimable() {
		return fmt.Errorf("%w: status is %s", ErrNotClaimable, o.status)
	}
	if err := ValidateTransition(o.status, Shipping, shipper.Role()); err != nil {
		return err
	}

	id := shipper.ID()
	o.shipperID = &id
	o.Record(ShipperAssignedEvent{OrderID: o.id, ShipperID: id, At: now})
	o.apply(shipper, Shipping, "", now)
	return nil
}

// Settlement is how a delivered order's total is split between the two wallets.
type Settlement struct {
	OwnerID      kernel.UUID
	OwnerShare   kernel.Money
	ShipperID    kernel.UUID
	ShipperShare kernel.Money
}

// Settle marks a DELIVERED order as paid out and returns the split to credit.
// The shipper earns min(shipFee, total) and the owner the rest, so the shares sum to total.
// It returns ok=false with no error when the order was already paid out.
func (o *Order) Settle() (Settlement, bool, error) {
	if o.status != Delivered {
		return Settlement{}, false, ErrNotDelivered
	}
	if o.paidOut {
		return Settlement{}, false, nil
	}
	if o.shipperID == nil {
		return Settlement{}, false, errs.NewInvalidStateError("delivered order has no shipper")
	}

	shipperShare := o.shipFee.Min(o.total)
	ownerShare, err := o.total.Sub(shipperShare)
	if err != nil {
		return Settlement{}, false, err
	}

	o.paidOut = true
	o.paymentStatus = Paid

	return Settlement{
		OwnerID:      o.ownerID,
		OwnerShare:   ownerShare,
		ShipperID:    *o.shipperID,
		ShipperShare: shipperShare,
	}, true, nil
}

func (o *Order) checkParty(actor kernel.Actor) error {
	var ok bool
	switch actor.Role() {
	case kernel.RoleCustomer:
		ok = o.customerID.IsEqual(actor.ID())
	case kernel.RoleOwner:
		ok = o.ownerID.IsEqual(actor.ID())
	case kernel.RoleShipper:
		ok = o.IsShipper(actor.ID())
	case kernel.RoleSystem, kernel.RoleAdmin:
		ok = true
	}
	if !ok {
		return &NotOrderPartyError{OrderID: o.id, Actor: actor}
	}
	return nil
}

func (o *Order) apply(actor kernel.Actor, target Status, reason string, now time.Time) {
	from := o.status
	o.status = target

	at := now
	switch target {
	case Confirmed:
		o.timestamps.ConfirmedAt = &at
	case Preparing:
		o.timestamps.PreparingAt = &at
	case Ready:
		o.timestamps.ReadyAt = &at
	case Shipping:
		o.timestamps.ShippingAt = &at
	case Delivered:
		o.timestamps.DeliveredAt = &at
	case Cancelled:
		o.timestamps.CancelledAt = &at
	case Unknown, Pending:
	}

	o.Record(StatusChangedEvent{OrderID: o.id, From: from, To: target, Actor: actor, Reason: reason, At: now})
}
