package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions (see transitions.go for the role that may trigger each edge):
//
//	PENDING ──> CONFIRMED ──> PREPARING ──> READY ──> SHIPPING ──> DELIVERED
//	   │            │             │           │
//	   └────────────┴─────────────┴───────────┴──────> CANCELLED
//
// DELIVERED and CANCELLED are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the status of a freshly checked-out order awaiting the shop owner.
	Pending

	// Confirmed means the shop owner accepted the order.
	Confirmed

	// Preparing means the shop is packing the order.
	Preparing

	// Ready means the order waits for a shipper to claim it.
	Ready

	// Shipping means an assigned shipper is carrying the order.
	Shipping

	// Delivered is terminal. Entering it settles the order into the wallets.
	Delivered

	// Cancelled is terminal. Entering it releases stock and voucher usage.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Confirmed: "CONFIRMED",
		Preparing: "PREPARING",
		Ready:     "READY",
		Shipping:  "SHIPPING",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, Preparing, Ready, Shipping, Delivered, Cancelled}
}

// ParseStatus converts a persisted or user-supplied name into a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, status := range AllStatuses() {
		if getStatusStrings()[status] == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the lifecycle statuses.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status. It is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition may leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsClaimable reports whether a shipper may accept an order in status s.
func (s Status) IsClaimable() bool {
	return s == Ready
}

// PaymentStatus tracks cash-on-delivery collection.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	Unpaid
	Paid
)

func (p PaymentStatus) String() string {
	switch p {
	case Unpaid:
		return "UNPAID"
	case Paid:
		return "PAID"
	default:
		return "UNKNOWN"
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UNPAID":
		return Unpaid, nil
	case "PAID":
		return Paid, nil
	default:
		return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
			"payment status", fmt.Errorf("%q is not a valid payment status", s))
	}
}
