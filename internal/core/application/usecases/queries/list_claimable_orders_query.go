package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrListClaimableOrdersQueryIsNotConstructed = errors.New(
	"ListClaimableOrdersQuery must be created via NewListClaimableOrdersQuery constructor",
)

// ListClaimableOrdersQuery lists READY orders no shipper has accepted yet, oldest first.
// A listed order may be claimed by someone else before the caller accepts it.
type ListClaimableOrdersQuery struct {
	limit int
	guard guard.ConstructorGuard
}

// NewListClaimableOrdersQuery accepts 0 for DefaultLimit.
func NewListClaimableOrdersQuery(limit int) (ListClaimableOrdersQuery, error) {
	limit = limitOrDefault(limit)
	if limit < 1 || limit > MaxLimit {
		return ListClaimableOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxLimit)
	}
	return ListClaimableOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListClaimableOrdersQuery) Limit() int {
	return q.limit
}

func (q ListClaimableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListClaimableOrdersQueryIsNotConstructed)
}

// ClaimableOrderView is what a shipper needs to decide whether to accept an order.
type ClaimableOrderView struct {
	ID      kernel.UUID
	ShopID  kernel.UUID
	City    string
	ShipFee int64
	Total   int64
	ReadyAt time.Time
}
