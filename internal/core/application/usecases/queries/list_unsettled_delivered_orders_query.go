package queries

import (
	"errors"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrListUnsettledDeliveredOrdersQueryIsNotConstructed = errors.New(
	"ListUnsettledDeliveredOrdersQuery must be created via NewListUnsettledDeliveredOrdersQuery constructor",
)

// ListUnsettledDeliveredOrdersQuery finds DELIVERED orders whose earnings were not credited yet.
type ListUnsettledDeliveredOrdersQuery struct {
	limit int
	guard guard.ConstructorGuard
}

func NewListUnsettledDeliveredOrdersQuery(limit int) (ListUnsettledDeliveredOrdersQuery, error) {
	limit = limitOrDefault(limit)
	if limit < 1 || limit > MaxLimit {
		return ListUnsettledDeliveredOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxLimit)
	}
	return ListUnsettledDeliveredOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListUnsettledDeliveredOrdersQuery) Limit() int {
	return q.limit
}

func (q ListUnsettledDeliveredOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListUnsettledDeliveredOrdersQueryIsNotConstructed)
}
