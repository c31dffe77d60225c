package ledger

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/voucher"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ApplyRequest identifies one redemption and the order amounts it is computed from.
type ApplyRequest struct {
	VoucherID kernel.UUID
	ShopID    kernel.UUID
	UserID    kernel.UUID
	OrderID   kernel.UUID
	Subtotal  kernel.Money
	ShipFee   kernel.Money
}

// Applied is the outcome of an apply. Replayed is true when the usage already existed
// and nothing was written.
type Applied struct {
	Voucher  *voucher.Voucher
	Discount kernel.Money
	Replayed bool
}

type VoucherLedger struct {
	clock kernel.Clock
}

func NewVoucherLedger(clock kernel.Clock) VoucherLedger {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return VoucherLedger{clock: clock}
}

// Apply validates the voucher against fresh state and redeems it once for the order.
//
// A usage already recorded for (voucher, user, order) short-circuits every check and
// returns the recorded discount. Otherwise the voucher must be redeemable for the shop,
// the user must be under the per-user limit, and the counter increment and usage row
// are written in the caller's transaction.
func (l VoucherLedger) Apply(ctx context.Context, repo ports.VoucherRepository, req ApplyRequest) (Applied, error) {
	v, err := repo.Get(ctx, req.VoucherID)
	if err != nil {
		return Applied{}, err
	}

	key := voucher.UsageKey(req.VoucherID, req.UserID, req.OrderID)
	existing, err := repo.GetUsage(ctx, key)
	switch {
	case err == nil:
		return Applied{Voucher: v, Discount: existing.Discount(), Replayed: true}, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return Applied{}, err
	}

	now := l.clock.Now()
	if err = v.CheckRedeemable(req.ShopID, now, req.Subtotal); err != nil {
		return Applied{}, err
	}

	used, err := repo.CountUsagesByUser(ctx, req.VoucherID, req.UserID)
	if err != nil {
		return Applied{}, err
	}
	if err = v.CheckPerUser(used); err != nil {
		return Applied{}, err
	}

	discount, err := v.ComputeDiscount(req.Subtotal, req.ShipFee)
	if err != nil {
		return Applied{}, err
	}

	usage, err := voucher.NewUsage(req.VoucherID, req.UserID, req.OrderID, discount, now)
	if err != nil {
		return Applied{}, err
	}
	if err = v.Redeem(); err != nil {
		return Applied{}, err
	}
	if err = repo.Update(ctx, v); err != nil {
		return Applied{}, err
	}
	if err = repo.AddUsage(ctx, usage); err != nil {
		return Applied{}, err
	}

	return Applied{Voucher: v, Discount: discount}, nil
}
