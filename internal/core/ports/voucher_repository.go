package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/voucher"
)

// VoucherRepository stores vouchers and their usage records. A voucher's counter and
// its usage rows are only ever written together in one transaction.
type VoucherRepository interface {
	Add(ctx context.Context, aggregate *voucher.Voucher) error
	Get(ctx context.Context, id kernel.UUID) (*voucher.Voucher, error)
	// GetByCode looks a voucher up by its normalized code within a shop.
	GetByCode(ctx context.Context, shopID kernel.UUID, code string) (*voucher.Voucher, error)
	// Update persists currentUsage and flags under a version check.
	Update(ctx context.Context, aggregate *voucher.Voucher) error

	// GetUsage returns the usage with the deterministic key or errs.ErrObjectNotFound.
	GetUsage(ctx context.Context, key string) (*voucher.Usage, error)
	// AddUsage inserts a usage; a duplicate key is a concurrent modification.
	AddUsage(ctx context.Context, usage *voucher.Usage) error
	// CountUsagesByUser counts the usages of voucherID by userID.
	CountUsagesByUser(ctx context.Context, voucherID, userID kernel.UUID) (int, error)
}
