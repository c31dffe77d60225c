package voucherrepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/voucher"

	"gorm.io/gorm"
)

const (
	entity      = "voucher"
	usageEntity = "voucher usage"
)

type GormVoucherRepository struct {
	db *gorm.DB
}

func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

func (r *GormVoucherRepository) Add(ctx context.Context, aggregate *voucher.Voucher) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.TranslateError(entity, aggregate.ID(), err)
	}
	return nil
}

func (r *GormVoucherRepository) Get(ctx context.Context, id kernel.UUID) (*voucher.Voucher, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var dto VoucherDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.NotFound(entity, id.String(), err)
	}
	return toDomain(dto)
}

func (r *GormVoucherRepository) GetByCode(ctx context.Context, shopID kernel.UUID, code string) (*voucher.Voucher, error) {
	if err := shopID.Validate(); err != nil {
		return nil, err
	}
	code = voucher.NormalizeCode(code)

	var dto VoucherDTO
	err := r.db.WithContext(ctx).First(&dto, "shop_id = ? AND code = ?", shopID.Bytes(), code).Error
	if err != nil {
		return nil, pgutil.NotFound(entity, code, err)
	}
	return toDomain(dto)
}

// Update writes the usage counter and flags under a version check.
func (r *GormVoucherRepository) Update(ctx context.Context, aggregate *voucher.Voucher) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&VoucherDTO{}).
		Where("id = ? AND version = ?", aggregate.ID().Bytes(), aggregate.Version()).
		Updates(map[string]any{
			"current_usage": aggregate.CurrentUsage(),
			"active":        aggregate.IsActive(),
			"deleted":       aggregate.IsDeleted(),
			"version":       aggregate.Version() + 1,
		})
	if err := pgutil.CheckSwap(entity, aggregate.ID(), result); err != nil {
		return err
	}

	aggregate.IncrementVersion()
	return nil
}

func (r *GormVoucherRepository) GetUsage(ctx context.Context, key string) (*voucher.Usage, error) {
	var dto UsageDTO
	if err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		return nil, pgutil.NotFound(usageEntity, key, err)
	}
	return usageToDomain(dto)
}

// AddUsage inserts the usage row. A second insert of the same key means a concurrent
// apply won and is reported as a concurrent modification.
func (r *GormVoucherRepository) AddUsage(ctx context.Context, usage *voucher.Usage) error {
	dto := usageFromDomain(usage)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.TranslateError(usageEntity, usage.Key(), err)
	}
	return nil
}

func (r *GormVoucherRepository) CountUsagesByUser(ctx context.Context, voucherID, userID kernel.UUID) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&UsageDTO{}).
		Where("voucher_id = ? AND user_id = ?", voucherID.Bytes(), userID.Bytes()).
		Count(&n).Error
	if err != nil {
		return 0, pgutil.TranslateError(usageEntity, voucherID, err)
	}
	return int(n), nil
}
