package walletrepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"

	"gorm.io/gorm"
)

const payoutEntity = "payout request"

type GormPayoutRepository struct {
	db      *gorm.DB
	tracker pgutil.AggregateTracker
}

func NewGormPayoutRepository(db *gorm.DB, tracker pgutil.AggregateTracker) *GormPayoutRepository {
	return &GormPayoutRepository{db: db, tracker: tracker}
}

func (r *GormPayoutRepository) Add(ctx context.Context, aggregate *wallet.PayoutRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := payoutFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.TranslateError(payoutEntity, aggregate.ID(), err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPayoutRepository) Get(ctx context.Context, id kernel.UUID) (*wallet.PayoutRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PayoutDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.NotFound(payoutEntity, id.String(), err)
	}
	return payoutToDomain(dto)
}

func (r *GormPayoutRepository) Update(ctx context.Context, aggregate *wallet.PayoutRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := payoutFromDomain(aggregate)
	dto.Version++

	result := r.db.WithContext(ctx).
		Model(&PayoutDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id").
		Updates(&dto)
	if err := pgutil.CheckSwap(payoutEntity, aggregate.ID(), result); err != nil {
		return err
	}

	aggregate.IncrementVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
