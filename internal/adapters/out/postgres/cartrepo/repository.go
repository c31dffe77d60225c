package cartrepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

const entity = "cart"

type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Get(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var dto CartDTO
	if err := db.First(&dto, "customer_id = ?", customerID.Bytes()).Error; err != nil {
		return nil, pgutil.NotFound(entity, customerID.String(), err)
	}

	var items []ItemDTO
	if err := db.Where("customer_id = ?", customerID.Bytes()).Order("position").Find(&items).Error; err != nil {
		return nil, pgutil.TranslateError(entity, customerID.String(), err)
	}

	return toDomain(dto, items)
}

func (r *GormCartRepository) Add(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := CartDTO{CustomerID: aggregate.CustomerID().Bytes(), Version: aggregate.Version()}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.TranslateError(entity, aggregate.CustomerID(), err)
	}
	return r.writeItems(ctx, aggregate)
}

// Update bumps the cart version and replaces its items.
func (r *GormCartRepository) Update(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.CustomerID()
	result := r.db.WithContext(ctx).
		Model(&CartDTO{}).
		Where("customer_id = ? AND version = ?", id.Bytes(), aggregate.Version()).
		Update("version", aggregate.Version()+1)
	if err := pgutil.CheckSwap(entity, id, result); err != nil {
		return err
	}
	aggregate.IncrementVersion()

	if err := r.db.WithContext(ctx).Where("customer_id = ?", id.Bytes()).Delete(&ItemDTO{}).Error; err != nil {
		return pgutil.TranslateError(entity, id, err)
	}
	return r.writeItems(ctx, aggregate)
}

func (r *GormCartRepository) writeItems(ctx context.Context, aggregate *cart.Cart) error {
	items := itemsFromDomain(aggregate)
	if len(items) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return pgutil.TranslateError(entity, aggregate.CustomerID(), err)
	}
	return nil
}
