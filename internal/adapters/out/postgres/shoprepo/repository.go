// Package shoprepo stores the seller records checkout reads.
package shoprepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/shop"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const entity = "shop"

type ShopDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid"`
	Name    string
	ShipFee int64
	Active  bool
}

func (ShopDTO) TableName() string {
	return "shops"
}

type GormShopRepository struct {
	db *gorm.DB
}

func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

func (r *GormShopRepository) Add(ctx context.Context, aggregate *shop.Shop) error {
	dto := ShopDTO{
		ID:      aggregate.ID().Bytes(),
		OwnerID: aggregate.OwnerID().Bytes(),
		Name:    aggregate.Name(),
		ShipFee: aggregate.ShipFee().Amount(),
		Active:  aggregate.IsActive(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.TranslateError(entity, aggregate.ID(), err)
	}
	return nil
}

func (r *GormShopRepository) Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShopDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.NotFound(entity, id.String(), err)
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	shipFee, err := kernel.NewMoney(dto.ShipFee)
	if err != nil {
		return nil, err
	}
	return shop.NewShop(id, ownerID, dto.Name, shipFee, dto.Active)
}
