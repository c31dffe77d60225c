// Package cartrepo persists carts: one carts row per customer plus its cart_items.
package cartrepo

import (
	"time"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CartDTO struct {
	CustomerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Version    int64
}

func (CartDTO) TableName() string {
	return "carts"
}

type ItemDTO struct {
	CustomerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int
	ShopID     uuid.UUID `gorm:"type:uuid"`
	Name       string
	UnitPrice  int64
	ImageURL   string
	Quantity   int
	AddedAt    time.Time
}

func (ItemDTO) TableName() string {
	return "cart_items"
}

func itemsFromDomain(c *cart.Cart) []ItemDTO {
	items := make([]ItemDTO, 0, len(c.Items()))
	for i, item := range c.Items() {
		items = append(items, ItemDTO{
			CustomerID: c.CustomerID().Bytes(),
			ProductID:  item.ProductID.Bytes(),
			Position:   i,
			ShopID:     item.ShopID.Bytes(),
			Name:       item.Name,
			UnitPrice:  item.UnitPrice.Amount(),
			ImageURL:   item.ImageURL,
			Quantity:   item.Quantity,
			AddedAt:    item.AddedAt,
		})
	}
	return items
}

func toDomain(dto CartDTO, itemDTOs []ItemDTO) (*cart.Cart, error) {
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]cart.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		productID, productErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if productErr != nil {
			return nil, productErr
		}
		shopID, shopErr := kernel.UUIDFromBytes(itemDTO.ShopID[:])
		if shopErr != nil {
			return nil, shopErr
		}
		price, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		items = append(items, cart.Item{
			ProductID: productID,
			ShopID:    shopID,
			Name:      itemDTO.Name,
			UnitPrice: price,
			ImageURL:  itemDTO.ImageURL,
			Quantity:  itemDTO.Quantity,
			AddedAt:   pgutil.UTC(itemDTO.AddedAt),
		})
	}

	return cart.RestoreCart(customerID, items, dto.Version)
}
