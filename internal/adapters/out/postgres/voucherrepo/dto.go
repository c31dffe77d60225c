// Package voucherrepo persists vouchers and their usage rows.
package voucherrepo

import (
	"time"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/voucher"

	"github.com/google/uuid"
)

type VoucherDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShopID            uuid.UUID `gorm:"type:uuid"`
	Code              string
	DiscountType      string
	Value             int64
	MaxDiscount       *int64
	MinOrderAmount    int64
	UsageLimit        int
	UsageLimitPerUser int
	CurrentUsage      int
	ValidFrom         time.Time
	ValidTo           time.Time
	Active            bool
	Deleted           bool
	Version           int64
}

func (VoucherDTO) TableName() string {
	return "vouchers"
}

// UsageDTO is keyed by voucher.UsageKey, so a replayed apply hits the same row.
type UsageDTO struct {
	Key       string    `gorm:"primaryKey"`
	VoucherID uuid.UUID `gorm:"type:uuid"`
	UserID    uuid.UUID `gorm:"type:uuid"`
	OrderID   uuid.UUID `gorm:"type:uuid"`
	Discount  int64
	UsedAt    time.Time
}

func (UsageDTO) TableName() string {
	return "voucher_usages"
}

func fromDomain(v *voucher.Voucher) VoucherDTO {
	var maxDiscount *int64
	if m := v.MaxDiscount(); m != nil {
		amount := m.Amount()
		maxDiscount = &amount
	}

	return VoucherDTO{
		ID:                v.ID().Bytes(),
		ShopID:            v.ShopID().Bytes(),
		Code:              v.Code(),
		DiscountType:      string(v.DiscountType()),
		Value:             v.Value(),
		MaxDiscount:       maxDiscount,
		MinOrderAmount:    v.MinOrderAmount().Amount(),
		UsageLimit:        v.UsageLimit(),
		UsageLimitPerUser: v.UsageLimitPerUser(),
		CurrentUsage:      v.CurrentUsage(),
		ValidFrom:         v.ValidFrom(),
		ValidTo:           v.ValidTo(),
		Active:            v.IsActive(),
		Deleted:           v.IsDeleted(),
		Version:           v.Version(),
	}
}

func toDomain(dto VoucherDTO) (*voucher.Voucher, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}
	discountType, err := voucher.ParseDiscountType(dto.DiscountType)
	if err != nil {
		return nil, err
	}
	minOrder, err := kernel.NewMoney(dto.MinOrderAmount)
	if err != nil {
		return nil, err
	}

	var maxDiscount *kernel.Money
	if dto.MaxDiscount != nil {
		m, maxErr := kernel.NewMoney(*dto.MaxDiscount)
		if maxErr != nil {
			return nil, maxErr
		}
		maxDiscount = &m
	}

	return voucher.RestoreVoucher(voucher.Params{
		ID:                id,
		ShopID:            shopID,
		Code:              dto.Code,
		DiscountType:      discountType,
		Value:             dto.Value,
		MaxDiscount:       maxDiscount,
		MinOrderAmount:    minOrder,
		UsageLimit:        dto.UsageLimit,
		UsageLimitPerUser: dto.UsageLimitPerUser,
		CurrentUsage:      dto.CurrentUsage,
		ValidFrom:         pgutil.UTC(dto.ValidFrom),
		ValidTo:           pgutil.UTC(dto.ValidTo),
		Active:            dto.Active,
		Deleted:           dto.Deleted,
		Version:           dto.Version,
	})
}

func usageFromDomain(u *voucher.Usage) UsageDTO {
	return UsageDTO{
		Key:       u.Key(),
		VoucherID: u.VoucherID().Bytes(),
		UserID:    u.UserID().Bytes(),
		OrderID:   u.OrderID().Bytes(),
		Discount:  u.Discount().Amount(),
		UsedAt:    u.UsedAt(),
	}
}

func usageToDomain(dto UsageDTO) (*voucher.Usage, error) {
	voucherID, err := kernel.UUIDFromBytes(dto.VoucherID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewMoney(dto.Discount)
	if err != nil {
		return nil, err
	}
	return voucher.NewUsage(voucherID, userID, orderID, discount, pgutil.UTC(dto.UsedAt))
}
