package voucher

import (
	"errors"

	"marketplace/internal/pkg/errs"
)

var (
	ErrVoucherIsNotConstructed = errors.New("voucher must be created via NewVoucher or RestoreVoucher")

	ErrInactive             = errs.NewBusinessRuleError("voucher is not active")
	ErrExpired              = errs.NewBusinessRuleError("voucher is expired")
	ErrNotYetValid          = errs.NewBusinessRuleError("voucher is not valid yet")
	ErrUsageLimitReached    = errs.NewBusinessRuleError("voucher usage limit reached")
	ErrPerUserLimitReached  = errs.NewBusinessRuleError("voucher per-user usage limit reached")
	ErrMinOrderNotMet       = errs.NewBusinessRuleError("order subtotal is below the voucher minimum")
	ErrShopMismatch         = errs.NewBusinessRuleError("voucher belongs to another shop")
	ErrUsageKeyIsIncomplete = errs.NewValueIsRequiredError("voucher usage key")
)
