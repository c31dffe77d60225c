package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/voucher"
	"marketplace/internal/pkg/guard"
)

var ErrCreateVoucherCommandIsNotConstructed = errors.New(
	"CreateVoucherCommand must be created via NewCreateVoucherCommand constructor",
)

// CreateVoucherCommand registers a voucher for a shop on behalf of its owner.
// Params.ID is generated by the caller; usage counters and flags are ignored.
type CreateVoucherCommand struct {
	owner  kernel.Actor
	params voucher.Params

	guard guard.ConstructorGuard
}

// NewCreateVoucherCommand validates the voucher definition up front so a malformed
// voucher never reaches a transaction.
func NewCreateVoucherCommand(owner kernel.Actor, params voucher.Params) (CreateVoucherCommand, error) {
	if err := owner.Validate(); err != nil {
		return CreateVoucherCommand{}, err
	}
	if _, err := voucher.NewVoucher(params); err != nil {
		return CreateVoucherCommand{}, err
	}

	return CreateVoucherCommand{
		owner:  owner,
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CreateVoucherCommand) Validate() error {
	return c.guard.Validate(ErrCreateVoucherCommandIsNotConstructed)
}

func (c CreateVoucherCommand) Owner() kernel.Actor    { return c.owner }
func (c CreateVoucherCommand) Params() voucher.Params { return c.params }
