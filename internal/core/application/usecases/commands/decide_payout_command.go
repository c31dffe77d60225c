package commands

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrDecidePayoutCommandIsNotConstructed = errors.New(
	"DecidePayoutCommand must be created via NewDecidePayoutCommand constructor",
)

// PayoutDecision is a back-office action on a payout request.
type PayoutDecision string

const (
	DecisionApprove  PayoutDecision = "APPROVE"
	DecisionReject   PayoutDecision = "REJECT"
	DecisionTransfer PayoutDecision = "TRANSFER"
)

func ParsePayoutDecision(s string) (PayoutDecision, error) {
	d := PayoutDecision(strings.ToUpper(strings.TrimSpace(s)))
	switch d {
	case DecisionApprove, DecisionReject, DecisionTransfer:
		return d, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("payout decision", fmt.Errorf("%q is not a decision", s))
	}
}

// DecidePayoutCommand approves, rejects or marks a payout as transferred.
type DecidePayoutCommand struct {
	payoutID kernel.UUID
	actor    kernel.Actor
	decision PayoutDecision
	reason   string

	guard guard.ConstructorGuard
}

func NewDecidePayoutCommand(
	payoutID kernel.UUID, actor kernel.Actor, decision PayoutDecision, reason string,
) (DecidePayoutCommand, error) {
	var errList []error
	errList = append(errList, payoutID.Validate(), actor.Validate())
	if _, err := ParsePayoutDecision(string(decision)); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return DecidePayoutCommand{}, err
	}

	return DecidePayoutCommand{
		payoutID: payoutID,
		actor:    actor,
		decision: decision,
		reason:   strings.TrimSpace(reason),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c DecidePayoutCommand) Validate() error {
	return c.guard.Validate(ErrDecidePayoutCommandIsNotConstructed)
}

func (c DecidePayoutCommand) PayoutID() kernel.UUID    { return c.payoutID }
func (c DecidePayoutCommand) Actor() kernel.Actor      { return c.actor }
func (c DecidePayoutCommand) Decision() PayoutDecision { return c.decision }
func (c DecidePayoutCommand) Reason() string           { return c.reason }
