package wallet

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// PayoutStatus is the state of a withdrawal request.
//
//	PENDING ──> APPROVED ──> TRANSFERRED
//	   │
//	   └──────> REJECTED
//
// REJECTED and TRANSFERRED are terminal.
type PayoutStatus string

const (
	PayoutPending     PayoutStatus = "PENDING"
	PayoutApproved    PayoutStatus = "APPROVED"
	PayoutRejected    PayoutStatus = "REJECTED"
	PayoutTransferred PayoutStatus = "TRANSFERRED"
)

var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutPending:     {PayoutApproved, PayoutRejected},
	PayoutApproved:    {PayoutTransferred},
	PayoutRejected:    {},
	PayoutTransferred: {},
}

func ParsePayoutStatus(s string) (PayoutStatus, error) {
	status := PayoutStatus(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := payoutTransitions[status]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("payout status", fmt.Errorf("%q is not a payout status", s))
	}
	return status, nil
}

func (s PayoutStatus) IsTerminal() bool {
	return s == PayoutRejected || s == PayoutTransferred
}

func (s PayoutStatus) canMoveTo(next PayoutStatus) bool {
	for _, allowed := range payoutTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

var (
	ErrPayoutIsNotConstructed = errors.New("payout request must be created via NewPayoutRequest or RestorePayoutRequest")
	ErrRejectReasonRequired   = errs.NewValueIsRequiredError("reject reason")
)

// InvalidPayoutTransitionError is returned for a move the payout state machine forbids.
type InvalidPayoutTransitionError struct {
	PayoutID  kernel.UUID
	Current   PayoutStatus
	Requested PayoutStatus
}

func (e *InvalidPayoutTransitionError) Error() string {
	return fmt.Sprintf("%s: payout %s cannot move from %s to %s",
		errs.ErrInvalidState, e.PayoutID, e.Current, e.Requested)
}

func (e *InvalidPayoutTransitionError) Unwrap() error {
	return errs.ErrInvalidState
}

// PayoutActorNotPermittedError is returned when someone outside the back office decides a payout.
type PayoutActorNotPermittedError struct {
	Actor kernel.Actor
}

func (e *PayoutActorNotPermittedError) Error() string {
	return fmt.Sprintf("%s: %s may not decide payouts", errs.ErrInvalidState, e.Actor)
}

func (e *PayoutActorNotPermittedError) Unwrap() error {
	return errs.ErrInvalidState
}

// BankAccount is the payout destination.
type BankAccount struct {
	BankName      string
	AccountNumber string
	AccountHolder string
}

func NewBankAccount(bankName, accountNumber, accountHolder string) (BankAccount, error) {
	b := BankAccount{
		BankName:      strings.TrimSpace(bankName),
		AccountNumber: strings.TrimSpace(accountNumber),
		AccountHolder: strings.TrimSpace(accountHolder),
	}
	var errList []error
	if b.BankName == "" {
		errList = append(errList, errs.NewValueIsRequiredError("bank name"))
	}
	if b.AccountNumber == "" {
		errList = append(errList, errs.NewValueIsRequiredError("account number"))
	}
	if b.AccountHolder == "" {
		errList = append(errList, errs.NewValueIsRequiredError("account holder"))
	}
	if err := errors.Join(errList...); err != nil {
		return BankAccount{}, err
	}
	return b, nil
}

// Decision records who moved a payout and when.
type Decision struct {
	ActorID kernel.UUID
	Role    kernel.Role
	At      time.Time
}

// PayoutRequest is a withdrawal whose amount was debited from the wallet when it was requested.
type PayoutRequest struct {
	kernel.EventRecorder

	id           kernel.UUID
	walletID     kernel.UUID
	userID       kernel.UUID
	walletType   Type
	amount       kernel.Money
	bank         BankAccount
	status       PayoutStatus
	requestedAt  time.Time
	approved     *Decision
	rejected     *Decision
	transferred  *Decision
	rejectReason string
	version      int64

	isConstructed bool
}

// NewPayoutRequest creates a PENDING request for amount out of w.
// Escrowing the amount (the debit) is the caller's job, in the same transaction.
func NewPayoutRequest(
	id kernel.UUID, w *Wallet, amount kernel.Money, minAmount kernel.Money, bank BankAccount, now time.Time,
) (*PayoutRequest, error) {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := w.Validate(); err != nil {
		errList = append(errList, err)
	}
	if amount.IsZero() || amount.LessThan(minAmount) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("payout amount", amount.Amount(), minAmount.Amount(), "balance"))
	}
	if _, err := NewBankAccount(bank.BankName, bank.AccountNumber, bank.AccountHolder); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	p := &PayoutRequest{
		id:            id,
		walletID:      w.ID(),
		userID:        w.UserID(),
		walletType:    w.Type(),
		amount:        amount,
		bank:          bank,
		status:        PayoutPending,
		requestedAt:   now,
		isConstructed: true,
	}
	p.Record(PayoutStatusChangedEvent{
		PayoutID: id, UserID: p.userID, To: PayoutPending, Amount: amount.Amount(), At: now,
	})
	return p, nil
}

// PayoutParams is the persisted state of a payout request.
type PayoutParams struct {
	ID           kernel.UUID
	WalletID     kernel.UUID
	UserID       kernel.UUID
	WalletType   Type
	Amount       kernel.Money
	Bank         BankAccount
	Status       PayoutStatus
	RequestedAt  time.Time
	Approved     *Decision
	Rejected     *Decision
	Transferred  *Decision
	RejectReason string
	Version      int64
}

func RestorePayoutRequest(p PayoutParams) (*PayoutRequest, error) {
	if err := errors.Join(p.ID.Validate(), p.WalletID.Validate(), p.UserID.Validate(), p.WalletType.Validate()); err != nil {
		return nil, err
	}
	if _, ok := payoutTransitions[p.Status]; !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause("payout status", fmt.Errorf("%q", p.Status))
	}
	return &PayoutRequest{
		id:            p.ID,
		walletID:      p.WalletID,
		userID:        p.UserID,
		walletType:    p.WalletType,
		amount:        p.Amount,
		bank:          p.Bank,
		status:        p.Status,
		requestedAt:   p.RequestedAt,
		approved:      p.Approved,
		rejected:      p.Rejected,
		transferred:   p.Transferred,
		rejectReason:  p.RejectReason,
		version:       p.Version,
		isConstructed: true,
	}, nil
}

func (p *PayoutRequest) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPayoutIsNotConstructed
	}
	return nil
}

func (p *PayoutRequest) ID() kernel.UUID        { return p.id }
func (p *PayoutRequest) WalletID() kernel.UUID  { return p.walletID }
func (p *PayoutRequest) UserID() kernel.UUID    { return p.userID }
func (p *PayoutRequest) WalletType() Type       { return p.walletType }
func (p *PayoutRequest) Amount() kernel.Money   { return p.amount }
func (p *PayoutRequest) Bank() BankAccount      { return p.bank }
func (p *PayoutRequest) Status() PayoutStatus   { return p.status }
func (p *PayoutRequest) RequestedAt() time.Time { return p.requestedAt }
func (p *PayoutRequest) Approved() *Decision    { return p.approved }
func (p *PayoutRequest) Rejected() *Decision    { return p.rejected }
func (p *PayoutRequest) Transferred() *Decision { return p.transferred }
func (p *PayoutRequest) RejectReason() string   { return p.rejectReason }
func (p *PayoutRequest) Version() int64         { return p.version }
func (p *PayoutRequest) IncrementVersion()      { p.version++ }

// Approve moves PENDING to APPROVED.
func (p *PayoutRequest) Approve(actor kernel.Actor, now time.Time) error {
	if err := p.move(actor, PayoutApproved, now); err != nil {
		return err
	}
	p.approved = &Decision{ActorID: actor.ID(), Role: actor.Role(), At: now}
	return nil
}

// Reject moves PENDING to REJECTED. The caller reverses the escrow debit.
func (p *PayoutRequest) Reject(actor kernel.Actor, reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrRejectReasonRequired
	}
	if err := p.move(actor, PayoutRejected, now); err != nil {
		return err
	}
	p.rejected = &Decision{ActorID: actor.ID(), Role: actor.Role(), At: now}
	p.rejectReason = reason
	return nil
}

// MarkTransferred moves APPROVED to TRANSFERRED. It has no balance effect.
func (p *PayoutRequest) MarkTransferred(actor kernel.Actor, now time.Time) error {
	if err := p.move(actor, PayoutTransferred, now); err != nil {
		return err
	}
	p.transferred = &Decision{ActorID: actor.ID(), Role: actor.Role(), At: now}
	return nil
}

func (p *PayoutRequest) move(actor kernel.Actor, next PayoutStatus, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Role().IsBackOffice() {
		return &PayoutActorNotPermittedError{Actor: actor}
	}
	if !p.status.canMoveTo(next) {
		return &InvalidPayoutTransitionError{PayoutID: p.id, Current: p.status, Requested: next}
	}
	from := p.status
	p.status = next
	p.Record(PayoutStatusChangedEvent{
		PayoutID: p.id, UserID: p.userID, From: from, To: next, Amount: p.amount.Amount(), At: now,
	})
	return nil
}

const EventPayoutStatusChanged = "payout.status_changed"

// PayoutStatusChangedEvent is recorded when a payout is requested and on every decision.
// From is empty for a new request.
type PayoutStatusChangedEvent struct {
	PayoutID kernel.UUID
	UserID   kernel.UUID
	From     PayoutStatus
	To       PayoutStatus
	Amount   int64
	At       time.Time
}

func (e PayoutStatusChangedEvent) EventName() string        { return EventPayoutStatusChanged }
func (e PayoutStatusChangedEvent) AggregateID() kernel.UUID { return e.PayoutID }
func (e PayoutStatusChangedEvent) OccurredAt() time.Time    { return e.At }
