// Package walletrepo persists wallets, their append-only ledgers and payout requests.
package walletrepo

import (
	"time"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"

	"github.com/google/uuid"
)

type WalletDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid"`
	Type           string
	Balance        int64
	TotalEarned    int64
	TotalWithdrawn int64
	Version        int64
	CreatedAt      time.Time
}

func (WalletDTO) TableName() string {
	return "wallets"
}

// EntryDTO is a ledger row. Seq is assigned by the database and orders the ledger.
type EntryDTO struct {
	Seq           int64     `gorm:"->"`
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	WalletID      uuid.UUID `gorm:"type:uuid"`
	Kind          string
	Amount        int64
	BalanceBefore int64
	BalanceAfter  int64
	OrderID       *uuid.UUID `gorm:"type:uuid"`
	PayoutID      *uuid.UUID `gorm:"type:uuid"`
	Note          string
	CreatedAt     time.Time
}

func (EntryDTO) TableName() string {
	return "wallet_ledger_entries"
}

type PayoutDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	WalletID        uuid.UUID `gorm:"type:uuid"`
	UserID          uuid.UUID `gorm:"type:uuid"`
	WalletType      string
	Amount          int64
	BankName        string
	AccountNumber   string
	AccountHolder   string
	Status          string
	RequestedAt     time.Time
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedRole    *string
	ApprovedAt      *time.Time
	RejectedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectedRole    *string
	RejectedAt      *time.Time
	TransferredBy   *uuid.UUID `gorm:"type:uuid"`
	TransferredRole *string
	TransferredAt   *time.Time
	RejectReason    string
	Version         int64
}

func (PayoutDTO) TableName() string {
	return "payout_requests"
}

func walletFromDomain(w *wallet.Wallet) WalletDTO {
	return WalletDTO{
		ID:             w.ID().Bytes(),
		UserID:         w.UserID().Bytes(),
		Type:           string(w.Type()),
		Balance:        w.Balance(),
		TotalEarned:    w.TotalEarned(),
		TotalWithdrawn: w.TotalWithdrawn(),
		Version:        w.Version(),
		CreatedAt:      w.CreatedAt(),
	}
}

func walletToDomain(dto WalletDTO) (*wallet.Wallet, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	walletType, err := wallet.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}
	return wallet.RestoreWallet(wallet.Params{
		ID:             id,
		UserID:         userID,
		Type:           walletType,
		Balance:        dto.Balance,
		TotalEarned:    dto.TotalEarned,
		TotalWithdrawn: dto.TotalWithdrawn,
		Version:        dto.Version,
		CreatedAt:      pgutil.UTC(dto.CreatedAt),
	})
}

func entryFromDomain(e *wallet.LedgerEntry) EntryDTO {
	return EntryDTO{
		ID:            e.ID().Bytes(),
		WalletID:      e.WalletID().Bytes(),
		Kind:          string(e.Kind()),
		Amount:        e.Amount(),
		BalanceBefore: e.BalanceBefore(),
		BalanceAfter:  e.BalanceAfter(),
		OrderID:       kernel.BytesPtr(e.OrderID()),
		PayoutID:      kernel.BytesPtr(e.PayoutID()),
		Note:          e.Note(),
		CreatedAt:     e.CreatedAt(),
	}
}

func entryToDomain(dto EntryDTO) (*wallet.LedgerEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	walletID, err := kernel.UUIDFromBytes(dto.WalletID[:])
	if err != nil {
		return nil, err
	}
	kind, err := wallet.ParseEntryKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDPtrFromBytes(dto.OrderID)
	if err != nil {
		return nil, err
	}
	payoutID, err := kernel.UUIDPtrFromBytes(dto.PayoutID)
	if err != nil {
		return nil, err
	}
	return wallet.RestoreLedgerEntry(wallet.EntryParams{
		ID:            id,
		WalletID:      walletID,
		Kind:          kind,
		Amount:        dto.Amount,
		BalanceBefore: dto.BalanceBefore,
		BalanceAfter:  dto.BalanceAfter,
		OrderID:       orderID,
		PayoutID:      payoutID,
		Note:          dto.Note,
		CreatedAt:     pgutil.UTC(dto.CreatedAt),
	}), nil
}

func payoutFromDomain(p *wallet.PayoutRequest) PayoutDTO {
	dto := PayoutDTO{
		ID:            p.ID().Bytes(),
		WalletID:      p.WalletID().Bytes(),
		UserID:        p.UserID().Bytes(),
		WalletType:    string(p.WalletType()),
		Amount:        p.Amount().Amount(),
		BankName:      p.Bank().BankName,
		AccountNumber: p.Bank().AccountNumber,
		AccountHolder: p.Bank().AccountHolder,
		Status:        string(p.Status()),
		RequestedAt:   p.RequestedAt(),
		RejectReason:  p.RejectReason(),
		Version:       p.Version(),
	}
	dto.ApprovedBy, dto.ApprovedRole, dto.ApprovedAt = decisionColumns(p.Approved())
	dto.RejectedBy, dto.RejectedRole, dto.RejectedAt = decisionColumns(p.Rejected())
	dto.TransferredBy, dto.TransferredRole, dto.TransferredAt = decisionColumns(p.Transferred())
	return dto
}

func decisionColumns(d *wallet.Decision) (*uuid.UUID, *string, *time.Time) {
	if d == nil {
		return nil, nil, nil
	}
	id := d.ActorID.Bytes()
	role := string(d.Role)
	at := d.At
	return &id, &role, &at
}

func decisionFromColumns(by *uuid.UUID, role *string, at *time.Time) (*wallet.Decision, error) {
	if by == nil || role == nil || at == nil {
		return nil, nil
	}
	actorID, err := kernel.UUIDFromBytes(by[:])
	if err != nil {
		return nil, err
	}
	parsed, err := kernel.ParseRole(*role)
	if err != nil {
		return nil, err
	}
	return &wallet.Decision{ActorID: actorID, Role: parsed, At: at.UTC()}, nil
}

func payoutToDomain(dto PayoutDTO) (*wallet.PayoutRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	walletID, err := kernel.UUIDFromBytes(dto.WalletID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	walletType, err := wallet.ParseType(dto.WalletType)
	if err != nil {
		return nil, err
	}
	status, err := wallet.ParsePayoutStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}
	approved, err := decisionFromColumns(dto.ApprovedBy, dto.ApprovedRole, dto.ApprovedAt)
	if err != nil {
		return nil, err
	}
	rejected, err := decisionFromColumns(dto.RejectedBy, dto.RejectedRole, dto.RejectedAt)
	if err != nil {
		return nil, err
	}
	transferred, err := decisionFromColumns(dto.TransferredBy, dto.TransferredRole, dto.TransferredAt)
	if err != nil {
		return nil, err
	}

	return wallet.RestorePayoutRequest(wallet.PayoutParams{
		ID:         id,
		WalletID:   walletID,
		UserID:     userID,
		WalletType: walletType,
		Amount:     amount,
		Bank: wallet.BankAccount{
			BankName:      dto.BankName,
			AccountNumber: dto.AccountNumber,
			AccountHolder: dto.AccountHolder,
		},
		Status:       status,
		RequestedAt:  pgutil.UTC(dto.RequestedAt),
		Approved:     approved,
		Rejected:     rejected,
		Transferred:  transferred,
		RejectReason: dto.RejectReason,
		Version:      dto.Version,
	})
}
