package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FindLedgerDriftQueryHandler struct {
	db *gorm.DB
}

func NewFindLedgerDriftQueryHandler(db *gorm.DB) FindLedgerDriftQueryHandler {
	return FindLedgerDriftQueryHandler{db: db}
}

func (h FindLedgerDriftQueryHandler) Handle(ctx context.Context, query FindLedgerDriftQuery) ([]LedgerDrift, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt, args, err := psql.
		Select("w.id", "w.user_id", "w.type", "w.balance", "COALESCE(SUM(e.amount), 0)").
		From("wallets w").
		LeftJoin("wallet_ledger_entries e ON e.wallet_id = w.id").
		GroupBy("w.id", "w.user_id", "w.type", "w.balance").
		Having("w.balance <> COALESCE(SUM(e.amount), 0)").
		OrderBy("w.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drifts := make([]LedgerDrift, 0)
	for rows.Next() {
		var (
			drift            LedgerDrift
			walletID, userID uuid.UUID
			walletType       string
		)
		if err = rows.Scan(&walletID, &userID, &walletType, &drift.Balance, &drift.LedgerSum); err != nil {
			return nil, err
		}
		if drift.WalletID, err = kernel.UUIDFromBytes(walletID[:]); err != nil {
			return nil, err
		}
		if drift.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
			return nil, err
		}
		if drift.Type, err = wallet.ParseType(walletType); err != nil {
			return nil, err
		}
		drifts = append(drifts, drift)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return drifts, nil
}
