package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetWalletStatementQueryHandler struct {
	db *gorm.DB
}

func NewGetWalletStatementQueryHandler(db *gorm.DB) GetWalletStatementQueryHandler {
	return GetWalletStatementQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the user has no wallet of that type;
// wallets are created by their first credit.
func (h GetWalletStatementQueryHandler) Handle(
	ctx context.Context,
	query GetWalletStatementQuery,
) (*WalletStatement, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt, args, err := psql.
		Select(
			"w.id", "w.user_id", "w.balance", "w.total_earned", "w.total_withdrawn",
			"COALESCE((SELECT SUM(e.amount) FROM wallet_ledger_entries e WHERE e.wallet_id = w.id), 0)",
		).
		From("wallets w").
		Where(sq.Eq{"w.user_id": query.UserID().String(), "w.type": string(query.WalletType())}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		statement        = WalletStatement{Type: query.WalletType()}
		walletID, userID uuid.UUID
	)
	err = h.db.WithContext(ctx).Raw(stmt, args...).Row().Scan(
		&walletID, &userID, &statement.Balance, &statement.TotalEarned, &statement.TotalWithdrawn, &statement.LedgerSum,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("wallet", query.UserID().String()+"/"+string(query.WalletType()))
	}
	if err != nil {
		return nil, err
	}
	if statement.WalletID, err = kernel.UUIDFromBytes(walletID[:]); err != nil {
		return nil, err
	}
	if statement.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
		return nil, err
	}

	if statement.Entries, err = h.readEntries(ctx, walletID, query.Limit()); err != nil {
		return nil, err
	}
	return &statement, nil
}

func (h GetWalletStatementQueryHandler) readEntries(ctx context.Context, walletID uuid.UUID, limit int) ([]StatementEntry, error) {
	stmt, args, err := psql.
		Select("id", "kind", "amount", "balance_after", "order_id", "payout_id", "note", "created_at").
		From("wallet_ledger_entries").
		Where(sq.Eq{"wallet_id": walletID.String()}).
		OrderBy("seq DESC").
		Limit(uint64(limit)). //nolint:gosec // limit is validated by the constructor
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]StatementEntry, 0)
	for rows.Next() {
		var (
			entry             StatementEntry
			id                uuid.UUID
			kind              string
			orderID, payoutID uuid.NullUUID
		)
		err = rows.Scan(&id, &kind, &entry.Amount, &entry.BalanceAfter, &orderID, &payoutID, &entry.Note, &entry.CreatedAt)
		if err != nil {
			return nil, err
		}
		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if entry.Kind, err = wallet.ParseEntryKind(kind); err != nil {
			return nil, err
		}
		if entry.OrderID, err = nullableID(orderID); err != nil {
			return nil, err
		}
		if entry.PayoutID, err = nullableID(payoutID); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
