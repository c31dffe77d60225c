package walletrepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"

	"gorm.io/gorm"
)

const entity = "wallet"

type GormWalletRepository struct {
	db *gorm.DB
}

func NewGormWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

func (r *GormWalletRepository) Get(ctx context.Context, userID kernel.UUID, walletType wallet.Type) (*wallet.Wallet, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto WalletDTO
	err := r.db.WithContext(ctx).First(&dto, "user_id = ? AND type = ?", userID.Bytes(), string(walletType)).Error
	if err != nil {
		return nil, pgutil.NotFound(entity, userID.String()+"/"+string(walletType), err)
	}
	return walletToDomain(dto)
}

// Add inserts a new wallet. Two transactions creating the same (user, type) wallet
// collide on the unique key; the loser sees a concurrent modification.
func (r *GormWalletRepository) Add(ctx context.Context, aggregate *wallet.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := walletFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.TranslateError(entity, aggregate.ID(), err)
	}
	return r.appendEntries(ctx, aggregate)
}

// Update writes the cached totals under a version check, then appends the new entries.
// The ledger is never updated in place.
func (r *GormWalletRepository) Update(ctx context.Context, aggregate *wallet.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&WalletDTO{}).
		Where("id = ? AND version = ?", aggregate.ID().Bytes(), aggregate.Version()).
		Updates(map[string]any{
			"balance":         aggregate.Balance(),
			"total_earned":    aggregate.TotalEarned(),
			"total_withdrawn": aggregate.TotalWithdrawn(),
			"version":         aggregate.Version() + 1,
		})
	if err := pgutil.CheckSwap(entity, aggregate.ID(), result); err != nil {
		return err
	}

	aggregate.IncrementVersion()
	return r.appendEntries(ctx, aggregate)
}

func (r *GormWalletRepository) ListEntries(ctx context.Context, walletID kernel.UUID) ([]*wallet.LedgerEntry, error) {
	var dtos []EntryDTO
	err := r.db.WithContext(ctx).Where("wallet_id = ?", walletID.Bytes()).Order("seq").Find(&dtos).Error
	if err != nil {
		return nil, pgutil.TranslateError(entity, walletID, err)
	}

	entries := make([]*wallet.LedgerEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := entryToDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *GormWalletRepository) appendEntries(ctx context.Context, aggregate *wallet.Wallet) error {
	entries := aggregate.PullNewEntries()
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, entryFromDomain(e))
	}
	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return pgutil.TranslateError(entity, aggregate.ID(), err)
	}
	return nil
}
