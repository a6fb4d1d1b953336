package walletrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/wallet"
	"fulfillment/internal/pkg/errs"
)

// GormWalletRepository implements WalletRepository using GORM.
type GormWalletRepository struct {
	db *gorm.DB
}

// NewGormWalletRepository creates a new GORM wallet repository.
func NewGormWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

// GetAccount retrieves a courier's wallet account.
func (r *GormWalletRepository) GetAccount(ctx context.Context,
	courierID kernel.UUID) (*wallet.Account, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dto AccountDTO
	if err := r.db.WithContext(ctx).First(&dto, "courier_id = ?", courierID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("wallet account", courierID.String())
		}
		return nil, err
	}

	return accountToDomain(dto)
}

// AddAccount provisions a new wallet account.
func (r *GormWalletRepository) AddAccount(ctx context.Context, account *wallet.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	dto := accountFromDomain(account)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// UpdateAccount persists balance changes using optimistic concurrency. The
// row is matched on both courier id and the version the account was loaded
// with; zero affected rows means a concurrent writer got there first.
func (r *GormWalletRepository) UpdateAccount(ctx context.Context, account *wallet.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	dto := accountFromDomain(account)
	dto.Version = account.Version() + 1

	result := r.db.WithContext(ctx).Model(&AccountDTO{}).
		Where("courier_id = ? AND version = ?", dto.CourierID, account.Version()).
		Updates(map[string]any{
			"balance_cents":        dto.BalanceCents,
			"total_earnings_cents": dto.TotalEarningsCents,
			"version":              dto.Version,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionConflictError("wallet account", account.CourierID().String())
	}

	// Keep the in-memory account at the version the row now carries.
	account.AdvanceVersion()

	return nil
}

// GetEntry retrieves the ledger entry for (deliveryID, entryType).
func (r *GormWalletRepository) GetEntry(ctx context.Context, deliveryID kernel.UUID,
	entryType wallet.EntryType) (*wallet.LedgerEntry, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}
	if err := entryType.Validate(); err != nil {
		return nil, err
	}

	var dto LedgerEntryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "delivery_id = ? AND entry_type = ?",
			deliveryID.Bytes(), int(entryType)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ledger entry", deliveryID.String())
		}
		return nil, err
	}

	return entryToDomain(dto)
}

// AddEntry appends a ledger entry. The unique key on (delivery_id, entry_type)
// backs the idempotency of commission payouts at the storage level.
func (r *GormWalletRepository) AddEntry(ctx context.Context, entry *wallet.LedgerEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := entryFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}
