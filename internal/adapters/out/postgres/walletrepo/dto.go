// Package walletrepo provides data transfer objects and mapping functions for
// courier wallet persistence. The ledger table carries a unique key on
// (delivery_id, entry_type) so a delivery can pay its commission at most once
// regardless of concurrent retries.
package walletrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/wallet"
)

// AccountDTO represents the database structure for persisting wallet
// accounts. The version column drives optimistic concurrency control.
type AccountDTO struct {
	CourierID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	BalanceCents       int64
	TotalEarningsCents int64
	Version            int64
}

// TableName specifies the database table name for wallet accounts.
func (AccountDTO) TableName() string {
	return "wallet_accounts"
}

// LedgerEntryDTO represents the database structure for persisting ledger
// entries.
type LedgerEntryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_ledger_delivery_entry"`
	CourierID   uuid.UUID `gorm:"type:uuid;index"`
	AmountCents int64
	EntryType   int `gorm:"uniqueIndex:idx_ledger_delivery_entry"`
	Status      int
	CreatedAt   time.Time
}

// TableName specifies the database table name for ledger entries.
func (LedgerEntryDTO) TableName() string {
	return "ledger_entries"
}

// accountFromDomain converts a wallet account to its database representation.
func accountFromDomain(account *wallet.Account) AccountDTO {
	return AccountDTO{
		CourierID:          account.CourierID().Bytes(),
		BalanceCents:       account.Balance().Cents(),
		TotalEarningsCents: account.TotalEarnings().Cents(),
		Version:            account.Version(),
	}
}

// accountToDomain converts a database DTO to a wallet account.
func accountToDomain(dto AccountDTO) (*wallet.Account, error) {
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	balance, err := kernel.NewMoneyFromCents(dto.BalanceCents)
	if err != nil {
		return nil, err
	}

	totalEarnings, err := kernel.NewMoneyFromCents(dto.TotalEarningsCents)
	if err != nil {
		return nil, err
	}

	return wallet.RestoreAccount(courierID, balance, totalEarnings, dto.Version), nil
}

// entryFromDomain converts a ledger entry to its database representation.
func entryFromDomain(entry *wallet.LedgerEntry) LedgerEntryDTO {
	return LedgerEntryDTO{
		ID:          entry.ID().Bytes(),
		DeliveryID:  entry.DeliveryID().Bytes(),
		CourierID:   entry.CourierID().Bytes(),
		AmountCents: entry.Amount().Cents(),
		EntryType:   int(entry.EntryType()),
		Status:      int(entry.Status()),
		CreatedAt:   entry.CreatedAt(),
	}
}

// entryToDomain converts a database DTO to a ledger entry.
func entryToDomain(dto LedgerEntryDTO) (*wallet.LedgerEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoneyFromCents(dto.AmountCents)
	if err != nil {
		return nil, err
	}

	return wallet.RestoreLedgerEntry(id, deliveryID, courierID, amount,
		wallet.EntryType(dto.EntryType), wallet.EntryStatus(dto.Status),
		dto.CreatedAt), nil
}
