package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/wallet"
)

// WalletRepository defines the persistence contract for courier wallets and
// their ledger.
type WalletRepository interface {
	// GetAccount retrieves a courier's wallet account.
	// Returns errs.ObjectNotFoundError when the courier has no account yet.
	GetAccount(ctx context.Context, courierID kernel.UUID) (*wallet.Account, error)

	// AddAccount provisions a new wallet account.
	AddAccount(ctx context.Context, account *wallet.Account) error

	// UpdateAccount persists balance changes using optimistic concurrency.
	// Returns errs.VersionConflictError when the stored row was modified
	// since the account was loaded.
	UpdateAccount(ctx context.Context, account *wallet.Account) error

	// GetEntry retrieves the ledger entry for (deliveryID, entryType).
	// Returns errs.ObjectNotFoundError when no such entry exists. This is
	// the idempotency check for commission payouts.
	GetEntry(ctx context.Context, deliveryID kernel.UUID,
		entryType wallet.EntryType) (*wallet.LedgerEntry, error)

	// AddEntry appends a ledger entry. The storage enforces uniqueness of
	// (deliveryID, entryType).
	AddEntry(ctx context.Context, entry *wallet.LedgerEntry) error
}
