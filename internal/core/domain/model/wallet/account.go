package wallet

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Account is a courier's wallet. Balance is the spendable amount,
// totalEarnings is the lifetime sum of all credits and never decreases.
type Account struct {
	courierID     kernel.UUID
	balance       kernel.Money
	totalEarnings kernel.Money
	version       int64

	isConstructed bool
}

// NewAccount provisions an empty wallet for a courier.
func NewAccount(courierID kernel.UUID) (*Account, error) {
	if err := courierID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredError("courierID")
	}

	return &Account{
		courierID:     courierID,
		version:       1,
		isConstructed: true,
	}, nil
}

// RestoreAccount reconstructs an Account from persisted state.
func RestoreAccount(courierID kernel.UUID, balance, totalEarnings kernel.Money,
	version int64) *Account {
	return &Account{
		courierID:     courierID,
		balance:       balance,
		totalEarnings: totalEarnings,
		version:       version,
		isConstructed: true,
	}
}

// ErrAccountIsNotConstructed is returned when an Account was created
// bypassing its constructor.
var ErrAccountIsNotConstructed = errs.NewValueIsRequiredError(
	"account must be created via NewAccount or RestoreAccount")

// Validate checks if the Account is correctly constructed.
func (a *Account) Validate() error {
	if !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

// CourierID returns the owning courier's identifier.
func (a *Account) CourierID() kernel.UUID {
	return a.courierID
}

// Balance returns the current spendable balance.
func (a *Account) Balance() kernel.Money {
	return a.balance
}

// TotalEarnings returns the lifetime sum of all credits.
func (a *Account) TotalEarnings() kernel.Money {
	return a.totalEarnings
}

// Version returns the optimistic concurrency version.
func (a *Account) Version() int64 {
	return a.version
}

// AdvanceVersion moves the account to the next concurrency version.
// Repositories call it after a successful write so the in-memory account
// matches the persisted row.
func (a *Account) AdvanceVersion() {
	a.version++
}

// Credit adds amount to both the balance and the lifetime earnings.
// Zero amounts are rejected so that every credit maps to a ledger entry
// with a meaningful value.
func (a *Account) Credit(amount kernel.Money) error {
	if amount.IsZero() {
		return errs.NewValueIsRequiredError("amount")
	}
	a.balance = a.balance.Add(amount)
	a.totalEarnings = a.totalEarnings.Add(amount)
	return nil
}
