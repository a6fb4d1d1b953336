// Package wallet holds the courier earnings model. An Account accumulates a
// courier's balance and lifetime earnings, and every credit leaves a
// LedgerEntry behind. The ledger is the idempotency record for commission
// payouts: one DELIVERY_COMMISSION entry per delivery, enforced by the
// persistence layer with a unique key on (delivery, entry type).
package wallet
