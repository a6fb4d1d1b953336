// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within
	// a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// TrackingRepoFactory provides access to the tracking repository within
	// a transaction.
	TrackingRepoFactory interface {
		TrackingRepository() ports.TrackingRepository
	}

	// IssueRepoFactory provides access to the issue repository within a
	// transaction.
	IssueRepoFactory interface {
		IssueRepository() ports.IssueRepository
	}

	// WalletRepoFactory provides access to the wallet repository within a
	// transaction.
	WalletRepoFactory interface {
		WalletRepository() ports.WalletRepository
	}

	// LifecycleUoW manages transactions for plain status changes. Every
	// status mutation writes the delivery and its tracking event together.
	LifecycleUoW interface {
		TxManager
		DeliveryRepoFactory
		TrackingRepoFactory
	}

	// LifecycleUoWFactory creates new lifecycle unit of work instances.
	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}

	// ValidationUoW manages transactions for client validation. The final
	// status, its tracking event and the commission payout commit as one
	// unit.
	ValidationUoW interface {
		TxManager
		DeliveryRepoFactory
		TrackingRepoFactory
		WalletRepoFactory
	}

	// ValidationUoWFactory creates new validation unit of work instances.
	ValidationUoWFactory interface {
		Create() ValidationUoW
	}

	// IssueUoW manages transactions for issue reporting. The issue, its
	// tracking entry and any escalation to a failed delivery commit as one
	// unit.
	IssueUoW interface {
		TxManager
		DeliveryRepoFactory
		TrackingRepoFactory
		IssueRepoFactory
	}

	// IssueUoWFactory creates new issue unit of work instances.
	IssueUoWFactory interface {
		Create() IssueUoW
	}
)
