package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/auth"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/domain/model/wallet"
	"fulfillment/internal/core/ports"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

type MockTrackingRepository struct{ mock.Mock }

func (m *MockTrackingRepository) Add(ctx context.Context, event *tracking.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockTrackingRepository) GetByDelivery(ctx context.Context, deliveryID kernel.UUID) ([]*tracking.Event, error) {
	args := m.Called(ctx, deliveryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tracking.Event), args.Error(1)
}

func (m *MockTrackingRepository) GetLast(ctx context.Context, deliveryID kernel.UUID) (*tracking.Event, error) {
	args := m.Called(ctx, deliveryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Event), args.Error(1)
}

type MockIssueRepository struct{ mock.Mock }

func (m *MockIssueRepository) Add(ctx context.Context, i *issue.Issue) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockIssueRepository) GetByDelivery(ctx context.Context, deliveryID kernel.UUID) ([]*issue.Issue, error) {
	args := m.Called(ctx, deliveryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*issue.Issue), args.Error(1)
}

type MockWalletRepository struct{ mock.Mock }

func (m *MockWalletRepository) GetAccount(ctx context.Context, courierID kernel.UUID) (*wallet.Account, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Account), args.Error(1)
}

func (m *MockWalletRepository) AddAccount(ctx context.Context, account *wallet.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateAccount(ctx context.Context, account *wallet.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockWalletRepository) GetEntry(ctx context.Context, deliveryID kernel.UUID,
	entryType wallet.EntryType) (*wallet.LedgerEntry, error) {
	args := m.Called(ctx, deliveryID, entryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.LedgerEntry), args.Error(1)
}

func (m *MockWalletRepository) AddEntry(ctx context.Context, entry *wallet.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockUoW satisfies every command-level unit of work interface so one type
// serves all handler tests.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) TrackingRepository() ports.TrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingRepository)
}

func (m *MockUoW) IssueRepository() ports.IssueRepository {
	args := m.Called()
	return args.Get(0).(ports.IssueRepository)
}

func (m *MockUoW) WalletRepository() ports.WalletRepository {
	args := m.Called()
	return args.Get(0).(ports.WalletRepository)
}

type MockLifecycleUoWFactory struct{ mock.Mock }

func (m *MockLifecycleUoWFactory) Create() commands.LifecycleUoW {
	args := m.Called()
	return args.Get(0).(commands.LifecycleUoW)
}

type MockValidationUoWFactory struct{ mock.Mock }

func (m *MockValidationUoWFactory) Create() commands.ValidationUoW {
	args := m.Called()
	return args.Get(0).(commands.ValidationUoW)
}

type MockIssueUoWFactory struct{ mock.Mock }

func (m *MockIssueUoWFactory) Create() commands.IssueUoW {
	args := m.Called()
	return args.Get(0).(commands.IssueUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, notification ports.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

// silentNotifier ignores every notification; for tests that don't care about
// the fan-out.
type silentNotifier struct{}

func (silentNotifier) Notify(context.Context, ports.Notification) error { return nil }

func newTestActor(t *testing.T, id kernel.UUID, role auth.Role) auth.Actor {
	t.Helper()
	actor, err := auth.NewActor(id, role)
	require.NoError(t, err)
	return actor
}

func mustMoney(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromCents(cents)
	require.NoError(t, err)
	return m
}

// newTestDelivery builds a delivery with a client, courier and merchant
// attached, advanced to the given status along the happy path.
func newTestDelivery(t *testing.T, status delivery.Status,
	clientID, courierID kernel.UUID) *delivery.Delivery {
	t.Helper()

	merchantID := kernel.NewUUID()
	d, err := delivery.NewDelivery(kernel.NewUUID(), clientID, &courierID,
		&merchantID, mustMoney(t, 5990))
	require.NoError(t, err)

	path := []delivery.Status{delivery.StatusAssigned, delivery.StatusPickedUp,
		delivery.StatusInTransit, delivery.StatusOutForDelivery, delivery.StatusDelivered}
	for _, next := range path {
		if d.Status() == status {
			break
		}
		require.NoError(t, d.ChangeStatus(next, time.Now().UTC()))
	}
	require.Equal(t, status, d.Status())

	return d
}
