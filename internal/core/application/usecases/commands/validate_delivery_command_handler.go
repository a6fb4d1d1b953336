package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/domain/model/wallet"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ValidateDeliveryCommandHandler handles the client validation checkpoint.
// An accepted delivery becomes Delivered and earns the courier a commission
// credit; a rejected one becomes Failed. The final status, its tracking
// event and the payout commit as one transaction, and the payout is
// idempotent: a delivery pays its commission at most once no matter how
// often the accept path is retried.
type ValidateDeliveryCommandHandler struct {
	uowFactory ValidationUoWFactory
	policy     services.AccessPolicy
	notifier   ports.Notifier
}

// NewValidateDeliveryCommandHandler creates a handler for client validation
// operations.
func NewValidateDeliveryCommandHandler(uowFactory ValidationUoWFactory,
	policy services.AccessPolicy, notifier ports.Notifier,
) ValidateDeliveryCommandHandler {
	return ValidateDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		notifier:   notifier,
	}
}

// Handle processes the validation command and returns the finalized
// delivery.
func (h *ValidateDeliveryCommandHandler) Handle(ctx context.Context,
	cmd ValidateDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.AuthorizeValidation(cmd.Actor(), aggregate); err != nil {
		return nil, err
	}

	if err = aggregate.Finalize(cmd.Validated(), cmd.Rating(), cmd.Review(),
		cmd.Issues(), now); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	event, err := tracking.NewEvent(aggregate.ID(), aggregate.Status(), nil,
		h.trackingMessage(cmd), now)
	if err != nil {
		return nil, err
	}

	if err = uow.TrackingRepository().Add(ctx, event); err != nil {
		return nil, err
	}

	var credited kernel.Money
	if cmd.Validated() {
		if credited, err = h.creditCommission(ctx, uow, aggregate, now); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifyCourier(ctx, aggregate, cmd, credited)

	return aggregate, nil
}

func (h *ValidateDeliveryCommandHandler) trackingMessage(cmd ValidateDeliveryCommand) string {
	if cmd.Validated() {
		return statusMessage(delivery.StatusDelivered, "confirmed by client")
	}

	notes := "rejected by client"
	for _, summary := range cmd.Issues() {
		notes += "; " + summary.String()
	}
	return statusMessage(delivery.StatusFailed, notes)
}

// creditCommission pays the courier's cut for an accepted delivery within
// the open transaction. The ledger entry keyed by (delivery, entry type) is
// the idempotency record: when it already exists the wallet is left
// untouched and the existing amount is reported.
func (h *ValidateDeliveryCommandHandler) creditCommission(ctx context.Context,
	uow ValidationUoW, aggregate *delivery.Delivery, now time.Time,
) (kernel.Money, error) {
	if aggregate.CourierID() == nil {
		return kernel.Money{}, errs.NewValueIsRequiredError("courierID")
	}
	courierID := *aggregate.CourierID()

	walletRepo := uow.WalletRepository()

	existing, err := walletRepo.GetEntry(ctx, aggregate.ID(),
		wallet.EntryTypeDeliveryCommission)
	if err == nil {
		return existing.Amount(), nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.Money{}, err
	}

	account, err := walletRepo.GetAccount(ctx, courierID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		if account, err = wallet.NewAccount(courierID); err != nil {
			return kernel.Money{}, err
		}
		if err = walletRepo.AddAccount(ctx, account); err != nil {
			return kernel.Money{}, err
		}
	} else if err != nil {
		return kernel.Money{}, err
	}

	amount := aggregate.CommissionAmount()
	if err = account.Credit(amount); err != nil {
		return kernel.Money{}, err
	}
	if err = walletRepo.UpdateAccount(ctx, account); err != nil {
		return kernel.Money{}, err
	}

	entry, err := wallet.NewLedgerEntry(aggregate.ID(), courierID, amount,
		wallet.EntryTypeDeliveryCommission, now)
	if err != nil {
		return kernel.Money{}, err
	}
	if err = walletRepo.AddEntry(ctx, entry); err != nil {
		return kernel.Money{}, err
	}

	return amount, nil
}

// notifyCourier reports the verdict to the courier after the commit.
func (h *ValidateDeliveryCommandHandler) notifyCourier(ctx context.Context,
	aggregate *delivery.Delivery, cmd ValidateDeliveryCommand, credited kernel.Money) {
	if aggregate.CourierID() == nil {
		return
	}

	notification := ports.Notification{
		RecipientID: *aggregate.CourierID(),
		DeliveryID:  aggregate.ID(),
	}

	if cmd.Validated() {
		notification.Kind = ports.NotificationKindValidationAccepted
		notification.Message = fmt.Sprintf(
			"delivery confirmed by client, %s credited to your wallet", credited)
		notification.Payload = map[string]any{
			"creditedCents": credited.Cents(),
		}
	} else {
		issues := make([]string, 0, len(cmd.Issues()))
		for _, summary := range cmd.Issues() {
			issues = append(issues, summary.String())
		}
		notification.Kind = ports.NotificationKindValidationRejected
		notification.Message = "delivery rejected by client"
		notification.Payload = map[string]any{
			"issues": issues,
		}
	}

	_ = h.notifier.Notify(ctx, notification)
}
