package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/auth"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

func TestUpdateDeliveryStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	aggregate := newTestDelivery(t, delivery.StatusAssigned, clientID, courierID)
	actor := newTestActor(t, courierID, auth.RoleCourier)

	cmd, err := commands.NewUpdateDeliveryStatusCommand(aggregate.ID(), actor,
		delivery.StatusPickedUp, nil, "")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	trackingRepo := new(MockTrackingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		deliveryRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		trackingRepo.On("Add", mock.Anything, mock.AnythingOfType("*tracking.Event")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory,
		services.NewAccessPolicy(), silentNotifier{})
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, delivery.StatusPickedUp, updated.Status())
	deliveryRepo.AssertExpectations(t)
	trackingRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_SelfAssignRecordsCourier(t *testing.T) {
	ctx := t.Context()
	price := mustMoney(t, 5990)
	aggregate, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(),
		nil, nil, price)
	require.NoError(t, err)

	courierID := kernel.NewUUID()
	actor := newTestActor(t, courierID, auth.RoleCourier)

	cmd, err := commands.NewUpdateDeliveryStatusCommand(aggregate.ID(), actor,
		delivery.StatusAssigned, nil, "")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	trackingRepo := new(MockTrackingRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	uow.On("TrackingRepository").Return(trackingRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	deliveryRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	deliveryRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	trackingRepo.On("Add", mock.Anything, mock.AnythingOfType("*tracking.Event")).Return(nil).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory,
		services.NewAccessPolicy(), silentNotifier{})
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, delivery.StatusAssigned, updated.Status())
	require.NotNil(t, updated.CourierID())
	assert.Equal(t, courierID, *updated.CourierID())

	// Having claimed the delivery, the courier may now progress it.
	assert.NoError(t, services.NewAccessPolicy().
		AuthorizeStatusChange(actor, updated, delivery.StatusPickedUp))
}

func TestUpdateDeliveryStatusCommandHandler_Handle_CourierCannotTakeOverAssigned(t *testing.T) {
	ctx := t.Context()
	aggregate := newTestDelivery(t, delivery.StatusAssigned,
		kernel.NewUUID(), kernel.NewUUID())
	rival := newTestActor(t, kernel.NewUUID(), auth.RoleCourier)

	cmd, err := commands.NewUpdateDeliveryStatusCommand(aggregate.ID(), rival,
		delivery.StatusAssigned, nil, "")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	deliveryRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory,
		services.NewAccessPolicy(), silentNotifier{})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_NotifiesClientOnDelivered(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	aggregate := newTestDelivery(t, delivery.StatusOutForDelivery, clientID, courierID)
	actor := newTestActor(t, courierID, auth.RoleCourier)

	cmd, err := commands.NewUpdateDeliveryStatusCommand(aggregate.ID(), actor,
		delivery.StatusDelivered, nil, "")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	trackingRepo := new(MockTrackingRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	uow.On("TrackingRepository").Return(trackingRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	deliveryRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	deliveryRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	trackingRepo.On("Add", mock.Anything, mock.AnythingOfType("*tracking.Event")).Return(nil).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Kind == ports.NotificationKindDelivered && n.RecipientID == clientID
	})).Return(nil).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory,
		services.NewAccessPolicy(), notifier)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, delivery.StatusDelivered, updated.Status())
	assert.NotNil(t, updated.ActualDeliveryDate())
	notifier.AssertExpectations(t)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_Forbidden(t *testing.T) {
	ctx := t.Context()
	aggregate := newTestDelivery(t, delivery.StatusAssigned,
		kernel.NewUUID(), kernel.NewUUID())
	stranger := newTestActor(t, kernel.NewUUID(), auth.RoleCourier)

	cmd, err := commands.NewUpdateDeliveryStatusCommand(aggregate.ID(), stranger,
		delivery.StatusPickedUp, nil, "")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	deliveryRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory,
		services.NewAccessPolicy(), silentNotifier{})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	assert.Equal(t, delivery.StatusAssigned, aggregate.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	aggregate := newTestDelivery(t, delivery.StatusAssigned,
		kernel.NewUUID(), courierID)
	actor := newTestActor(t, courierID, auth.RoleCourier)

	cmd, err := commands.NewUpdateDeliveryStatusCommand(aggregate.ID(), actor,
		delivery.StatusDelivered, nil, "")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	deliveryRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory,
		services.NewAccessPolicy(), silentNotifier{})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrStatusConflict)

	var conflict *errs.StatusConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "ASSIGNED", conflict.Current)
	assert.ElementsMatch(t, []string{"PICKED_UP", "CANCELLED"}, conflict.Allowed)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	deliveryID := kernel.NewUUID()
	actor := newTestActor(t, kernel.NewUUID(), auth.RoleAdmin)

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, actor,
		delivery.StatusCancelled, nil, "")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	deliveryRepo.On("Get", mock.Anything, deliveryID).
		Return(nil, errs.NewObjectNotFoundError("deliveryID", deliveryID)).Once()

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory,
		services.NewAccessPolicy(), silentNotifier{})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	actor := newTestActor(t, kernel.NewUUID(), auth.RoleAdmin)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(kernel.NewUUID(), actor,
		delivery.StatusCancelled, nil, "")
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockLifecycleUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory,
		services.NewAccessPolicy(), silentNotifier{})
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
}
