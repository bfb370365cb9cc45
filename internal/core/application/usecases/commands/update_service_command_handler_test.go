package commands_test

import (
	"testing"

	"labflow/internal/core/application/usecases/commands"
	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"
	"labflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateServiceCommand(t *testing.T) {
	orderID, serviceID, caller := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewUpdateServiceCommand(orderID, serviceID, caller, order.ServicePatch{})
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, serviceID, cmd.ServiceID())

	_, err = commands.NewUpdateServiceCommand(orderID, kernel.UUID{}, caller, order.ServicePatch{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	require.ErrorIs(t, commands.UpdateServiceCommand{}.Validate(), commands.ErrUpdateServiceCommandIsNotConstructed)
}

func TestUpdateServiceCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	owner := kernel.NewUUID()
	isService := mock.AnythingOfType("*order.Service")

	t.Run("patches only the given fields", func(t *testing.T) {
		// Given
		stored := newStoredOrder(t, owner)
		serviceID := stored.Services()[0].ID()
		repo := new(MockOrderRepository)
		factory, uow := orderUoW(repo)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			repo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
			repo.On("UpdateService", ctx, stored, isService).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		cmd, err := commands.NewUpdateServiceCommand(stored.ID(), serviceID, owner, order.ServicePatch{
			Status: ptr(order.ServiceDone),
		})
		require.NoError(t, err)

		// When
		h := commands.NewUpdateServiceCommandHandler(factory, fixedClock)
		updated, err := h.Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, serviceID, updated.ID())
		assert.Equal(t, "Panel A", updated.Name())
		assert.Equal(t, "120.00", updated.Value().String())
		assert.Equal(t, order.ServiceDone, updated.Status())
		assert.Equal(t, fixedNow, updated.UpdatedAt())
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("zero total is rejected", func(t *testing.T) {
		stored := newStoredOrder(t, owner)
		serviceID := stored.Services()[0].ID()
		repo := new(MockOrderRepository)
		factory, uow := orderUoW(repo)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		repo.On("Get", ctx, stored.ID()).Return(stored, nil).Once()
		cmd, err := commands.NewUpdateServiceCommand(stored.ID(), serviceID, owner, order.ServicePatch{
			Value: ptr(mustMoney(t, "0")),
		})
		require.NoError(t, err)

		h := commands.NewUpdateServiceCommandHandler(factory, fixedClock)
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), order.ErrTotalIsNotPositive.Error())
		assert.Equal(t, "120.00", stored.Total().String())
		repo.AssertNotCalled(t, "UpdateService", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown service is not found", func(t *testing.T) {
		stored := newStoredOrder(t, owner)
		repo := new(MockOrderRepository)
		factory, uow := orderUoW(repo)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		repo.On("Get", ctx, stored.ID()).Return(stored, nil).Once()
		cmd, err := commands.NewUpdateServiceCommand(stored.ID(), kernel.NewUUID(), owner, order.ServicePatch{
			Name: ptr("Panel Z"),
		})
		require.NoError(t, err)

		h := commands.NewUpdateServiceCommandHandler(factory, fixedClock)
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("foreign order is not found", func(t *testing.T) {
		stored := newStoredOrder(t, owner)
		serviceID := stored.Services()[0].ID()
		repo := new(MockOrderRepository)
		factory, uow := orderUoW(repo)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		repo.On("Get", ctx, stored.ID()).Return(stored, nil).Once()
		cmd, err := commands.NewUpdateServiceCommand(stored.ID(), serviceID, kernel.NewUUID(), order.ServicePatch{
			Name: ptr("Panel Z"),
		})
		require.NoError(t, err)

		h := commands.NewUpdateServiceCommandHandler(factory, fixedClock)
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, "Panel A", stored.Services()[0].Name())
		repo.AssertNotCalled(t, "UpdateService", mock.Anything, mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("store miss is not found", func(t *testing.T) {
		stored := newStoredOrder(t, owner)
		serviceID := stored.Services()[0].ID()
		repo := new(MockOrderRepository)
		factory, uow := orderUoW(repo)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		repo.On("Get", ctx, stored.ID()).Return(stored, nil).Once()
		repo.On("UpdateService", ctx, stored, isService).
			Return(errs.NewObjectNotFoundError("service", serviceID.String())).Once()
		cmd, err := commands.NewUpdateServiceCommand(stored.ID(), serviceID, owner, order.ServicePatch{
			Name: ptr("Panel Z"),
		})
		require.NoError(t, err)

		h := commands.NewUpdateServiceCommandHandler(factory, fixedClock)
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
