package commands

import (
	"context"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"
	"labflow/internal/core/domain/services"
)

// CreateServiceCommandHandler appends a pending service to an owned order.
type CreateServiceCommandHandler struct {
	uowFactory OrderUoWFactory
	access     services.OrderAccess
	clock      Clock
}

func NewCreateServiceCommandHandler(uowFactory OrderUoWFactory, clock Clock) CreateServiceCommandHandler {
	return CreateServiceCommandHandler{
		uowFactory: uowFactory,
		access:     services.NewOrderAccess(),
		clock:      clock,
	}
}

// Handle appends the service and returns it as read back from the store.
//
// Errors:
//   - errs.ErrObjectNotFound when the order is absent or foreign, or the stored
//     order does not contain the new service after the append
//   - validation errors from the service or the order total
func (h CreateServiceCommandHandler) Handle(ctx context.Context, cmd CreateServiceCommand) (*order.Service, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := h.access.LoadOwned(ctx, orderRepo, cmd.OrderID(), cmd.CallerID())
	if err != nil {
		return nil, err
	}

	now := h.clock.now()
	spec := cmd.Spec()
	service, err := order.NewService(kernel.NewUUID(), spec.Name, spec.Value, now)
	if err != nil {
		return nil, err
	}

	if err = aggregate.AddService(service, now); err != nil {
		return nil, err
	}

	if err = orderRepo.AddService(ctx, aggregate, service); err != nil {
		return nil, err
	}

	stored, err := orderRepo.Get(ctx, aggregate.ID())
	if err != nil {
		return nil, err
	}
	created, err := stored.Service(service.ID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
