package commands

import (
	"context"

	"labflow/internal/core/domain/model/order"
	"labflow/internal/core/domain/services"
)

// UpdateServiceCommandHandler merges a patch into one service of an owned order.
type UpdateServiceCommandHandler struct {
	uowFactory OrderUoWFactory
	access     services.OrderAccess
	clock      Clock
}

func NewUpdateServiceCommandHandler(uowFactory OrderUoWFactory, clock Clock) UpdateServiceCommandHandler {
	return UpdateServiceCommandHandler{
		uowFactory: uowFactory,
		access:     services.NewOrderAccess(),
		clock:      clock,
	}
}

// Handle patches the service through the aggregate, which keeps the order total
// positive, then replaces the stored service. A service that vanished between
// read and write is reported as errs.ErrObjectNotFound.
func (h UpdateServiceCommandHandler) Handle(ctx context.Context, cmd UpdateServiceCommand) (*order.Service, error) {
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

	service, err := aggregate.UpdateService(cmd.ServiceID(), cmd.Patch(), h.clock.now())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateService(ctx, aggregate, service); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return service, nil
}
