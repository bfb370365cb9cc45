package commands

import (
	"context"
	"errors"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"
)

// CreateOrderCommandHandler places new orders owned by the caller.
// Orders start in the created stage with active status and all services pending.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// A nil clock falls back to time.Now.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle builds the aggregate, so every invariant is checked before the transaction
// starts, and persists it.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.now()

	specs := cmd.Services()
	services := make([]*order.Service, 0, len(specs))
	var specErr error
	for _, spec := range specs {
		s, err := order.NewService(kernel.NewUUID(), spec.Name, spec.Value, now)
		if err != nil {
			specErr = errors.Join(specErr, err)
			continue
		}
		services = append(services, s)
	}
	if specErr != nil {
		return nil, specErr
	}

	aggregate, err := order.NewOrder(kernel.NewUUID(), cmd.CallerID(), cmd.Details(), cmd.ExpiresAt(), services, now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
