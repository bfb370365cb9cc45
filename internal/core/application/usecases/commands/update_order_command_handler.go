package commands

import (
	"context"
	"errors"

	"labflow/internal/core/domain/model/order"
	"labflow/internal/core/domain/services"
	"labflow/internal/pkg/errs"
)

// UpdateOrderCommandHandler merges a patch into an order owned by the caller.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	access     services.OrderAccess
	clock      Clock
}

func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		access:     services.NewOrderAccess(),
		clock:      clock,
	}
}

// Handle loads the order, applies the patch and replaces the stored state.
//
// Errors:
//   - errs.ErrObjectNotFound when the order is absent, foreign, or a patched service does not exist
//   - errs.ErrValueIsInvalid and friends when the merged order breaks an invariant
//   - errs.ErrObjectNotUpdated when the order vanished between read and write
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	if err = aggregate.Apply(cmd.Patch(), h.clock.now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, lostUpdate(aggregate, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// lostUpdate reports a write that matched nothing after a successful read as
// errs.ErrObjectNotUpdated instead of a not-found.
func lostUpdate(aggregate *order.Order, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewObjectNotUpdatedErrorWithCause("order", aggregate.ID().String(), err)
	}
	return err
}
