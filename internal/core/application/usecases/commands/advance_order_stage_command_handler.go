package commands

import (
	"context"

	"labflow/internal/core/domain/model/order"
	"labflow/internal/core/domain/services"
)

// AdvanceOrderStageCommandHandler moves an owned order one stage forward.
//
// Example:
//
//	cmd, _ := NewAdvanceOrderStageCommand(orderID, callerID)
//	o, err := handler.Handle(ctx, cmd) // created -> analysis
//	o, err = handler.Handle(ctx, cmd)  // analysis -> completed
//	_, err = handler.Handle(ctx, cmd)  // errs.ErrValueIsInvalid: cannot advance from stage completed
type AdvanceOrderStageCommandHandler struct {
	uowFactory OrderUoWFactory
	access     services.OrderAccess
	clock      Clock
}

func NewAdvanceOrderStageCommandHandler(uowFactory OrderUoWFactory, clock Clock) AdvanceOrderStageCommandHandler {
	return AdvanceOrderStageCommandHandler{
		uowFactory: uowFactory,
		access:     services.NewOrderAccess(),
		clock:      clock,
	}
}

// Handle advances the stage and persists the order. A completed order is rejected
// before any write.
func (h AdvanceOrderStageCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStageCommand) (*order.Order, error) {
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

	if err = aggregate.AdvanceStage(h.clock.now()); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateStage(ctx, aggregate); err != nil {
		return nil, lostUpdate(aggregate, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
