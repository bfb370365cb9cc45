package commands

import (
	"errors"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/pkg/guard"
)

var ErrAdvanceOrderStageCommandIsNotConstructed = errors.New(
	"AdvanceOrderStageCommand must be created via NewAdvanceOrderStageCommand constructor",
)

// AdvanceOrderStageCommand moves an order to the next stage of the workflow.
type AdvanceOrderStageCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	callerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAdvanceOrderStageCommand(orderID, callerID kernel.UUID) (AdvanceOrderStageCommand, error) {
	if err := errors.Join(orderID.Validate(), callerID.Validate()); err != nil {
		return AdvanceOrderStageCommand{}, err
	}

	return AdvanceOrderStageCommand{
		orderID:  orderID,
		callerID: callerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceOrderStageCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStageCommandIsNotConstructed)
}

func (c AdvanceOrderStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdvanceOrderStageCommand) CallerID() kernel.UUID {
	return c.callerID
}
