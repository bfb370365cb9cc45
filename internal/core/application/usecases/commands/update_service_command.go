package commands

import (
	"errors"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"
	"labflow/internal/pkg/guard"
)

var ErrUpdateServiceCommandIsNotConstructed = errors.New(
	"UpdateServiceCommand must be created via NewUpdateServiceCommand constructor",
)

// UpdateServiceCommand is a partial update of one service of an order.
type UpdateServiceCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	serviceID kernel.UUID
	callerID  kernel.UUID
	patch     order.ServicePatch

	guard guard.ConstructorGuard
}

func NewUpdateServiceCommand(
	orderID, serviceID, callerID kernel.UUID,
	patch order.ServicePatch,
) (UpdateServiceCommand, error) {
	if err := errors.Join(orderID.Validate(), serviceID.Validate(), callerID.Validate()); err != nil {
		return UpdateServiceCommand{}, err
	}

	return UpdateServiceCommand{
		orderID:   orderID,
		serviceID: serviceID,
		callerID:  callerID,
		patch:     patch,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateServiceCommand) Validate() error {
	return c.guard.Validate(ErrUpdateServiceCommandIsNotConstructed)
}

func (c UpdateServiceCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateServiceCommand) ServiceID() kernel.UUID {
	return c.serviceID
}

func (c UpdateServiceCommand) CallerID() kernel.UUID {
	return c.callerID
}

func (c UpdateServiceCommand) Patch() order.ServicePatch {
	return c.patch
}
