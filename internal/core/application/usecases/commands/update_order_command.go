package commands

import (
	"errors"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"
	"labflow/internal/pkg/errs"
	"labflow/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand is a partial update of an order, including explicit stage
// changes and soft deletion through the status field.
//
// The services list is mandatory: an update that omits it is rejected before
// the order is loaded.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	callerID kernel.UUID
	patch    order.Patch

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(orderID, callerID kernel.UUID, patch order.Patch) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCallerID(callerID),
		cmd.setPatch(patch),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderCommand) CallerID() kernel.UUID {
	return c.callerID
}

func (c UpdateOrderCommand) Patch() order.Patch {
	return c.patch
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}
	c.callerID = callerID
	return nil
}

func (c *UpdateOrderCommand) setPatch(patch order.Patch) error {
	if patch.Services == nil {
		return errs.NewValueIsRequiredError("services")
	}
	for _, update := range patch.Services {
		if err := update.ID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("service id", err)
		}
	}
	c.patch = patch
	return nil
}
