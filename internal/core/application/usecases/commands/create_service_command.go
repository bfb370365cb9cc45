package commands

import (
	"errors"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/pkg/errs"
	"labflow/internal/pkg/guard"
)

var ErrCreateServiceCommandIsNotConstructed = errors.New(
	"CreateServiceCommand must be created via NewCreateServiceCommand constructor",
)

// CreateServiceCommand appends a new service to an existing order.
type CreateServiceCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	callerID kernel.UUID
	spec     NewServiceSpec

	guard guard.ConstructorGuard
}

func NewCreateServiceCommand(orderID, callerID kernel.UUID, spec NewServiceSpec) (CreateServiceCommand, error) {
	var valueErr error
	if err := spec.Value.Validate(); err != nil {
		valueErr = errs.NewValueIsRequiredErrorWithCause("service value", err)
	}

	if err := errors.Join(orderID.Validate(), callerID.Validate(), valueErr); err != nil {
		return CreateServiceCommand{}, err
	}

	return CreateServiceCommand{
		orderID:  orderID,
		callerID: callerID,
		spec:     spec,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateServiceCommand) Validate() error {
	return c.guard.Validate(ErrCreateServiceCommandIsNotConstructed)
}

func (c CreateServiceCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateServiceCommand) CallerID() kernel.UUID {
	return c.callerID
}

func (c CreateServiceCommand) Spec() NewServiceSpec {
	return c.spec
}
