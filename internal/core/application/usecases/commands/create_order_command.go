package commands

import (
	"errors"
	"time"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"
	"labflow/internal/pkg/errs"
	"labflow/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// NewServiceSpec describes a service to create. IDs and timestamps are assigned by the handler.
type NewServiceSpec struct {
	Name  string
	Value kernel.Money
}

// CreateOrderCommand represents a request to place a new lab order.
//
// Example:
//
//	value, _ := kernel.MoneyFromString("120.00")
//	cmd, err := NewCreateOrderCommand(callerID, order.Details{
//	    LabName:     "Acme Lab",
//	    PatientName: "Jane Doe",
//	    ClinicName:  "City Clinic",
//	}, expiresAt, []NewServiceSpec{{Name: "Panel A", Value: value}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	callerID  kernel.UUID
	details   order.Details
	expiresAt time.Time
	services  []NewServiceSpec

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the caller, deadline and the presence of services.
// Names and amounts are validated by the order aggregate.
func NewCreateOrderCommand(
	callerID kernel.UUID,
	details order.Details,
	expiresAt time.Time,
	services []NewServiceSpec,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCallerID(callerID),
		cmd.setExpiresAt(expiresAt),
		cmd.setServices(services),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CallerID() kernel.UUID {
	return c.callerID
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c CreateOrderCommand) ExpiresAt() time.Time {
	return c.expiresAt
}

// Services returns a copy of the requested services.
func (c CreateOrderCommand) Services() []NewServiceSpec {
	return append([]NewServiceSpec(nil), c.services...)
}

func (c *CreateOrderCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}
	c.callerID = callerID
	return nil
}

func (c *CreateOrderCommand) setExpiresAt(expiresAt time.Time) error {
	if expiresAt.IsZero() {
		return errs.NewValueIsRequiredError("expires at")
	}
	c.expiresAt = expiresAt
	return nil
}

func (c *CreateOrderCommand) setServices(services []NewServiceSpec) error {
	if len(services) == 0 {
		return errs.NewValueIsRequiredError("services")
	}
	c.services = append([]NewServiceSpec(nil), services...)
	return nil
}
