package order

import (
	"fmt"

	"labflow/internal/pkg/errs"
)

// Status is the soft-delete axis of an order and is independent from Stage.
// Deleted orders are hidden from listings but remain readable by ID.
type Status string

const (
	Active  Status = "active"
	Deleted Status = "deleted"
)

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	switch s {
	case Active, Deleted:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

// ServiceStatus tracks a single line item. Any value may replace any other.
type ServiceStatus string

const (
	ServicePending   ServiceStatus = "pending"
	ServiceDone      ServiceStatus = "done"
	ServiceCancelled ServiceStatus = "cancelled"
)

func ParseServiceStatus(s string) (ServiceStatus, error) {
	status := ServiceStatus(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s ServiceStatus) Validate() error {
	switch s {
	case ServicePending, ServiceDone, ServiceCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("service status", fmt.Errorf("%q is not a valid service status", string(s)))
	}
}

func (s ServiceStatus) String() string {
	return string(s)
}
