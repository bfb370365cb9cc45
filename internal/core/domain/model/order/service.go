package order

import (
	"errors"
	"time"
	"unicode/utf8"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/pkg/errs"
	"labflow/internal/pkg/guard"
)

const (
	// NameMinLength and NameMaxLength bound every name held by an order, counted in runes.
	NameMinLength = 3
	NameMaxLength = 100
)

// ErrServiceIsNotConstructed indicates that a Service was not created through
// NewService or RestoreService.
var ErrServiceIsNotConstructed = errors.New("Service must be created via NewService constructor")

// Service is a billable line item owned by an Order. It has no lifecycle of its own:
// it is created, changed and persisted only through its order.
//
// Key business rules:
//   - ID is assigned on creation and never changes
//   - Name is 3 to 100 characters long
//   - Value is a non-negative amount (kernel.Money)
//   - Status may be set to any ServiceStatus at any time
//
// Example:
//
//	value, _ := kernel.MoneyFromString("120.00")
//	svc, err := order.NewService(kernel.NewUUID(), "Panel A", value, time.Now())
//	if err != nil {
//	    return err
//	}
//	// svc.Status() == order.ServicePending
type Service struct {
	id        kernel.UUID
	name      string
	value     kernel.Money
	status    ServiceStatus
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// ServicePatch holds the optional fields of a partial service update.
// Nil fields keep their current value.
type ServicePatch struct {
	Name   *string
	Value  *kernel.Money
	Status *ServiceStatus
}

// NewService creates a pending service stamped with now.
//
// Parameters:
//   - id: server-generated identifier
//   - name: display name, 3 to 100 characters
//   - value: line amount, must be constructed
//   - now: creation time, used for both createdAt and updatedAt
//
// Returns:
//   - *Service on success
//   - joined validation errors otherwise
func NewService(id kernel.UUID, name string, value kernel.Money, now time.Time) (*Service, error) {
	return RestoreService(id, name, value, ServicePending, now, now)
}

// RestoreService rebuilds a service from persisted state.
func RestoreService(
	id kernel.UUID,
	name string,
	value kernel.Money,
	status ServiceStatus,
	createdAt, updatedAt time.Time,
) (*Service, error) {
	s := &Service{
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setValue(value),
		s.setStatus(status),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the service was created through a constructor.
func (s *Service) Validate() error {
	if s == nil {
		return ErrServiceIsNotConstructed
	}
	return s.guard.Validate(ErrServiceIsNotConstructed)
}

func (s *Service) ID() kernel.UUID {
	return s.id
}

func (s *Service) Name() string {
	return s.name
}

func (s *Service) Value() kernel.Money {
	return s.value
}

func (s *Service) Status() ServiceStatus {
	return s.status
}

func (s *Service) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Service) UpdatedAt() time.Time {
	return s.updatedAt
}

// patched returns a copy of s with patch applied and updatedAt set to now.
// s itself is never modified, so a failed patch leaves the order untouched.
func (s *Service) patched(patch ServicePatch, now time.Time) (*Service, error) {
	next := *s

	var err error
	if patch.Name != nil {
		err = errors.Join(err, next.setName(*patch.Name))
	}
	if patch.Value != nil {
		err = errors.Join(err, next.setValue(*patch.Value))
	}
	if patch.Status != nil {
		err = errors.Join(err, next.setStatus(*patch.Status))
	}
	if err != nil {
		return nil, err
	}

	next.updatedAt = now
	return &next, nil
}

func (s *Service) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Service) setName(name string) error {
	if err := validateName("service name", name); err != nil {
		return err
	}
	s.name = name
	return nil
}

func (s *Service) setValue(value kernel.Money) error {
	if err := value.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("service value", err)
	}
	s.value = value
	return nil
}

func (s *Service) setStatus(status ServiceStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

// validateName enforces the 3 to 100 character bound on names.
func validateName(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}

	length := utf8.RuneCountInString(value)
	if length < NameMinLength || length > NameMaxLength {
		return errs.NewValueIsOutOfRangeError(param, length, NameMinLength, NameMaxLength)
	}
	return nil
}
