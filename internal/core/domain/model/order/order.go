package order

import (
	"errors"
	"fmt"
	"time"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrTotalIsNotPositive is the cause attached when the services of an order sum to zero.
	ErrTotalIsNotPositive = errors.New("total value of services must be greater than 0")
)

// Details are the descriptive fields of an order. Each name is 3 to 100 characters.
type Details struct {
	LabName     string
	PatientName string
	ClinicName  string
}

// Patch is a partial update of an order. Nil fields keep their current value.
//
// Services lists the service patches to merge by ID. Services not listed keep
// their current state. Every listed ID must already belong to the order.
type Patch struct {
	LabName     *string
	PatientName *string
	ClinicName  *string
	ExpiresAt   *time.Time
	Stage       *Stage
	Status      *Status
	Services    []ServiceUpdate
}

// ServiceUpdate addresses one existing service of an order inside a Patch.
type ServiceUpdate struct {
	ID    kernel.UUID
	Patch ServicePatch
}

// Order is a laboratory order placed by a user. It is the aggregate root for its
// services and owns the stage workflow.
//
// Order follows these invariants:
//   - ID and owner never change after creation
//   - Lab, patient and clinic names are 3 to 100 characters long
//   - The order always holds at least one service
//   - Services sum to a positive total after every change
//   - Stage moves only forward along created -> analysis -> completed
//   - updatedAt is refreshed by every successful mutation
//
// Every mutating method validates the whole change before touching the order,
// so a returned error always leaves the order as it was.
type Order struct {
	id        kernel.UUID
	ownerID   kernel.UUID
	details   Details
	stage     Stage
	status    Status
	services  []*Service
	expiresAt time.Time
	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates an active order in the created stage.
//
// Parameters:
//   - id: unique identifier for the order
//   - ownerID: the user placing the order
//   - details: lab, patient and clinic names
//   - expiresAt: deadline, must be set
//   - services: at least one service, summing to a positive total
//   - now: creation time
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: joined validation errors otherwise
//
// Example:
//
//	value, _ := kernel.MoneyFromString("120.00")
//	panel, _ := order.NewService(kernel.NewUUID(), "Panel A", value, now)
//	o, err := order.NewOrder(kernel.NewUUID(), callerID, order.Details{
//	    LabName:     "Acme Lab",
//	    PatientName: "Jane Doe",
//	    ClinicName:  "City Clinic",
//	}, now.Add(72*time.Hour), []*order.Service{panel}, now)
func NewOrder(
	id, ownerID kernel.UUID,
	details Details,
	expiresAt time.Time,
	services []*Service,
	now time.Time,
) (*Order, error) {
	o := &Order{
		stage:         Created,
		status:        Active,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwnerID(ownerID),
		o.setDetails(details),
		o.setExpiresAt(expiresAt),
		o.setServices(services),
	); err != nil {
		return nil, err
	}

	if err := validateTotal(o.services); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. It checks the structural
// invariants but not the positive total, which is enforced on every change instead.
func RestoreOrder(
	id, ownerID kernel.UUID,
	details Details,
	stage Stage,
	status Status,
	services []*Service,
	expiresAt, createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwnerID(ownerID),
		o.setDetails(details),
		o.setStage(stage),
		o.setStatus(status),
		o.setExpiresAt(expiresAt),
		o.setServices(services),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) OwnerID() kernel.UUID {
	return o.ownerID
}

// IsOwnedBy reports whether userID placed the order.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.ownerID.IsEqual(userID)
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) LabName() string {
	return o.details.LabName
}

func (o *Order) PatientName() string {
	return o.details.PatientName
}

func (o *Order) ClinicName() string {
	return o.details.ClinicName
}

func (o *Order) Stage() Stage {
	return o.stage
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) ExpiresAt() time.Time {
	return o.expiresAt
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Services returns the services in insertion order. The slice is a copy.
func (o *Order) Services() []*Service {
	out := make([]*Service, len(o.services))
	copy(out, o.services)
	return out
}

// Service finds a service of this order by ID.
// Returns errs.ObjectNotFoundError when the order holds no such service.
func (o *Order) Service(id kernel.UUID) (*Service, error) {
	for _, s := range o.services {
		if s.ID().IsEqual(id) {
			return s, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("service", id.String())
}

// Total sums the values of all services.
func (o *Order) Total() kernel.Money {
	return sumValues(o.services)
}

// Apply merges patch into the order.
//
// Business rules:
//   - Every service listed in patch.Services must exist, otherwise errs.ErrObjectNotFound
//   - The merged services must sum to a positive total
//   - A stage different from the current one must be its direct successor
//   - Names, status and expiresAt are validated like on creation
//
// Returns:
//   - nil when the patch was applied and updatedAt set to now
//   - error otherwise, with the order unchanged
//
// Example:
//
//	analysis := order.Analysis
//	err := o.Apply(order.Patch{Stage: &analysis}, time.Now())
func (o *Order) Apply(patch Patch, now time.Time) error {
	next := *o

	var err error
	if patch.LabName != nil || patch.PatientName != nil || patch.ClinicName != nil {
		details := o.details
		if patch.LabName != nil {
			details.LabName = *patch.LabName
		}
		if patch.PatientName != nil {
			details.PatientName = *patch.PatientName
		}
		if patch.ClinicName != nil {
			details.ClinicName = *patch.ClinicName
		}
		err = errors.Join(err, next.setDetails(details))
	}
	if patch.ExpiresAt != nil {
		err = errors.Join(err, next.setExpiresAt(*patch.ExpiresAt))
	}
	if patch.Status != nil {
		err = errors.Join(err, next.setStatus(*patch.Status))
	}
	if patch.Stage != nil && *patch.Stage != o.stage {
		stage, stageErr := o.stage.TransitionTo(*patch.Stage)
		if stageErr == nil {
			next.stage = stage
		}
		err = errors.Join(err, stageErr)
	}
	if err != nil {
		return err
	}

	services, err := o.mergeServices(patch.Services, now)
	if err != nil {
		return err
	}
	if err = validateTotal(services); err != nil {
		return err
	}

	next.services = services
	next.updatedAt = now
	*o = next
	return nil
}

// AdvanceStage moves the order to the next stage of the workflow.
//
// Returns an error wrapping errs.ErrValueIsInvalid when the order is already completed;
// updatedAt is left untouched in that case.
func (o *Order) AdvanceStage(now time.Time) error {
	next, err := o.stage.Next()
	if err != nil {
		return err
	}

	o.stage = next
	o.updatedAt = now
	return nil
}

// AddService appends a new service to the order.
// The service ID must be unique within the order and the new total must stay positive.
func (o *Order) AddService(service *Service, now time.Time) error {
	if err := service.Validate(); err != nil {
		return err
	}
	if _, err := o.Service(service.ID()); err == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"service id",
			fmt.Errorf("service %s already belongs to order %s", service.ID(), o.id),
		)
	}

	services := append(o.Services(), service)
	if err := validateTotal(services); err != nil {
		return err
	}

	o.services = services
	o.updatedAt = now
	return nil
}

// UpdateService merges patch into the service with the given ID and returns the
// updated service.
//
// Returns errs.ErrObjectNotFound when the service does not belong to the order, or a
// validation error when the patch is malformed or the total would drop to zero.
func (o *Order) UpdateService(id kernel.UUID, patch ServicePatch, now time.Time) (*Service, error) {
	services, err := o.mergeServices([]ServiceUpdate{{ID: id, Patch: patch}}, now)
	if err != nil {
		return nil, err
	}
	if err = validateTotal(services); err != nil {
		return nil, err
	}

	o.services = services
	o.updatedAt = now
	return o.Service(id)
}

// mergeServices returns a new slice with updates applied by ID. o.services is not modified.
func (o *Order) mergeServices(updates []ServiceUpdate, now time.Time) ([]*Service, error) {
	services := o.Services()
	for _, update := range updates {
		idx := -1
		for i, s := range services {
			if s.ID().IsEqual(update.ID) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, errs.NewObjectNotFoundError("service", update.ID.String())
		}

		patched, err := services[idx].patched(update.Patch, now)
		if err != nil {
			return nil, err
		}
		services[idx] = patched
	}
	return services, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner id", err)
	}
	o.ownerID = ownerID
	return nil
}

func (o *Order) setDetails(details Details) error {
	if err := errors.Join(
		validateName("lab name", details.LabName),
		validateName("patient name", details.PatientName),
		validateName("clinic name", details.ClinicName),
	); err != nil {
		return err
	}
	o.details = details
	return nil
}

func (o *Order) setStage(stage Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	o.stage = stage
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setExpiresAt(expiresAt time.Time) error {
	if expiresAt.IsZero() {
		return errs.NewValueIsRequiredError("expires at")
	}
	o.expiresAt = expiresAt
	return nil
}

func (o *Order) setServices(services []*Service) error {
	if len(services) == 0 {
		return errs.NewValueIsRequiredError("services")
	}

	seen := make(map[kernel.UUID]struct{}, len(services))
	for _, s := range services {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, dup := seen[s.ID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"services",
				fmt.Errorf("service %s is listed twice", s.ID()),
			)
		}
		seen[s.ID()] = struct{}{}
	}

	o.services = append([]*Service(nil), services...)
	return nil
}

func validateTotal(services []*Service) error {
	if len(services) == 0 {
		return errs.NewValueIsRequiredError("services")
	}
	if !sumValues(services).IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("services", ErrTotalIsNotPositive)
	}
	return nil
}

func sumValues(services []*Service) kernel.Money {
	total := kernel.ZeroMoney()
	for _, s := range services {
		total = total.Add(s.Value())
	}
	return total
}
