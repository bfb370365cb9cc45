// Package ports defines the contracts between the labflow core and its adapters.
// The core depends only on these interfaces; postgres, bcrypt and JWT adapters implement them.
package ports

import (
	"context"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"
)

// OrderFilter selects the orders of one owner for a paginated listing.
type OrderFilter struct {
	OwnerID kernel.UUID
	Status  order.Status
	// Stage narrows the listing when set.
	Stage *order.Stage
	Page  kernel.PageRequest
}

// OrderRepository defines the persistence contract for order aggregates and the
// services they own.
type OrderRepository interface {
	// Add persists a new order together with its services.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order fields and upserts the services the aggregate carries.
	// Stored services missing from the aggregate are kept.
	// Returns errs.ObjectNotFoundError when no stored order matched.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateStage writes only the stage and updatedAt of the aggregate.
	// Returns errs.ObjectNotFoundError when no stored order matched.
	UpdateStage(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with all its services.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindAll returns one page of orders matching filter, newest first, and the
	// number of orders matching filter across all pages.
	FindAll(ctx context.Context, filter OrderFilter) ([]*order.Order, int64, error)

	// AddService appends service to the stored order and refreshes its updatedAt.
	// Returns errs.ObjectNotFoundError when the order no longer exists.
	AddService(ctx context.Context, aggregate *order.Order, service *order.Service) error

	// UpdateService replaces the stored service addressed by (order ID, service ID)
	// and refreshes the order's updatedAt.
	// Returns errs.ObjectNotFoundError when that service no longer exists.
	UpdateService(ctx context.Context, aggregate *order.Order, service *order.Service) error
}
