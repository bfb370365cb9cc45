package queries

import (
	"context"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"
	"labflow/internal/core/domain/services"
	"labflow/internal/core/ports"
)

// OrderReader is the read side of ports.OrderRepository used by the query handlers.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	FindAll(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, int64, error)
}

// GetOrderQueryHandler returns an order to its owner. Deleted orders are still
// readable by id; only listings hide them.
type GetOrderQueryHandler struct {
	orders OrderReader
	access services.OrderAccess
}

func NewGetOrderQueryHandler(orders OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		orders: orders,
		access: services.NewOrderAccess(),
	}
}

// Handle returns errs.ObjectNotFoundError both for absent orders and for orders
// owned by someone else.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.access.LoadOwned(ctx, h.orders, query.OrderID(), query.CallerID())
}
