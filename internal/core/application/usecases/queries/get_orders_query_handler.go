package queries

import (
	"context"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"
	"labflow/internal/core/ports"
)

// GetOrdersQueryHandler pages through the caller's active orders, newest first.
//
// Example:
//
//	req, _ := kernel.NewPageRequest(2, 10)
//	query, _ := NewGetOrdersQuery(callerID, req, nil)
//	page, err := handler.Handle(ctx, query)
//	// with 25 matching orders: page.TotalPages == 3, page.HasNextPage == true
type GetOrdersQueryHandler struct {
	orders OrderReader
}

func NewGetOrdersQueryHandler(orders OrderReader) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{orders: orders}
}

func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) (kernel.Page[*order.Order], error) {
	if err := query.Validate(); err != nil {
		return kernel.Page[*order.Order]{}, err
	}

	items, total, err := h.orders.FindAll(ctx, ports.OrderFilter{
		OwnerID: query.CallerID(),
		Status:  order.Active,
		Stage:   query.Stage(),
		Page:    query.Page(),
	})
	if err != nil {
		return kernel.Page[*order.Order]{}, err
	}

	return kernel.NewPage(items, total, query.Page()), nil
}
