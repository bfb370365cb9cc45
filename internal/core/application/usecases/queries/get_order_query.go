// Package queries contains the read side of the order lifecycle engine.
// Query handlers never open a transaction and never change state.
package queries

import (
	"errors"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order on behalf of its owner.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, callerID)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID  kernel.UUID
	callerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID, callerID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), callerID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:  orderID,
		callerID: callerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) CallerID() kernel.UUID {
	return q.callerID
}
