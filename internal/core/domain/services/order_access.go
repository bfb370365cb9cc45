package services

import (
	"context"
	"errors"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"
	"labflow/internal/pkg/errs"
)

// OrderFinder is the read side needed by OrderAccess. ports.OrderRepository satisfies it.
type OrderFinder interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// OrderAccess is the single ownership check used by every order read and write.
//
// Business rules:
//   - Only the owner may read or change an order or its services
//   - An order owned by someone else is reported exactly like a missing one,
//     so callers cannot probe for foreign order IDs
//
// Example usage:
//
//	access := services.NewOrderAccess()
//	o, err := access.LoadOwned(ctx, uow.OrderRepository(), cmd.OrderID(), cmd.CallerID())
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404 for both absent and foreign orders
//	}
type OrderAccess struct{}

func NewOrderAccess() OrderAccess {
	return OrderAccess{}
}

// LoadOwned fetches orderID and checks that callerID owns it.
//
// Returns:
//   - the order when it exists and belongs to callerID
//   - errs.ObjectNotFoundError when it is absent or owned by another user
//   - any other finder error unchanged
func (OrderAccess) LoadOwned(
	ctx context.Context,
	finder OrderFinder,
	orderID, callerID kernel.UUID,
) (*order.Order, error) {
	if err := errors.Join(orderID.Validate(), callerID.Validate()); err != nil {
		return nil, err
	}

	o, err := finder.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return nil, err
	}

	if !o.IsOwnedBy(callerID) {
		return nil, errs.NewObjectNotFoundError("order", orderID.String())
	}

	return o, nil
}
