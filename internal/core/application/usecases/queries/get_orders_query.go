package queries

import (
	"errors"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"
	"labflow/internal/pkg/errs"
	"labflow/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists the active orders of the caller, one page at a time,
// optionally narrowed to a single stage.
type GetOrdersQuery struct {
	callerID kernel.UUID
	page     kernel.PageRequest
	stage    *order.Stage

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery validates the caller, the page request and, when given, the stage.
func NewGetOrdersQuery(callerID kernel.UUID, page kernel.PageRequest, stage *order.Stage) (GetOrdersQuery, error) {
	var pageErr error
	if err := page.Validate(); err != nil {
		pageErr = errs.NewValueIsRequiredErrorWithCause("page", err)
	}

	var stageErr error
	if stage != nil {
		stageErr = stage.Validate()
	}

	if err := errors.Join(callerID.Validate(), pageErr, stageErr); err != nil {
		return GetOrdersQuery{}, err
	}

	q := GetOrdersQuery{
		callerID: callerID,
		page:     page,
		guard:    guard.NewConstructorGuard(),
	}
	if stage != nil {
		s := *stage
		q.stage = &s
	}
	return q, nil
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

func (q GetOrdersQuery) CallerID() kernel.UUID {
	return q.callerID
}

func (q GetOrdersQuery) Page() kernel.PageRequest {
	return q.page
}

// Stage returns the stage filter, or nil when every stage is listed.
func (q GetOrdersQuery) Stage() *order.Stage {
	return q.stage
}
