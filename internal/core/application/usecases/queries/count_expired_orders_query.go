package queries

import (
	"errors"
	"time"

	"labflow/internal/pkg/errs"
	"labflow/internal/pkg/guard"
)

var ErrCountExpiredOrdersQueryIsNotConstructed = errors.New(
	"CountExpiredOrdersQuery must be created via NewCountExpiredOrdersQuery constructor",
)

// CountExpiredOrdersQuery asks how many active orders are past their deadline
// without having reached the completed stage.
type CountExpiredOrdersQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

func NewCountExpiredOrdersQuery(now time.Time) (CountExpiredOrdersQuery, error) {
	if now.IsZero() {
		return CountExpiredOrdersQuery{}, errs.NewValueIsRequiredError("now")
	}

	return CountExpiredOrdersQuery{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q CountExpiredOrdersQuery) Validate() error {
	return q.guard.Validate(ErrCountExpiredOrdersQueryIsNotConstructed)
}

func (q CountExpiredOrdersQuery) Now() time.Time {
	return q.now
}

// CountExpiredOrdersQueryResponse summarises the overdue orders across all owners.
type CountExpiredOrdersQueryResponse struct {
	Count int64
	// OldestExpiresAt is nil when Count is zero.
	OldestExpiresAt *time.Time
}
