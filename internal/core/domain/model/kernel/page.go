package kernel

import (
	"errors"
	"math"

	"labflow/internal/pkg/errs"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

var ErrPageRequestIsNotConstructed = errors.New("PageRequest must be created via NewPageRequest")

// PageRequest addresses one page of a listing. Both page and limit start at 1.
type PageRequest struct {
	page          int
	limit         int
	isConstructed bool
}

// NewPageRequest validates page and limit. Callers substitute DefaultPage and
// DefaultLimit for absent values before calling. A page whose offset does not
// fit in an int is out of range.
func NewPageRequest(page, limit int) (PageRequest, error) {
	var err error
	if page < 1 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("page", errors.New("page must be at least 1")))
	}
	if limit < 1 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("limit", errors.New("limit must be at least 1")))
	}
	if err != nil {
		return PageRequest{}, err
	}
	if maxPage := math.MaxInt/limit + 1; page > maxPage {
		return PageRequest{}, errs.NewValueIsOutOfRangeError("page", page, 1, maxPage)
	}

	return PageRequest{page: page, limit: limit, isConstructed: true}, nil
}

// DefaultPageRequest returns page 1 with DefaultLimit items.
func DefaultPageRequest() PageRequest {
	return PageRequest{page: DefaultPage, limit: DefaultLimit, isConstructed: true}
}

func (r PageRequest) Validate() error {
	if !r.isConstructed {
		return ErrPageRequestIsNotConstructed
	}
	return nil
}

func (r PageRequest) Page() int {
	return r.page
}

func (r PageRequest) Limit() int {
	return r.limit
}

// Offset is the number of items that precede the requested page.
func (r PageRequest) Offset() int {
	return (r.page - 1) * r.limit
}

// Page is one slice of a filtered listing together with its navigation metadata.
type Page[T any] struct {
	Items           []T
	Total           int64
	Page            int
	Limit           int
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}

// NewPage derives the navigation metadata from total and the request.
//
// Example:
//
//	req, _ := kernel.NewPageRequest(2, 10)
//	page := kernel.NewPage(orders, 25, req)
//	// page.TotalPages == 3, page.HasNextPage == true, page.HasPreviousPage == true
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = make([]T, 0)
	}

	limit := int64(req.Limit())
	totalPages := 0
	if limit > 0 {
		totalPages = int(total / limit)
		if total%limit != 0 {
			totalPages++
		}
	}

	return Page[T]{
		Items:           items,
		Total:           total,
		Page:            req.Page(),
		Limit:           req.Limit(),
		TotalPages:      totalPages,
		HasNextPage:     req.Page() < totalPages,
		HasPreviousPage: req.Page() > 1,
	}
}

// MapPage converts the items of a page while keeping its metadata.
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	items := make([]R, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}

	return Page[R]{
		Items:           items,
		Total:           p.Total,
		Page:            p.Page,
		Limit:           p.Limit,
		TotalPages:      p.TotalPages,
		HasNextPage:     p.HasNextPage,
		HasPreviousPage: p.HasPreviousPage,
	}
}
