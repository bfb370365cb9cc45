package queries

import (
	"context"
	"database/sql"

	"labflow/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// CountExpiredOrdersQueryHandler reads the overdue-order summary straight from the
// orders table, bypassing the aggregate mapping.
type CountExpiredOrdersQueryHandler struct {
	db *gorm.DB
}

func NewCountExpiredOrdersQueryHandler(db *gorm.DB) CountExpiredOrdersQueryHandler {
	return CountExpiredOrdersQueryHandler{db: db}
}

func (h CountExpiredOrdersQueryHandler) Handle(
	ctx context.Context,
	query CountExpiredOrdersQuery,
) (CountExpiredOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CountExpiredOrdersQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			MIN(expires_at)
		FROM orders
		WHERE status = ?
			AND stage <> ?
			AND expires_at < ?
	`, order.Active.String(), order.Completed.String(), query.Now()).Row()

	var (
		response CountExpiredOrdersQueryResponse
		oldest   sql.NullTime
	)
	if err := row.Scan(&response.Count, &oldest); err != nil {
		return CountExpiredOrdersQueryResponse{}, err
	}

	if oldest.Valid {
		t := oldest.Time.UTC()
		response.OldestExpiresAt = &t
	}

	return response, nil
}
