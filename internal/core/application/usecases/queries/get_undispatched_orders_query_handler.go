package queries

import (
	"context"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUndispatchedOrdersQueryHandler reads the dispatch backlog straight from
// the database, bypassing the aggregates. The per-order attempt count is
// joined in from the assignments table.
type GetUndispatchedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUndispatchedOrdersQueryHandler creates a handler for backlog queries.
func NewGetUndispatchedOrdersQueryHandler(db *gorm.DB) GetUndispatchedOrdersQueryHandler {
	return GetUndispatchedOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are ordered oldest first, matching the
// order the dispatch sweep works through them.
func (h GetUndispatchedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUndispatchedOrdersQuery,
) ([]GetUndispatchedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]GetUndispatchedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.store_id,
			o.status,
			o.created_at,
			(SELECT COUNT(*) FROM assignments a WHERE a.order_id = o.id) AS offer_attempts
		FROM orders o
		WHERE o.status IN (?, ?) AND o.courier_id IS NULL
		ORDER BY o.created_at
	`, order.Processing.String(), order.ReadyForDelivery.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUndispatchedOrdersQueryResponse
		var id, storeID uuid.UUID

		err = rows.Scan(&id, &storeID, &resp.Status, &resp.CreatedAt, &resp.OfferAttempts)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		sID, idErr := kernel.UUIDFromBytes(storeID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.StoreID = sID

		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
