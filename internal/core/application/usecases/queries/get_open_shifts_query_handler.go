package queries

import (
	"context"
	"time"

	"geodispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenShiftsQueryHandler reads open shifts with their courier names
// joined in.
type GetOpenShiftsQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenShiftsQueryHandler creates a handler for open shift queries.
func NewGetOpenShiftsQueryHandler(db *gorm.DB) GetOpenShiftsQueryHandler {
	return GetOpenShiftsQueryHandler{db: db}
}

// Handle executes the query. Shifts closest to their expected end come first.
func (h GetOpenShiftsQueryHandler) Handle(
	ctx context.Context,
	query GetOpenShiftsQuery,
) ([]GetOpenShiftsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]GetOpenShiftsQueryResponse, 0)
	now := time.Now()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.courier_id,
			c.name,
			s.opened_at,
			s.expected_end_at
		FROM shifts s
		JOIN couriers c ON c.id = s.courier_id
		WHERE s.is_open
		ORDER BY s.expected_end_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOpenShiftsQueryResponse
		var id, courierID uuid.UUID

		err = rows.Scan(&id, &courierID, &resp.CourierName, &resp.OpenedAt, &resp.ExpectedEndAt)
		if err != nil {
			return nil, err
		}

		shiftID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = shiftID

		cID, idErr := kernel.UUIDFromBytes(courierID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.CourierID = cID

		resp.Overdue = resp.ExpectedEndAt.Before(now)
		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
