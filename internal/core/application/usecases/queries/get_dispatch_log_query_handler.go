package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetDispatchLogQueryHandler retrieves archived coordination events from the
// database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
//
// Example:
//
//	handler := NewGetDispatchLogQueryHandler(db)
//	query, _ := NewGetDispatchLogQuery(50)
//
//	events, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get dispatch log: %v", err)
//	    return err
//	}
type GetDispatchLogQueryHandler struct {
	db *gorm.DB
}

// NewGetDispatchLogQueryHandler creates a handler for dispatch log queries.
// Requires a GORM database connection for query execution.
func NewGetDispatchLogQueryHandler(db *gorm.DB) GetDispatchLogQueryHandler {
	return GetDispatchLogQueryHandler{db: db}
}

// Handle executes the query to retrieve the newest events, newest first.
func (h GetDispatchLogQueryHandler) Handle(
	ctx context.Context,
	query GetDispatchLogQuery,
) ([]GetDispatchLogQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events := make([]GetDispatchLogQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			occurred_at,
			order_id,
			robot_id,
			command,
			shelf_id,
			station_id,
			quantity
		FROM dispatch_events
		ORDER BY occurred_at DESC, id DESC
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event GetDispatchLogQueryResponse
		err = rows.Scan(
			&event.OccurredAt,
			&event.OrderID,
			&event.RobotID,
			&event.Command,
			&event.ShelfID,
			&event.StationID,
			&event.Quantity,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
