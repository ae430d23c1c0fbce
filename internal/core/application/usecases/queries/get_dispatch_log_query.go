package queries

import (
	"errors"
	"time"

	"warehouse/internal/pkg/guard"
)

var (
	ErrGetDispatchLogQueryIsNotConstructed = errors.New(
		"GetDispatchLogQuery must be created via NewGetDispatchLogQuery constructor",
	)
	ErrLimitIsInvalid = errors.New("limit must be between 1 and 1000")
)

const maxDispatchLogLimit = 1000

// GetDispatchLogQuery retrieves recent coordination events from the archive:
// task dispatches, restock intents, and stall compensations.
//
// Example:
//
//	query, err := NewGetDispatchLogQuery(50)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetDispatchLogQueryHandler(db)
//	events, err := handler.Handle(ctx, query)
type GetDispatchLogQuery struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewGetDispatchLogQuery creates a query for the newest limit events.
func NewGetDispatchLogQuery(limit int) (GetDispatchLogQuery, error) {
	if limit <= 0 || limit > maxDispatchLogLimit {
		return GetDispatchLogQuery{}, ErrLimitIsInvalid
	}

	return GetDispatchLogQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDispatchLogQueryIsNotConstructed if validation fails.
func (q GetDispatchLogQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchLogQueryIsNotConstructed)
}

// Limit returns the maximum number of events to retrieve.
func (q GetDispatchLogQuery) Limit() int {
	return q.limit
}

// GetDispatchLogQueryResponse represents one archived coordination event.
type GetDispatchLogQueryResponse struct {
	OccurredAt time.Time `json:"occurred_at"`
	OrderID    string    `json:"order_id"`
	RobotID    string    `json:"robot_id,omitempty"`
	Command    string    `json:"command"`
	ShelfID    string    `json:"shelf_id"`
	StationID  string    `json:"station_id,omitempty"`
	Quantity   int       `json:"quantity"`
}
