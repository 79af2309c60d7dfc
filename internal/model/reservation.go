package model

import "time"

const (
	ReservationStatusPending = "pending"
)

// Reservation is a user's claim on a resource for a time interval.
type Reservation struct {
	ID         int64     `json:"id"`
	UserID     int       `json:"user_id"`
	ResourceID int       `json:"resource_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Guests     *int      `json:"guests,omitempty"`
	Note       *string   `json:"note,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Overlaps reports whether the interval [start, end] intersects this
// reservation's interval. Boundaries are inclusive: two intervals that merely
// touch at an endpoint count as overlapping. The SQL conflict predicate in the
// reservation repository mirrors this rule exactly.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return !r.StartTime.After(end) && !start.After(r.EndTime)
}

// ReserveRequest is the body for POST /resources/:id/reserve
type ReserveRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Guests    *int      `json:"guests" binding:"omitempty,min=1"`
	Note      *string   `json:"note"`
}

// CreateReservationRequest is the body for POST /reservations; identical to
// ReserveRequest but carries the target resource in the body.
type CreateReservationRequest struct {
	ResourceID int       `json:"resource_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
	Guests     *int      `json:"guests" binding:"omitempty,min=1"`
	Note       *string   `json:"note"`
}
