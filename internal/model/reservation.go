package model

import "time"

// Reservation statuses. Only "upcoming" and "cancelled" are ever
// written to storage; "completed" is a read-side projection computed
// by DisplayStatus when a reservation's date and time have elapsed.
const (
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Wire formats for the date and time columns. Dates are plain
// calendar days and times are local wall-clock values; the service
// attaches no timezone semantics beyond that.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Reservation records a user's table booking at a restaurant. The
// owning user and the referenced restaurant are fixed at creation;
// only date, time and party size may be rewritten afterwards.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – owner of the reservation, immutable.
//  RestaurantID – booked restaurant, immutable.
//  Date         – calendar day in DateLayout form.
//  Time         – wall-clock time in TimeLayout form.
//  PeopleCount  – party size, positive with no enforced upper bound.
//  Status       – stored status (upcoming or cancelled).
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Reservation struct {
	ID           uint64    // reservations.reservation_id
	UserID       uint64    // reservations.user_id
	RestaurantID uint64    // reservations.restaurant_id
	Date         string    // reservations.date
	Time         string    // reservations.time
	PeopleCount  uint32    // reservations.people_count
	Status       string    // reservations.status
	CreatedAt    time.Time // reservations.created_at
	UpdatedAt    time.Time // reservations.updated_at
}

// DisplayStatus returns the status as presented to clients: a stored
// "upcoming" reservation whose date+time lies before now is reported
// as "completed". Cancelled reservations stay cancelled regardless of
// their date. Unparseable date/time pairs fall back to the stored
// status.
func (r Reservation) DisplayStatus(now time.Time) string {
	if r.Status != StatusUpcoming {
		return r.Status
	}
	dt, err := time.ParseInLocation(DateLayout+" "+TimeLayout, r.Date+" "+r.Time, now.Location())
	if err != nil {
		return r.Status
	}
	if dt.Before(now) {
		return StatusCompleted
	}
	return StatusUpcoming
}

// UserReservation is a reservation row joined with the booked
// restaurant's display name and location, as returned by the
// user-facing listing.
type UserReservation struct {
	Reservation
	RestaurantName string // restaurants.name
	Location       string // restaurants.location
}
