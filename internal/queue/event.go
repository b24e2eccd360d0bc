// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used for reservation lifecycle events.
const (
	ReservationConfirmedQueue = "reservation.confirmed"
	ReservationCancelledQueue = "reservation.cancelled"
)

// ReservationEvent is published when a reservation is created or
// cancelled. It carries enough information for downstream consumers to
// log or feed analytics without querying the primary database.
type ReservationEvent struct {
	ReservationID  uint64 `json:"reservation_id"`
	UserID         uint64 `json:"user_id"`
	RestaurantID   uint64 `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name,omitempty"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	PeopleCount    uint32 `json:"people_count"`
	OccurredAt     string `json:"occurred_at"`
}
