package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dineout-gr/dineout-api/internal/model"
	"github.com/dineout-gr/dineout-api/internal/queue"
)

// ReservationStore owns reservation persistence. Owner-scoped lookups
// must return sql.ErrNoRows for both a missing row and a row owned by
// another user. repository.ReservationRepo implements it; tests use an
// in-memory fake.
type ReservationStore interface {
	Create(ctx context.Context, userID, restaurantID uint64, date, clock string, peopleCount uint32) (uint64, error)
	GetByIDForUser(ctx context.Context, reservationID, userID uint64) (model.Reservation, error)
	Update(ctx context.Context, reservationID, userID uint64, date, clock string, peopleCount uint32) error
	Cancel(ctx context.Context, reservationID, userID uint64) error
	ListByUser(ctx context.Context, userID uint64) ([]model.UserReservation, error)
	ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Reservation, error)
}

// EventPublisher emits reservation lifecycle events to the broker.
// Publication is best-effort: failures are logged by the implementation
// and never fail the request.
type EventPublisher interface {
	ReservationConfirmed(ctx context.Context, ev queue.ReservationEvent) error
	ReservationCancelled(ctx context.Context, ev queue.ReservationEvent) error
}

// ReservationHandler implements the reservation rules: field validation,
// restaurant-reference validation on create, combined
// existence+ownership checks on mutation, and the cancelled-reservation
// edit policy. Authentication has already happened in middleware; every
// method resolves the caller from the request context.
type ReservationHandler struct {
	Reservations ReservationStore
	Restaurants  RestaurantStore
	Events       EventPublisher // optional; nil disables publication
	// LockCancelled rejects update/cancel of an already-cancelled
	// reservation with 409. Off by default: re-cancelling is then a
	// no-op and edits to a cancelled reservation are permitted.
	LockCancelled bool
}

func NewReservationHandler(reservations ReservationStore, restaurants RestaurantStore, events EventPublisher, lockCancelled bool) *ReservationHandler {
	if reservations == nil || restaurants == nil {
		panic("nil store passed to NewReservationHandler")
	}
	return &ReservationHandler{
		Reservations:  reservations,
		Restaurants:   restaurants,
		Events:        events,
		LockCancelled: lockCancelled,
	}
}

// ----- DTOs -----

type createReservationReq struct {
	RestaurantID uint64 `json:"restaurantId"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PeopleCount  uint32 `json:"peopleCount"`
}

type updateReservationReq struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	PeopleCount uint32 `json:"peopleCount"`
}

type reservationJSON struct {
	ID           uint64 `json:"id"`
	UserID       uint64 `json:"userId,omitempty"`
	RestaurantID uint64 `json:"restaurantId"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PeopleCount  uint32 `json:"peopleCount"`
	Status       string `json:"status"`
}

// validateFields checks the three mutable fields together: date must be
// a calendar day, time a wall-clock value, and the party size positive.
// No upper bound is enforced on the party size.
func validateFields(date, clock string, peopleCount uint32) error {
	if date == "" || clock == "" || peopleCount == 0 {
		return errors.New("date, time and peopleCount are required")
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return errors.New("date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse(model.TimeLayout, clock); err != nil {
		return errors.New("time must be in HH:MM format")
	}
	return nil
}

// Create handles POST /api/reservations. The referenced restaurant must
// exist; otherwise nothing is persisted and the caller gets 404.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.RestaurantID == 0 {
		return fail(c, http.StatusBadRequest, "restaurantId is required")
	}
	if err := validateFields(req.Date, req.Time, req.PeopleCount); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	exists, err := h.Restaurants.Exists(ctx, req.RestaurantID)
	if err != nil {
		return serverError(c, err)
	}
	if !exists {
		return fail(c, http.StatusNotFound, msgRestaurantGone)
	}

	id, err := h.Reservations.Create(ctx, userID, req.RestaurantID, req.Date, req.Time, req.PeopleCount)
	if err != nil {
		return serverError(c, err)
	}

	h.publish(queue.ReservationConfirmedQueue, queue.ReservationEvent{
		ReservationID: id,
		UserID:        userID,
		RestaurantID:  req.RestaurantID,
		Date:          req.Date,
		Time:          req.Time,
		PeopleCount:   req.PeopleCount,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"success":       true,
		"message":       "Reservation created successfully",
		"reservationId": id,
	})
}

// Update handles PUT /api/reservations/:id. All three mutable fields are
// required together; there is no partial update at this layer. A missing
// reservation and one owned by someone else get the same 404.
func (h *ReservationHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid reservation id")
	}
	var req updateReservationReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := validateFields(req.Date, req.Time, req.PeopleCount); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	current, err := h.Reservations.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, msgReservationGone)
		}
		return serverError(c, err)
	}
	if h.LockCancelled && current.Status == model.StatusCancelled {
		return fail(c, http.StatusConflict, "Reservation is cancelled")
	}

	if err := h.Reservations.Update(ctx, id, userID, req.Date, req.Time, req.PeopleCount); err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Reservation updated successfully",
	})
}

// Cancel handles DELETE /api/reservations/:id. The status flips to
// cancelled and the record is retained; cancelled is terminal.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid reservation id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	current, err := h.Reservations.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, msgReservationGone)
		}
		return serverError(c, err)
	}
	if h.LockCancelled && current.Status == model.StatusCancelled {
		return fail(c, http.StatusConflict, "Reservation is already cancelled")
	}

	if err := h.Reservations.Cancel(ctx, id, userID); err != nil {
		return serverError(c, err)
	}

	h.publish(queue.ReservationCancelledQueue, queue.ReservationEvent{
		ReservationID: id,
		UserID:        userID,
		RestaurantID:  current.RestaurantID,
		Date:          current.Date,
		Time:          current.Time,
		PeopleCount:   current.PeopleCount,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Reservation cancelled successfully",
	})
}

// ListByRestaurant handles GET /api/reservations/restaurant/:restaurantId.
// The route is admin-gated in the router; this handler only does the
// listing.
func (h *ReservationHandler) ListByRestaurant(c echo.Context) error {
	restaurantID, err := pathID(c, "restaurantId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid restaurant id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	reservations, err := h.Reservations.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return serverError(c, err)
	}

	now := time.Now()
	data := make([]reservationJSON, 0, len(reservations))
	for _, r := range reservations {
		data = append(data, reservationJSON{
			ID:           r.ID,
			UserID:       r.UserID,
			RestaurantID: r.RestaurantID,
			Date:         r.Date,
			Time:         r.Time,
			PeopleCount:  r.PeopleCount,
			Status:       r.DisplayStatus(now),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(data),
		"data":    data,
	})
}

// publish sends a reservation event in the background. The request does
// not wait for the broker and never fails because of it.
func (h *ReservationHandler) publish(queueName string, ev queue.ReservationEvent) {
	if h.Events == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		switch queueName {
		case queue.ReservationCancelledQueue:
			_ = h.Events.ReservationCancelled(ctx, ev)
		default:
			_ = h.Events.ReservationConfirmed(ctx, ev)
		}
	}()
}
