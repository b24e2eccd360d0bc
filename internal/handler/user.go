package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dineout-gr/dineout-api/internal/repository"
)

// UserHandler serves the authenticated user's own profile and
// reservation listing.
type UserHandler struct {
	Users             UserStore
	ReservationsStore ReservationStore
}

func NewUserHandler(users UserStore, reservations ReservationStore) *UserHandler {
	return &UserHandler{Users: users, ReservationsStore: reservations}
}

type updateProfileReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type userReservationJSON struct {
	ID             uint64 `json:"id"`
	RestaurantID   uint64 `json:"restaurantId"`
	RestaurantName string `json:"restaurantName"`
	Location       string `json:"location"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	PeopleCount    uint32 `json:"peopleCount"`
	Status         string `json:"status"`
}

// Profile handles GET /api/users/profile.
func (h *UserHandler) Profile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": userPart{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		},
	})
}

// UpdateProfile handles PUT /api/users/profile. Fields left empty keep
// their current value; a new email colliding with another account
// answers 400.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	current, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return serverError(c, err)
	}

	// Partial update: missing fields fall back to the stored values.
	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		firstName = current.FirstName
	}
	lastName := strings.TrimSpace(req.LastName)
	if lastName == "" {
		lastName = current.LastName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		email = current.Email
	}

	if err := h.Users.UpdateProfile(ctx, userID, firstName, lastName, email); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return fail(c, http.StatusBadRequest, "Email already in use")
		}
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Profile updated successfully",
	})
}

// Reservations handles GET /api/users/reservations: the caller's
// reservations joined with restaurant name and location, most recent
// first. The completed status is projected here at read time, never
// stored.
func (h *UserHandler) Reservations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	reservations, err := h.ReservationsStore.ListByUser(ctx, userID)
	if err != nil {
		return serverError(c, err)
	}

	now := time.Now()
	data := make([]userReservationJSON, 0, len(reservations))
	for _, r := range reservations {
		data = append(data, userReservationJSON{
			ID:             r.ID,
			RestaurantID:   r.RestaurantID,
			RestaurantName: r.RestaurantName,
			Location:       r.Location,
			Date:           r.Date,
			Time:           r.Time,
			PeopleCount:    r.PeopleCount,
			Status:         r.DisplayStatus(now),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(data),
		"data":    data,
	})
}
