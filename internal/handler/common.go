package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// Every response, success or failure, shares the {success, message, ...}
// envelope. Single-resource misses and ownership mismatches share one
// message so that callers cannot probe for existence.

const (
	msgServerError      = "Something went wrong on the server"
	msgReservationGone  = "Reservation not found or not authorized"
	msgRestaurantGone   = "Restaurant not found"
	msgInvalidCredsAuth = "Invalid email or password"
)

// dbTimeout bounds every repository call made from a handler.
const dbTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// fail writes the error envelope with the given status.
func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "message": msg})
}

// serverError logs the underlying cause and answers a generic 500; no
// internal detail leaks to the client.
func serverError(c echo.Context, err error) error {
	c.Logger().Error(err)
	return fail(c, http.StatusInternalServerError, msgServerError)
}

// getUserID extracts the authenticated user id placed in the context by
// the JWT middleware and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
