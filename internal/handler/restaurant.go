package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dineout-gr/dineout-api/internal/model"
)

// RestaurantStore is the read-only catalog the handlers consult.
type RestaurantStore interface {
	Search(ctx context.Context, name, location string) ([]model.Restaurant, error)
	GetByID(ctx context.Context, id uint64) (model.Restaurant, error)
	Exists(ctx context.Context, id uint64) (bool, error)
}

// RestaurantHandler serves the public browse/search endpoints.
type RestaurantHandler struct {
	Restaurants RestaurantStore
}

func NewRestaurantHandler(restaurants RestaurantStore) *RestaurantHandler {
	return &RestaurantHandler{Restaurants: restaurants}
}

// List handles GET /api/restaurants?name=&location= — case-insensitive
// substring filters on name and location, both optional.
func (h *RestaurantHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	restaurants, err := h.Restaurants.Search(ctx, c.QueryParam("name"), c.QueryParam("location"))
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(restaurants),
		"data":    restaurants,
	})
}

// Get handles GET /api/restaurants/:id, returning the restaurant with
// its full menu.
func (h *RestaurantHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid restaurant id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rest, err := h.Restaurants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, msgRestaurantGone)
		}
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    rest,
	})
}
