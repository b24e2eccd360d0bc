package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dineout-gr/dineout-api/internal/model"
)

// RestaurantRepo reads the restaurant catalog. The catalog is owned and
// lifecycle-managed externally; this service only ever queries it, either
// to serve browse/search requests or to validate that a reservation
// references an existing restaurant.
type RestaurantRepo struct{ DB *sql.DB }

func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{DB: db} }

const restaurantCols = "restaurant_id,name,location,description,image,cuisine,rating,price_range,opening_hours,phone"

// Search returns restaurants matching the optional name and location
// filters. Matching is substring and case-insensitive (the columns use a
// case-insensitive collation, so plain LIKE suffices). Empty filters
// return the whole catalog.
func (r *RestaurantRepo) Search(ctx context.Context, name, location string) ([]model.Restaurant, error) {
	q := "SELECT " + restaurantCols + " FROM restaurants"
	where := []string{}
	args := []any{}
	if s := strings.TrimSpace(name); s != "" {
		where = append(where, "name LIKE CONCAT('%', ?, '%')")
		args = append(args, s)
	}
	if s := strings.TrimSpace(location); s != "" {
		where = append(where, "location LIKE CONCAT('%', ?, '%')")
		args = append(args, s)
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY restaurant_id"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

// GetByID loads a single restaurant together with its menu, ordered by
// category then name for stable output. Returns sql.ErrNoRows when the
// id is unknown.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (model.Restaurant, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+restaurantCols+" FROM restaurants WHERE restaurant_id=? LIMIT 1", id)
	rest, err := scanRestaurant(row)
	if err != nil {
		return model.Restaurant{}, err
	}

	const menuQ = `SELECT menu_item_id, restaurant_id, name, description, price, category, image
	               FROM menu_items WHERE restaurant_id=? ORDER BY category, name`
	rows, err := r.DB.QueryContext(ctx, menuQ, id)
	if err != nil {
		return model.Restaurant{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var item model.MenuItem
		var image sql.NullString
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
			&item.Price, &item.Category, &image); err != nil {
			return model.Restaurant{}, err
		}
		if image.Valid {
			img := image.String
			item.Image = &img
		}
		rest.MenuItems = append(rest.MenuItems, item)
	}
	return rest, rows.Err()
}

// Exists reports whether a restaurant with the given id is present in
// the catalog. Used by reservation creation to validate references.
func (r *RestaurantRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM restaurants WHERE restaurant_id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface{ Scan(dest ...any) error }

func scanRestaurant(s rowScanner) (model.Restaurant, error) {
	var rest model.Restaurant
	var cuisine, priceRange, hours, phone sql.NullString
	var rating sql.NullFloat64
	err := s.Scan(&rest.ID, &rest.Name, &rest.Location, &rest.Description, &rest.Image,
		&cuisine, &rating, &priceRange, &hours, &phone)
	if err != nil {
		return model.Restaurant{}, err
	}
	if cuisine.Valid {
		v := cuisine.String
		rest.Cuisine = &v
	}
	if rating.Valid {
		v := rating.Float64
		rest.Rating = &v
	}
	if priceRange.Valid {
		v := priceRange.String
		rest.PriceRange = &v
	}
	if hours.Valid {
		v := hours.String
		rest.OpeningHours = &v
	}
	if phone.Valid {
		v := phone.String
		rest.Phone = &v
	}
	return rest, nil
}
