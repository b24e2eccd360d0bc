package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/dineout-gr/dineout-api/internal/model"
)

// ReservationRepo provides CRUD operations for reservations. All
// owner-scoped lookups filter by both reservation id and user id in a
// single WHERE clause, so a reservation belonging to another user is
// indistinguishable from one that does not exist (sql.ErrNoRows either
// way). Date and time are stored in dedicated DATE and TIME columns.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationCols = "reservation_id,user_id,restaurant_id,date,time,people_count,status,created_at,updated_at"

// Create inserts a new upcoming reservation owned by userID and returns
// the generated id. Restaurant existence is the caller's responsibility;
// the rules engine checks the catalog before calling here.
func (r *ReservationRepo) Create(ctx context.Context, userID, restaurantID uint64, date, clock string, peopleCount uint32) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reservations (user_id, restaurant_id, date, time, people_count, status) VALUES (?,?,?,?,?,?)",
		userID, restaurantID, date, clock, peopleCount, model.StatusUpcoming)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByIDForUser returns the reservation with the given id if and only if
// it is owned by userID. Nonexistence and ownership mismatch both come
// back as sql.ErrNoRows.
func (r *ReservationRepo) GetByIDForUser(ctx context.Context, reservationID, userID uint64) (model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE reservation_id=? AND user_id=? LIMIT 1",
		reservationID, userID)
	return scanReservation(row)
}

// Update rewrites the three mutable fields of an owned reservation.
// Status is deliberately untouched. The owner filter makes a cross-user
// update a no-op; callers are expected to have resolved the reservation
// via GetByIDForUser first, so zero affected rows is not treated as an
// error here (MySQL also reports zero when the values are unchanged).
func (r *ReservationRepo) Update(ctx context.Context, reservationID, userID uint64, date, clock string, peopleCount uint32) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE reservations SET date=?, time=?, people_count=? WHERE reservation_id=? AND user_id=?",
		date, clock, peopleCount, reservationID, userID)
	return err
}

// Cancel flips an owned reservation's status to cancelled. The row is
// retained; nothing is ever deleted.
func (r *ReservationRepo) Cancel(ctx context.Context, reservationID, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE reservation_id=? AND user_id=?",
		model.StatusCancelled, reservationID, userID)
	return err
}

// ListByUser returns all reservations owned by userID joined with each
// restaurant's display name and location, most recent first (date
// descending, then time descending).
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.UserReservation, error) {
	const q = `SELECT r.reservation_id, r.user_id, r.restaurant_id, r.date, r.time,
	                  r.people_count, r.status, r.created_at, r.updated_at,
	                  res.name, res.location
	           FROM reservations r
	           JOIN restaurants res ON res.restaurant_id = r.restaurant_id
	           WHERE r.user_id = ?
	           ORDER BY r.date DESC, r.time DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.UserReservation{}
	for rows.Next() {
		var ur model.UserReservation
		var date time.Time
		var clock []byte
		if err := rows.Scan(&ur.ID, &ur.UserID, &ur.RestaurantID, &date, &clock,
			&ur.PeopleCount, &ur.Status, &ur.CreatedAt, &ur.UpdatedAt,
			&ur.RestaurantName, &ur.Location); err != nil {
			return nil, err
		}
		ur.Date = date.Format(model.DateLayout)
		ur.Time = clockString(clock)
		out = append(out, ur)
	}
	return out, rows.Err()
}

// ListByRestaurant returns every reservation placed at a restaurant,
// regardless of owner. Exposed only behind the admin role check.
func (r *ReservationRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE restaurant_id=? ORDER BY date DESC, time DESC",
		restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func scanReservation(s rowScanner) (model.Reservation, error) {
	var res model.Reservation
	var date time.Time
	var clock []byte
	err := s.Scan(&res.ID, &res.UserID, &res.RestaurantID, &date, &clock,
		&res.PeopleCount, &res.Status, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return model.Reservation{}, err
	}
	res.Date = date.Format(model.DateLayout)
	res.Time = clockString(clock)
	return res, nil
}

// clockString converts a raw TIME column value (HH:MM:SS) to HH:MM.
func clockString(raw []byte) string {
	s := string(raw)
	if len(s) > len(model.TimeLayout) {
		s = s[:len(model.TimeLayout)]
	}
	return s
}
