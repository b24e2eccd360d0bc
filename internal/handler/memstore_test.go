package handler

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"github.com/dineout-gr/dineout-api/internal/model"
	"github.com/dineout-gr/dineout-api/internal/repository"
	"github.com/dineout-gr/dineout-api/internal/utils"
)

// In-memory store fakes implementing the handler interfaces. They mirror
// the MySQL repositories' contracts: duplicate emails surface as
// repository.ErrEmailExists and owner-scoped reservation lookups return
// sql.ErrNoRows for both absence and ownership mismatch.

type memUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[uint64]model.User{}}
}

func (s *memUserStore) Create(_ context.Context, firstName, lastName, email, password string, cost int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.nextID++
	s.users[s.nextID] = model.User{
		ID:           s.nextID,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
	}
	return s.nextID, nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

func (s *memUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (s *memUserStore) UpdateProfile(_ context.Context, id uint64, firstName, lastName, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email && u.ID != id {
			return repository.ErrEmailExists
		}
	}
	u, ok := s.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.Email = email
	s.users[id] = u
	return nil
}

type memRestaurantStore struct {
	restaurants map[uint64]model.Restaurant
}

func newMemRestaurantStore(restaurants ...model.Restaurant) *memRestaurantStore {
	s := &memRestaurantStore{restaurants: map[uint64]model.Restaurant{}}
	for _, r := range restaurants {
		s.restaurants[r.ID] = r
	}
	return s
}

func (s *memRestaurantStore) Search(_ context.Context, name, location string) ([]model.Restaurant, error) {
	out := []model.Restaurant{}
	for _, r := range s.restaurants {
		if name != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(name)) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(r.Location), strings.ToLower(location)) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memRestaurantStore) GetByID(_ context.Context, id uint64) (model.Restaurant, error) {
	r, ok := s.restaurants[id]
	if !ok {
		return model.Restaurant{}, sql.ErrNoRows
	}
	return r, nil
}

func (s *memRestaurantStore) Exists(_ context.Context, id uint64) (bool, error) {
	_, ok := s.restaurants[id]
	return ok, nil
}

type memReservationStore struct {
	mu          sync.Mutex
	nextID      uint64
	items       map[uint64]model.Reservation
	restaurants *memRestaurantStore
}

func newMemReservationStore(restaurants *memRestaurantStore) *memReservationStore {
	return &memReservationStore{items: map[uint64]model.Reservation{}, restaurants: restaurants}
}

func (s *memReservationStore) Create(_ context.Context, userID, restaurantID uint64, date, clock string, peopleCount uint32) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.items[s.nextID] = model.Reservation{
		ID:           s.nextID,
		UserID:       userID,
		RestaurantID: restaurantID,
		Date:         date,
		Time:         clock,
		PeopleCount:  peopleCount,
		Status:       model.StatusUpcoming,
	}
	return s.nextID, nil
}

func (s *memReservationStore) GetByIDForUser(_ context.Context, reservationID, userID uint64) (model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[reservationID]
	if !ok || r.UserID != userID {
		return model.Reservation{}, sql.ErrNoRows
	}
	return r, nil
}

func (s *memReservationStore) Update(_ context.Context, reservationID, userID uint64, date, clock string, peopleCount uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[reservationID]
	if !ok || r.UserID != userID {
		return nil
	}
	r.Date = date
	r.Time = clock
	r.PeopleCount = peopleCount
	s.items[reservationID] = r
	return nil
}

func (s *memReservationStore) Cancel(_ context.Context, reservationID, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[reservationID]
	if !ok || r.UserID != userID {
		return nil
	}
	r.Status = model.StatusCancelled
	s.items[reservationID] = r
	return nil
}

func (s *memReservationStore) ListByUser(_ context.Context, userID uint64) ([]model.UserReservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.UserReservation{}
	for _, r := range s.items {
		if r.UserID != userID {
			continue
		}
		ur := model.UserReservation{Reservation: r}
		if rest, ok := s.restaurants.restaurants[r.RestaurantID]; ok {
			ur.RestaurantName = rest.Name
			ur.Location = rest.Location
		}
		out = append(out, ur)
	}
	// Date descending, then time descending; string compare works for
	// the ISO-style layouts.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time > out[j].Time
	})
	return out, nil
}

func (s *memReservationStore) ListByRestaurant(_ context.Context, restaurantID uint64) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Reservation{}
	for _, r := range s.items {
		if r.RestaurantID == restaurantID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
