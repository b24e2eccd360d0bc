package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/dineout-gr/dineout-api/internal/config"
	"github.com/dineout-gr/dineout-api/internal/middleware"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:    "test-secret",
		AccessTTLMin: 60,
		BcryptCost:   4, // minimum cost keeps tests fast
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newMemUserStore()
	h := NewAuthHandler(testConfig(), users)

	body := map[string]any{
		"firstName": "Ana", "lastName": "Lee",
		"email": "ana@x.com", "password": "pw1",
	}
	c, rec := newTestCtx(t, http.MethodPost, "/api/auth/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d, want %d", rec.Code, http.StatusCreated)
	}

	u, err := users.GetByEmail(context.Background(), "ana@x.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	originalHash := u.PasswordHash

	// Same email again, different password.
	body["password"] = "pw2"
	c, rec = newTestCtx(t, http.MethodPost, "/api/auth/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	resp := decodeBody(t, rec)
	if resp["success"] != false {
		t.Errorf("duplicate register success = %v, want false", resp["success"])
	}

	// The original account's credential must be untouched.
	u, err = users.GetByEmail(context.Background(), "ana@x.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if u.PasswordHash != originalHash {
		t.Errorf("password hash changed after failed duplicate registration")
	}
}

func TestRegisterMissingFields(t *testing.T) {
	h := NewAuthHandler(testConfig(), newMemUserStore())
	c, rec := newTestCtx(t, http.MethodPost, "/api/auth/register", map[string]any{
		"firstName": "Ana", "email": "ana@x.com",
	})
	if err := h.Register(c); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLoginUniformFailure(t *testing.T) {
	users := newMemUserStore()
	h := NewAuthHandler(testConfig(), users)

	c, _ := newTestCtx(t, http.MethodPost, "/api/auth/register", map[string]any{
		"firstName": "Ana", "lastName": "Lee",
		"email": "ana@x.com", "password": "pw1",
	})
	if err := h.Register(c); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Wrong password for a real account and a login against an email that
	// does not exist must be indistinguishable.
	cases := []struct {
		name  string
		email string
	}{
		{"wrong password", "ana@x.com"},
		{"unknown email", "nobody@x.com"},
	}
	var messages []string
	for _, tc := range cases {
		c, rec := newTestCtx(t, http.MethodPost, "/api/auth/login", map[string]any{
			"email": tc.email, "password": "wrong",
		})
		if err := h.Login(c); err != nil {
			t.Fatalf("%s: Login() error = %v", tc.name, err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want %d", tc.name, rec.Code, http.StatusUnauthorized)
		}
		resp := decodeBody(t, rec)
		messages = append(messages, resp["message"].(string))
	}
	if messages[0] != messages[1] {
		t.Errorf("failure messages differ: %q vs %q", messages[0], messages[1])
	}
}

// Register, log in with the same credentials, then fetch the profile with
// the issued token going through the real JWT middleware.
func TestRegisterLoginProfileScenario(t *testing.T) {
	cfg := testConfig()
	users := newMemUserStore()
	restaurants := newMemRestaurantStore()
	auth := NewAuthHandler(cfg, users)
	userH := NewUserHandler(users, newMemReservationStore(restaurants))

	c, rec := newTestCtx(t, http.MethodPost, "/api/auth/register", map[string]any{
		"firstName": "Ana", "lastName": "Lee",
		"email": "ana@x.com", "password": "pw1",
	})
	if err := auth.Register(c); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if decodeBody(t, rec)["userId"] == nil {
		t.Fatalf("register response missing userId")
	}

	c, rec = newTestCtx(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email": "ana@x.com", "password": "pw1",
	})
	if err := auth.Login(c); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want %d", rec.Code, http.StatusOK)
	}
	token, _ := decodeBody(t, rec)["token"].(string)
	if token == "" {
		t.Fatalf("login response missing token")
	}

	c, rec = newTestCtx(t, http.MethodGet, "/api/users/profile", nil)
	c.Request().Header.Set("Authorization", "Bearer "+token)
	guarded := middleware.JWTAuth(cfg.JWTSecret)(userH.Profile)
	if err := guarded(c); err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("profile status = %d, want %d", rec.Code, http.StatusOK)
	}
	data := decodeBody(t, rec)["data"].(map[string]any)
	if data["firstName"] != "Ana" || data["lastName"] != "Lee" || data["email"] != "ana@x.com" {
		t.Errorf("profile data = %v, want Ana/Lee/ana@x.com", data)
	}
}
