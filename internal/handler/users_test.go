package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kantin-pos/api/internal/auth"
	"github.com/kantin-pos/api/internal/database"
	"github.com/kantin-pos/api/internal/handler"
	"github.com/kantin-pos/api/internal/middleware"
)

// --- Mock UserStore ---

type mockUserStore struct {
	users map[uuid.UUID]database.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[uuid.UUID]database.User)}
}

func (m *mockUserStore) ListUsers(_ context.Context) ([]database.User, error) {
	var users []database.User
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *mockUserStore) CreateUser(_ context.Context, arg database.CreateUserParams) (database.User, error) {
	for _, u := range m.users {
		if u.Username == arg.Username || u.Email == arg.Email {
			return database.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
		}
	}
	u := database.User{
		ID:             uuid.New(),
		Username:       arg.Username,
		Email:          arg.Email,
		Name:           arg.Name,
		Role:           arg.Role,
		HashedPassword: arg.HashedPassword,
		CreatedAt:      time.Now(),
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *mockUserStore) GetUserByID(_ context.Context, id uuid.UUID) (database.User, error) {
	u, ok := m.users[id]
	if !ok {
		return database.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func setupUserRouter(store *mockUserStore) *chi.Mux {
	h := handler.NewUserHandler(store)
	r := chi.NewRouter()
	r.Use(middleware.Authenticate(testJWTSecret))
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole("admin"))
		h.RegisterRoutes(r)
	})
	return r
}

// --- Tests ---

func TestCreateUser_HappyPath(t *testing.T) {
	store := newMockUserStore()
	router := setupUserRouter(store)

	claims := &auth.Claims{UserID: uuid.New(), Role: "admin"}
	rr := doAuthRequest(t, router, "POST", "/users", map[string]interface{}{
		"username": "kasir2",
		"password": "rahasia123",
		"name":     "Kasir Dua",
		"email":    "kasir2@kantin.local",
		"role":     "cashier",
	}, claims)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	user := resp["user"].(map[string]interface{})
	if user["username"] != "kasir2" {
		t.Errorf("username: got %v", user["username"])
	}
	if user["role"] != "cashier" {
		t.Errorf("role: got %v", user["role"])
	}
	if _, ok := user["hashed_password"]; ok {
		t.Error("hashed password must not be in the response")
	}
}

func TestCreateUser_MissingFields(t *testing.T) {
	router := setupUserRouter(newMockUserStore())

	claims := &auth.Claims{UserID: uuid.New(), Role: "admin"}
	rr := doAuthRequest(t, router, "POST", "/users", map[string]interface{}{
		"username": "kasir2",
		"password": "rahasia123",
	}, claims)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	router := setupUserRouter(newMockUserStore())

	claims := &auth.Claims{UserID: uuid.New(), Role: "admin"}
	rr := doAuthRequest(t, router, "POST", "/users", map[string]interface{}{
		"username": "kasir2",
		"password": "rahasia123",
		"name":     "Kasir Dua",
		"email":    "not-an-email",
		"role":     "cashier",
	}, claims)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCreateUser_InvalidRole(t *testing.T) {
	router := setupUserRouter(newMockUserStore())

	claims := &auth.Claims{UserID: uuid.New(), Role: "admin"}
	rr := doAuthRequest(t, router, "POST", "/users", map[string]interface{}{
		"username": "kasir2",
		"password": "rahasia123",
		"name":     "Kasir Dua",
		"email":    "kasir2@kantin.local",
		"role":     "superuser",
	}, claims)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	store := newMockUserStore()
	router := setupUserRouter(store)

	claims := &auth.Claims{UserID: uuid.New(), Role: "admin"}
	body := map[string]interface{}{
		"username": "kasir2",
		"password": "rahasia123",
		"name":     "Kasir Dua",
		"email":    "kasir2@kantin.local",
		"role":     "cashier",
	}

	rr := doAuthRequest(t, router, "POST", "/users", body, claims)
	if rr.Code != http.StatusCreated {
		t.Fatalf("first create: got %d; body: %s", rr.Code, rr.Body.String())
	}

	rr = doAuthRequest(t, router, "POST", "/users", body, claims)
	if rr.Code != http.StatusConflict {
		t.Errorf("second create status: got %d, want %d", rr.Code, http.StatusConflict)
	}
	resp := decodeResponse(t, rr)
	if resp["error"] != "username or email already exists" {
		t.Errorf("error: got %v", resp["error"])
	}
}

func TestCreateUser_RequiresAdmin(t *testing.T) {
	router := setupUserRouter(newMockUserStore())

	claims := &auth.Claims{UserID: uuid.New(), Role: "cashier"}
	rr := doAuthRequest(t, router, "POST", "/users", map[string]interface{}{
		"username": "kasir2",
		"password": "rahasia123",
		"name":     "Kasir Dua",
		"email":    "kasir2@kantin.local",
		"role":     "cashier",
	}, claims)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusForbidden)
	}
}

func TestListUsers(t *testing.T) {
	store := newMockUserStore()
	store.CreateUser(context.Background(), database.CreateUserParams{
		Username: "kasir1", Email: "kasir1@kantin.local", Name: "Kasir Satu", Role: "cashier", HashedPassword: "x",
	})
	store.CreateUser(context.Background(), database.CreateUserParams{
		Username: "admin", Email: "admin@kantin.local", Name: "Admin", Role: "admin", HashedPassword: "x",
	})
	router := setupUserRouter(store)

	claims := &auth.Claims{UserID: uuid.New(), Role: "admin"}
	rr := doAuthRequest(t, router, "GET", "/users", nil, claims)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeResponse(t, rr)
	users := resp["users"].([]interface{})
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}
