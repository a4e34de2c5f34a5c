package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"

	"postdeck/internal/store"
	"postdeck/pkg/auth"
)

type userStoreStub struct {
	users map[string]store.User
}

func newUserStoreStub() *userStoreStub {
	return &userStoreStub{users: map[string]store.User{}}
}

func (s *userStoreStub) CreateUser(ctx context.Context, username, hashedPassword string) (store.User, error) {
	user := store.User{ID: "u-" + username, Username: username, Password: hashedPassword, CreatedAt: time.Now()}
	s.users[username] = user
	return user, nil
}

func (s *userStoreStub) GetUserByUsername(ctx context.Context, username string) (store.User, error) {
	user, ok := s.users[username]
	if !ok {
		return store.User{}, store.ErrNotFound
	}
	return user, nil
}

func setupAuthRouter(users *userStoreStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger, _ := test.NewNullLogger()
	handler := NewAuthHandler(users, []byte("test-secret"), time.Hour, logger)
	router.POST("/api/auth/register", handler.Register)
	router.POST("/api/auth/login", handler.Login)
	return router
}

func TestRegisterReturnsTokenAndUser(t *testing.T) {
	users := newUserStoreStub()
	router := setupAuthRouter(users)

	w := postJSON(router, "/api/auth/register", map[string]any{"username": "marie", "password": "correcthorse"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.User.Username != "marie" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
	if _, err := auth.ValidateJWT(resp.Token, []byte("test-secret")); err != nil {
		t.Fatalf("token does not validate: %v", err)
	}

	stored := users.users["marie"]
	if stored.Password == "correcthorse" {
		t.Fatal("password stored in clear")
	}
}

func TestRegisterRejectsShortCredentials(t *testing.T) {
	router := setupAuthRouter(newUserStoreStub())

	for _, body := range []map[string]any{
		{"username": "ab", "password": "correcthorse"},
		{"username": "marie", "password": "short"},
	} {
		w := postJSON(router, "/api/auth/register", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d", body, w.Code)
		}
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := newUserStoreStub()
	router := setupAuthRouter(users)

	postJSON(router, "/api/auth/register", map[string]any{"username": "marie", "password": "correcthorse"})
	w := postJSON(router, "/api/auth/register", map[string]any{"username": "marie", "password": "otherpassword"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestLoginChecksPassword(t *testing.T) {
	users := newUserStoreStub()
	router := setupAuthRouter(users)

	postJSON(router, "/api/auth/register", map[string]any{"username": "marie", "password": "correcthorse"})

	w := postJSON(router, "/api/auth/login", map[string]any{"username": "marie", "password": "correcthorse"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(router, "/api/auth/login", map[string]any{"username": "marie", "password": "wrongpassword"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", w.Code)
	}

	w = postJSON(router, "/api/auth/login", map[string]any{"username": "nobody", "password": "correcthorse"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", w.Code)
	}
}
