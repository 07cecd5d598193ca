package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	famtask "github.com/MrEthical07/famtask"
	"github.com/MrEthical07/famtask/storage"
	"github.com/golang-jwt/jwt/v5"
)

var backendKey = []byte("e2e-test-key")

// fakeBackend is a minimal in-memory rendition of the famtask API used by
// the end-to-end scenarios: login with two seeded accounts, raw-token auth,
// todos, and device-token saves.
type fakeBackend struct {
	mu       sync.Mutex
	todos    map[string][]famtask.Todo
	tokens   map[string]string // userID -> fcm token
	revoked  bool
	nextTodo int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		todos:  make(map[string][]famtask.Todo),
		tokens: make(map[string]string),
	}
}

// revoke makes every authenticated endpoint answer 401 from now on.
func (b *fakeBackend) revoke() {
	b.mu.Lock()
	b.revoked = true
	b.mu.Unlock()
}

func (b *fakeBackend) savedToken(userID string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tokens[userID]
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed body"})
			return
		}

		var user map[string]string
		switch {
		case req.Email == "a@b.com" && req.Password == "1234":
			user = map[string]string{"_id": "u1", "name": "Charlie", "email": "a@b.com", "role": "child"}
		case req.Email == "p@b.com" && req.Password == "1234":
			user = map[string]string{"_id": "u2", "name": "Pat", "email": "p@b.com", "role": "parent"}
		default:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
			return
		}

		token := b.mintToken(t, user["_id"])
		writeJSON(w, http.StatusOK, map[string]any{"token": token, "data": user})
	})

	authed := func(next func(userID string, w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			revoked := b.revoked
			b.mu.Unlock()

			userID := b.verify(r.Header.Get("Authorization"))
			if revoked || userID == "" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
				return
			}
			next(userID, w, r)
		}
	}

	mux.HandleFunc("/api/user/create", authed(func(userID string, w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title string `json:"title"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		b.mu.Lock()
		b.nextTodo++
		todo := famtask.Todo{ID: "t" + strconv.Itoa(b.nextTodo), Title: req.Title, CreatedAt: time.Now()}
		b.todos[userID] = append(b.todos[userID], todo)
		b.mu.Unlock()

		writeJSON(w, http.StatusCreated, map[string]any{"data": todo})
	}))

	mux.HandleFunc("/api/user/todo", authed(func(userID string, w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		todos := append([]famtask.Todo(nil), b.todos[userID]...)
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"data": todos})
	}))

	mux.HandleFunc("/api/token/save", authed(func(_ string, w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID   string `json:"userId"`
			FCMToken string `json:"fcmToken"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		b.mu.Lock()
		b.tokens[req.UserID] = req.FCMToken
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "token saved"})
	}))

	return mux
}

func (b *fakeBackend) mintToken(t *testing.T, userID string) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(backendKey)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

// verify parses a raw (schemeless) Authorization value and returns the
// subject, or "" when the token is absent or invalid.
func (b *fakeBackend) verify(raw string) string {
	if raw == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return backendKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return ""
	}
	sub, _ := claims.GetSubject()
	return sub
}

func newBackendServer(t *testing.T, backend *fakeBackend) string {
	t.Helper()

	server := httptest.NewServer(backend.handler(t))
	t.Cleanup(server.Close)
	return server.URL
}

func newE2EEngine(t *testing.T, backend *fakeBackend, mutate func(*famtask.Config)) (*famtask.Engine, *storage.Memory) {
	t.Helper()

	cfg := famtask.DefaultConfig()
	cfg.API.BaseURL = newBackendServer(t, backend)
	if mutate != nil {
		mutate(&cfg)
	}

	store := storage.NewMemory()
	engine, err := famtask.New().WithConfig(cfg).WithStore(store).Build()
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine, store
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
