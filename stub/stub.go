// Package stub is a small in-memory stand-in for the AssetMart backend,
// good enough to develop and demo the client against without a real server.
package stub

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/assetdesk/assetdesk/api"
)

// apiPrefix matches the path prefix baked into the client's base URLs.
const apiPrefix = "/api/v1"

const healthBody = "Backend server is up and running."

type account struct {
	ID         string
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     string
	CoverImage string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (a *account) toUser() *api.User {
	return &api.User{
		ID:         a.ID,
		Username:   a.Username,
		Email:      a.Email,
		FullName:   a.FullName,
		Avatar:     a.Avatar,
		CoverImage: a.CoverImage,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

type server struct {
	mu       sync.Mutex
	users    map[string]*account // keyed by username
	sessions map[string]string   // access token -> username
	refresh  map[string]string   // refresh token -> username
	assets   map[string][]api.Asset
}

// New returns a handler serving the AssetMart REST surface under /api/v1,
// seeded with a demo account (demo / demo1234) and a few assets per domain.
func New() http.Handler {
	srv := &server{
		users:    make(map[string]*account),
		sessions: make(map[string]string),
		refresh:  make(map[string]string),
		assets:   seedAssets(),
	}
	srv.seedAccount()

	mux := http.NewServeMux()

	mux.HandleFunc("GET /users/help", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, healthBody)
	})

	mux.HandleFunc("POST /users/register", srv.register)
	mux.HandleFunc("POST /users/login", srv.login)
	mux.HandleFunc("POST /users/logout", srv.logout)
	mux.HandleFunc("POST /users/refresh-token", srv.refreshToken)
	mux.HandleFunc("POST /users/change-password", srv.changePassword)
	mux.HandleFunc("GET /users/current-user", srv.currentUser)
	mux.HandleFunc("PATCH /users/update-account", srv.updateAccount)
	mux.HandleFunc("PATCH /users/avatar", srv.updateAvatar)
	mux.HandleFunc("PATCH /users/cover-image", srv.updateCoverImage)

	mux.HandleFunc("GET /gold/assets", srv.listAssets("gold"))
	mux.HandleFunc("GET /cryptocurrency/assets", srv.listAssets("cryptocurrency"))
	mux.HandleFunc("GET /buy-sell/real-estate/assets", srv.listAssets("real-estate"))
	mux.HandleFunc("GET /buy-sell/vehicles/assets", srv.listAssets("vehicles"))
	mux.HandleFunc("GET /buy-sell/properties/assets", srv.listAssets("properties"))

	outer := http.NewServeMux()
	outer.Handle(apiPrefix+"/", http.StripPrefix(apiPrefix, mux))
	return outer
}

// ListenAndServe runs the stub backend on addr until the process dies.
func ListenAndServe(addr string) error {
	httpServer := &http.Server{
		Addr:    addr,
		Handler: New(),
	}
	return httpServer.ListenAndServe()
}

func (s *server) seedAccount() {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	s.users["demo"] = &account{
		ID:        uuid.NewString(),
		Username:  "demo",
		Email:     "demo@assetmart.example",
		FullName:  "Demo Account",
		Password:  "demo1234",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// respond writes the envelope every AssetMart endpoint answers with.
func respond(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"statusCode": status,
		"data":       data,
		"message":    message,
		"success":    status < 400,
	})
}

// bearerAccount resolves the Authorization header to a logged-in account.
// Caller must hold s.mu.
func (s *server) bearerAccount(r *http.Request) (*account, bool) {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || token == "" {
		return nil, false
	}

	username, ok := s.sessions[token]
	if !ok {
		return nil, false
	}

	acc, ok := s.users[username]
	return acc, ok
}

// mintSession issues a fresh token pair. Caller must hold s.mu.
func (s *server) mintSession(username string) (access, refreshTok string) {
	access = uuid.NewString()
	refreshTok = uuid.NewString()
	s.sessions[access] = username
	s.refresh[refreshTok] = username
	return access, refreshTok
}

// dropSessions invalidates every token belonging to username. Caller must
// hold s.mu.
func (s *server) dropSessions(username string) {
	for token, owner := range s.sessions {
		if owner == username {
			delete(s.sessions, token)
		}
	}
	for token, owner := range s.refresh {
		if owner == username {
			delete(s.refresh, token)
		}
	}
}
