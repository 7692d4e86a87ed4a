// Package mockapi is a local stand-in for the chat backend's user endpoints,
// used for development and tests.
package mockapi

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/rhchat/rhchat-desktop/session"
)

type reply struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type userInfo struct {
	UserName string `json:"userName"`
	UUID     string `json:"uuid"`
}

type Server struct {
	users  map[string]string
	logger log.Logger

	mu       sync.Mutex
	sessions map[string]string
}

// New returns a server accepting the given user name to password pairs.
func New(users map[string]string, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Server{
		users:    users,
		logger:   log.With(logger, "component", "mockapi"),
		sessions: map[string]string{},
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Route("/user", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Get("/logout", s.handleLogout)
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		level.Debug(s.logger).Log("msg", "request", "method", r.Method, "path", r.URL.Path, "request_id", r.Header.Get("X-Request-Id"))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, reply{Code: http.StatusBadRequest, Message: "malformed login request"})
		return
	}
	password, ok := s.users[req.UserName]
	if !ok || password != req.Password {
		writeJSON(w, http.StatusOK, reply{Code: http.StatusUnauthorized, Message: "invalid user name or password"})
		return
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = req.UserName
	s.mu.Unlock()

	level.Info(s.logger).Log("msg", "user logged in", "user", req.UserName)
	writeJSON(w, http.StatusOK, reply{
		Code:    http.StatusOK,
		Message: "login success",
		Data:    userInfo{UserName: req.UserName, UUID: id},
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(session.UserHeader)

	s.mu.Lock()
	user, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusOK, reply{Code: http.StatusUnauthorized, Message: "not logged in"})
		return
	}
	level.Info(s.logger).Log("msg", "user logged out", "user", user)
	writeJSON(w, http.StatusOK, reply{Code: http.StatusOK, Message: "logout success"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
