package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lox/blackjack/internal/game"
)

type startRequest struct {
	Names []string `json:"names"`
}

type actionResponse struct {
	Applied bool       `json:"applied"`
	State   game.State `json:"state"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Count  string            `json:"count,omitempty"`
	Fields []game.FieldError `json:"fields,omitempty"`
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/ws", s.hub.serveWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/game", s.handleState)
		r.Post("/game", s.handleStart)
		r.Post("/game/{action}", s.handleAction)

		r.Get("/leaderboard", s.handleLeaderboard)
		r.Delete("/leaderboard", s.handleClearLeaderboard)
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"requestID", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.State())
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	state, applied, err := s.Do(ActionStart, req.Names)
	if err != nil {
		status, body := errorBody(err)
		s.writeJSON(w, status, body)
		return
	}
	s.writeJSON(w, http.StatusOK, actionResponse{Applied: applied, State: state})
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	if action == ActionStart {
		http.NotFound(w, r)
		return
	}

	state, applied, err := s.Do(action, nil)
	if errors.Is(err, ErrUnknownAction) {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, http.StatusOK, actionResponse{Applied: applied, State: state})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.board == nil {
		s.writeJSON(w, http.StatusOK, []any{})
		return
	}
	s.writeJSON(w, http.StatusOK, s.board.List(r.Context()))
}

func (s *Server) handleClearLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.board != nil {
		if err := s.board.Clear(r.Context()); err != nil {
			s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to clear leaderboard"})
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// errorBody maps engine errors to a status and client payload.
func errorBody(err error) (int, errorResponse) {
	var verr *game.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Count: verr.Count, Fields: verr.Fields}
	case errors.Is(err, game.ErrNotInSetup):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	default:
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	}
}
