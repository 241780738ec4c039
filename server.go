package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"i4.energy/across/cellular/cellular"
)

// Server exposes the state of the cellular context over HTTP
type Server struct {
	Logger   *slog.Logger
	Cellular *cellular.Context
	// Metrics serves /metrics when set
	Metrics http.Handler
	// Health reports why the gateway is unhealthy, nil when it is fine
	Health func() error
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /sockets", s.handleSockets)
	if s.Metrics != nil {
		mux.Handle("GET /metrics", s.Metrics)
	}
	mux.ServeHTTP(w, r)
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.Health != nil {
		if err := s.Health(); err != nil {
			s.sendError(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleSockets returns a JSON snapshot of both socket pools
func (s *Server) handleSockets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Cellular.Snapshot()); err != nil {
		s.Logger.Error("Failed to encode snapshot", "error", err)
	}
}
