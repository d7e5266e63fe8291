package server

import "net/http"

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Portfolio
	mux.HandleFunc("/api/portfolio/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/portfolio/recommendations", s.handleRecommendations)
	mux.HandleFunc("/api/portfolio/chat", s.handleChat)
	mux.HandleFunc("/api/portfolio/ticker-info", s.handleTickerInfo)

	// Users
	mux.HandleFunc("/api/users/register", s.handleRegister)
}
