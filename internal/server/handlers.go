package server

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/models"
)

// handleHealth responds to GET/HEAD /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion responds to GET /api/version with build info.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleConfig responds to GET /api/config with the non-secret runtime
// configuration. Keys never leave the process.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	cfg := s.app.Config
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":              cfg.Environment,
		"analysis_provider":        cfg.Clients.AI.AnalysisProvider,
		"recommendations_provider": cfg.Clients.AI.RecommendationsProvider,
		"chat_provider":            cfg.Clients.AI.ChatProvider,
		"ai_debug":                 cfg.Clients.AI.Debug,
		"log_level":                cfg.Logging.Level,
	})
}

// handleAnalyze handles POST /api/portfolio/analyze.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.AnalyzeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if len(req.Portfolio) == 0 {
		WriteError(w, http.StatusBadRequest, "Portfolio data is required")
		return
	}

	resp, err := s.app.Advisor.Analyze(r.Context(), &req)
	if err != nil {
		s.logger.Error().Err(err).Msg("Portfolio analysis failed")
		WriteError(w, http.StatusInternalServerError, "Portfolio analysis failed")
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

// handleRecommendations handles POST /api/portfolio/recommendations.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.RecommendRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if len(req.Portfolio) == 0 {
		WriteError(w, http.StatusBadRequest, "Portfolio data is required")
		return
	}

	resp, err := s.app.Advisor.Recommend(r.Context(), &req)
	if err != nil {
		s.logger.Error().Err(err).Msg("Portfolio recommendations failed")
		WriteError(w, http.StatusInternalServerError, "Portfolio recommendations failed")
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

// handleChat handles POST /api/portfolio/chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ChatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		WriteError(w, http.StatusBadRequest, "Message is required")
		return
	}

	resp, err := s.app.Advisor.Chat(r.Context(), &req)
	if err != nil {
		s.logger.Error().Err(err).Msg("Chat failed")
		WriteError(w, http.StatusInternalServerError, "Chat failed")
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

// handleTickerInfo handles GET /api/portfolio/ticker-info?symbol=AAPL.
func (s *Server) handleTickerInfo(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "Query parameter 'symbol' is required")
		return
	}

	info, err := s.app.Advisor.TickerInfo(r.Context(), symbol)
	if err != nil {
		s.logger.Info().Err(err).Str("symbol", symbol).Msg("Ticker lookup failed")
		WriteError(w, http.StatusNotFound, "Ticker not found: "+symbol)
		return
	}
	WriteJSON(w, http.StatusOK, info)
}
