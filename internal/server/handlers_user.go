package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/advisor/internal/models"
)

// handleRegister handles POST /api/users/register: creates an API user and
// issues their key. The key is only ever returned here; regeneration goes
// through the admin CLI.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.RegisterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		WriteError(w, http.StatusBadRequest, "Username is required")
		return
	}

	users := s.app.Storage.Users()
	if existing, err := users.GetUserByUsername(r.Context(), username); err == nil && existing != nil {
		WriteError(w, http.StatusConflict, "Username is already registered")
		return
	}

	user := &models.User{
		ID:          uuid.NewString(),
		Username:    username,
		Email:       strings.TrimSpace(req.Email),
		APIKey:      models.GenerateAPIKey(),
		IsAPIActive: true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := users.SaveUser(r.Context(), user); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("Failed to register user")
		WriteError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", username).Msg("User registered")
	WriteJSON(w, http.StatusCreated, models.RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		APIKey:   user.APIKey,
	})
}
