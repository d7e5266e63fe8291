package advisor

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/models"
)

// resolveConversation returns an existing active conversation belonging to
// the requesting user, or creates a new one. An invalid or foreign
// conversation ID falls through to creation rather than erroring out.
// Returns nil when no conversation store is configured.
func (s *Service) resolveConversation(ctx context.Context, id, convType string) *models.Conversation {
	if s.conversations == nil {
		return nil
	}

	userID := ""
	if uc := common.GetUserContext(ctx); uc != nil {
		userID = uc.UserID
	}

	if id != "" {
		conv, err := s.conversations.GetConversation(ctx, id)
		if err == nil && conv.IsActive && conv.UserID == userID {
			return conv
		}
		if err == nil {
			s.logger.Debug().Str("conversation_id", id).Msg("Conversation not usable for this user, creating new")
		}
	}

	conv := &models.Conversation{
		ID:       uuid.NewString(),
		UserID:   userID,
		ThreadID: uuid.NewString(),
		Type:     convType,
		IsActive: true,
	}
	if err := s.conversations.SaveConversation(ctx, conv); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to create conversation")
		return nil
	}
	return conv
}

// saveSnapshot stores the latest enriched portfolio on the conversation so
// follow-up turns have context. Failures are logged, never surfaced.
func (s *Service) saveSnapshot(ctx context.Context, conv *models.Conversation, holdings []models.Holding) {
	data, err := json.Marshal(holdings)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to marshal portfolio snapshot")
		return
	}
	conv.LastPortfolio = data
	if err := s.conversations.SaveConversation(ctx, conv); err != nil {
		s.logger.Warn().Err(err).Str("conversation_id", conv.ID).Msg("Failed to save portfolio snapshot")
	}
}
