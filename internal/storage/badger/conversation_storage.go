package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
)

// ErrConversationNotFound is returned when no conversation matches.
var ErrConversationNotFound = errors.New("conversation not found")

// ConversationStorage persists conversation threads in badgerhold.
type ConversationStorage struct {
	store  *badgerhold.Store
	logger *common.Logger
}

// GetConversation retrieves a conversation by ID.
func (s *ConversationStorage) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.store.Get(id, &conv)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation %s: %w", id, err)
	}
	return &conv, nil
}

// SaveConversation inserts or updates a conversation, stamping UpdatedAt.
func (s *ConversationStorage) SaveConversation(ctx context.Context, conv *models.Conversation) error {
	if conv.ID == "" {
		return fmt.Errorf("conversation ID is required")
	}
	conv.UpdatedAt = time.Now().UTC()
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = conv.UpdatedAt
	}
	if err := s.store.Upsert(conv.ID, conv); err != nil {
		return fmt.Errorf("failed to save conversation %s: %w", conv.ID, err)
	}
	return nil
}

// DeleteConversation removes a conversation by ID.
func (s *ConversationStorage) DeleteConversation(ctx context.Context, id string) error {
	err := s.store.Delete(id, models.Conversation{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return ErrConversationNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete conversation %s: %w", id, err)
	}
	return nil
}

// PruneInactive deletes conversations not updated since the cutoff and
// returns how many were removed.
func (s *ConversationStorage) PruneInactive(ctx context.Context, cutoff time.Time) (int, error) {
	var stale []models.Conversation
	if err := s.store.Find(&stale, badgerhold.Where("UpdatedAt").Lt(cutoff)); err != nil {
		return 0, fmt.Errorf("failed to find stale conversations: %w", err)
	}

	pruned := 0
	for _, conv := range stale {
		if err := s.store.Delete(conv.ID, models.Conversation{}); err != nil {
			s.logger.Warn().Err(err).Str("conversation_id", conv.ID).Msg("Failed to prune conversation")
			continue
		}
		pruned++
	}

	if pruned > 0 {
		s.logger.Info().Int("pruned", pruned).Time("cutoff", cutoff).Msg("Pruned inactive conversations")
	}
	return pruned, nil
}

// Ensure ConversationStorage implements ConversationStore
var _ interfaces.ConversationStore = (*ConversationStorage)(nil)
