package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/advisor/internal/models"
)

// UserStore persists API users.
type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// ConversationStore persists conversation threads.
type ConversationStore interface {
	GetConversation(ctx context.Context, id string) (*models.Conversation, error)
	SaveConversation(ctx context.Context, conv *models.Conversation) error
	DeleteConversation(ctx context.Context, id string) error

	// PruneInactive deletes conversations not updated since the cutoff and
	// returns how many were removed.
	PruneInactive(ctx context.Context, cutoff time.Time) (int, error)
}

// KeyValueStore holds system settings (schema version, runtime flags).
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// StorageManager aggregates the storage areas and owns their lifecycle.
type StorageManager interface {
	Users() UserStore
	Conversations() ConversationStore
	KV() KeyValueStore
	Close() error
}
