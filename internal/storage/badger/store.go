// Package badger provides the badgerhold-backed storage layer.
package badger

import (
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
)

// Manager owns the badgerhold store and hands out the typed storage areas.
type Manager struct {
	store  *badgerhold.Store
	logger *common.Logger

	users         *UserStorage
	conversations *ConversationStorage
	kv            *KVStorage
}

// NewManager opens (or creates) the store at the given path.
func NewManager(path string, logger *common.Logger) (*Manager, error) {
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage at %s: %w", path, err)
	}

	logger.Info().Str("path", path).Msg("Storage opened")

	m := &Manager{
		store:  store,
		logger: logger,
	}
	m.users = &UserStorage{store: store, logger: logger}
	m.conversations = &ConversationStorage{store: store, logger: logger}
	m.kv = &KVStorage{store: store}

	return m, nil
}

// Users returns the user storage area.
func (m *Manager) Users() interfaces.UserStore {
	return m.users
}

// Conversations returns the conversation storage area.
func (m *Manager) Conversations() interfaces.ConversationStore {
	return m.conversations
}

// KV returns the system settings area.
func (m *Manager) KV() interfaces.KeyValueStore {
	return m.kv
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}

// Ensure Manager implements StorageManager
var _ interfaces.StorageManager = (*Manager)(nil)
