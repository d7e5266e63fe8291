package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/advisor/internal/interfaces"
)

// ErrKeyNotFound is returned when a setting key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// systemSetting is the stored shape for KV entries.
type systemSetting struct {
	Key   string `badgerhold:"key"`
	Value string
}

// KVStorage holds system settings (schema version, runtime flags).
type KVStorage struct {
	store *badgerhold.Store
}

// Get returns the value for a key.
func (s *KVStorage) Get(ctx context.Context, key string) (string, error) {
	var setting systemSetting
	err := s.store.Get(key, &setting)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return setting.Value, nil
}

// Set stores a value under a key.
func (s *KVStorage) Set(ctx context.Context, key, value string) error {
	if err := s.store.Upsert(key, &systemSetting{Key: key, Value: value}); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// Delete removes a key.
func (s *KVStorage) Delete(ctx context.Context, key string) error {
	err := s.store.Delete(key, systemSetting{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return ErrKeyNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

// Ensure KVStorage implements KeyValueStore
var _ interfaces.KeyValueStore = (*KVStorage)(nil)
