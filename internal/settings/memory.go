package settings

import (
	"context"
	"sync"

	"github.com/nao1215/pagescan/internal/model"
)

// MemoryStore keeps settings in a map guarded by a mutex.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]model.Settings
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]model.Settings)}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, userID string) (model.Settings, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return model.Settings{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if settings, ok := s.users[userID]; ok {
		return settings, nil
	}
	return model.DefaultSettings(), nil
}

// Toggle implements Store.
func (s *MemoryStore) Toggle(_ context.Context, userID string, field model.SettingField) (model.Settings, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return model.Settings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[userID]
	if !ok {
		current = model.DefaultSettings()
	}
	next, err := current.Toggle(field)
	if err != nil {
		return model.Settings{}, err
	}
	s.users[userID] = next

	return next, nil
}
