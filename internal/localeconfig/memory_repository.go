package localeconfig

import (
	"context"
	"sync"
)

// MemoryRepository keeps locale settings in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	settings *Settings
	feed     *settingsFeed
}

// NewMemoryRepository constructs an in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{feed: newSettingsFeed()}
}

// Get returns the stored settings or ErrSettingsNotFound.
func (r *MemoryRepository) Get(context.Context) (Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.settings == nil {
		return Settings{}, ErrSettingsNotFound
	}
	return r.settings.clone(), nil
}

// Upsert validates and stores settings. Unchanged settings emit no event.
func (r *MemoryRepository) Upsert(_ context.Context, settings Settings) (Settings, error) {
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}

	stored := settings.clone()
	r.mu.Lock()
	previous := r.settings
	r.settings = &stored
	r.mu.Unlock()

	if previous != nil && previous.Equal(stored) {
		return stored.clone(), nil
	}
	changeType := ChangeUpdated
	if previous == nil {
		changeType = ChangeCreated
	}
	r.feed.publish(newChangeEvent(changeType, stored))
	return stored.clone(), nil
}

// Delete clears stored settings and emits a change event.
func (r *MemoryRepository) Delete(context.Context) error {
	r.mu.Lock()
	if r.settings == nil {
		r.mu.Unlock()
		return ErrSettingsNotFound
	}
	r.settings = nil
	r.mu.Unlock()

	r.feed.publish(newChangeEvent(ChangeDeleted, Settings{}))
	return nil
}

// Subscribe delivers change events until ctx is cancelled.
func (r *MemoryRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.feed.subscribe(ctx), nil
}
