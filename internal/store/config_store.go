package store

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"parley/backend/internal/model"
)

const configStoreVersion = 1

// ConfigStore holds the user-level defaults.
type ConfigStore struct {
	persister *Persister

	mu     sync.RWMutex
	config model.Config

	subMu   sync.Mutex
	subs    map[int]func(model.Config)
	nextSub int
}

func NewConfigStore(persister *Persister) *ConfigStore {
	return &ConfigStore{
		persister: persister,
		config:    model.DefaultConfig(),
		subs:      make(map[int]func(model.Config)),
	}
}

// Load overlays the persisted configuration on the defaults, so fields added
// after the record was written keep their default values.
func (s *ConfigStore) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	cfg := model.DefaultConfig()
	found, err := s.persister.Load(ctx, ConfigStoreKey, configStoreVersion, nil, &cfg)
	if err != nil || !found {
		return err
	}
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	return nil
}

func (s *ConfigStore) Get() model.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.config
	c.Models = slices.Clone(c.Models)
	return c
}

// Update merges patch and commits only when a value changes. It reports
// whether it did.
func (s *ConfigStore) Update(patch model.ConfigPatch) (model.Config, bool) {
	s.mu.Lock()
	next, changed := s.config.Apply(patch)
	if changed {
		s.config = next
	}
	s.mu.Unlock()

	if changed {
		s.commit()
	}
	return s.Get(), changed
}

// Reset restores the defaults.
func (s *ConfigStore) Reset() model.Config {
	s.mu.Lock()
	s.config = model.DefaultConfig()
	s.mu.Unlock()
	s.commit()
	return s.Get()
}

func (s *ConfigStore) Subscribe(fn func(model.Config)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *ConfigStore) commit() {
	if s.persister != nil {
		s.persister.Schedule(ConfigStoreKey, configStoreVersion, func() any { return s.Get() })
	}

	s.subMu.Lock()
	subs := make([]func(model.Config), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	cfg := s.Get()
	for _, fn := range subs {
		fn(cfg)
	}
	slog.Debug("Configuration updated")
}
