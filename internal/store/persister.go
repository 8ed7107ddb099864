package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"parley/backend/internal/repository"
)

const (
	ChatStoreKey   = "chat-store"
	ConfigStoreKey = "config-store"
)

// record is the on-disk envelope of every persisted store.
type record struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
}

// Migration upgrades a state blob written at one version to the next one.
type Migration func(state json.RawMessage) (json.RawMessage, error)

type source struct {
	version int
	state   func() any
}

// Persister coalesces store commits made within a short window into one
// write per key. The state is read at flush time, so a batch always writes
// the newest snapshot.
type Persister struct {
	kv     repository.KVStore
	window time.Duration

	mu     sync.Mutex
	dirty  map[string]source
	timer  *time.Timer
	closed bool

	flushMu sync.Mutex
}

func NewPersister(kv repository.KVStore, window time.Duration) *Persister {
	return &Persister{
		kv:     kv,
		window: window,
		dirty:  make(map[string]source),
	}
}

// Schedule marks key dirty. The write happens when the current window ends.
func (p *Persister) Schedule(key string, version int, state func() any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.dirty[key] = source{version: version, state: state}
	if p.timer == nil {
		p.timer = time.AfterFunc(p.window, func() {
			if err := p.Flush(context.Background()); err != nil {
				slog.Warn("Failed to persist store state", "error", err)
			}
		})
	}
}

// FlushNow marks key dirty and writes every pending key immediately.
func (p *Persister) FlushNow(ctx context.Context, key string, version int, state func() any) error {
	p.mu.Lock()
	if !p.closed {
		p.dirty[key] = source{version: version, state: state}
	}
	p.mu.Unlock()
	return p.Flush(ctx)
}

// Flush writes every pending key.
func (p *Persister) Flush(ctx context.Context) error {
	p.flushMu.Lock()
	defer p.flushMu.Unlock()

	p.mu.Lock()
	pending := p.dirty
	p.dirty = make(map[string]source)
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.mu.Unlock()

	var errs []error
	for key, src := range pending {
		state, err := json.Marshal(src.state())
		if err != nil {
			errs = append(errs, fmt.Errorf("could not encode %s: %w", key, err))
			continue
		}
		blob, err := json.Marshal(record{Version: src.version, State: state})
		if err != nil {
			errs = append(errs, fmt.Errorf("could not encode %s: %w", key, err))
			continue
		}
		if err := p.kv.Set(ctx, key, blob); err != nil {
			errs = append(errs, fmt.Errorf("could not write %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Close flushes pending writes and rejects later ones.
func (p *Persister) Close(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return p.Flush(ctx)
}

// Load reads key and decodes its state into dst, running migrations for
// records older than version. A missing key reports false and no error.
func (p *Persister) Load(ctx context.Context, key string, version int, migrations map[int]Migration, dst any) (bool, error) {
	blob, err := p.kv.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not read %s: %w", key, err)
	}

	var rec record
	if err := json.Unmarshal(blob, &rec); err != nil {
		return false, fmt.Errorf("could not decode %s: %w", key, err)
	}
	if rec.Version > version {
		return false, fmt.Errorf("%s has version %d, newer than supported %d", key, rec.Version, version)
	}

	state := rec.State
	for v := rec.Version; v < version; v++ {
		migrate, ok := migrations[v]
		if !ok {
			return false, fmt.Errorf("no migration for %s from version %d", key, v)
		}
		if state, err = migrate(state); err != nil {
			return false, fmt.Errorf("migrating %s from version %d: %w", key, v, err)
		}
		slog.Info("Migrated persisted state", "key", key, "from", v, "to", v+1)
	}

	if err := json.Unmarshal(state, dst); err != nil {
		return false, fmt.Errorf("could not decode %s state: %w", key, err)
	}
	return true, nil
}
