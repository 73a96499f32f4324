package engine

import (
	"context"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/snapshot"
	"github.com/matzehuels/tilegrid/pkg/store"
)

// Snapshot encodes the current tiling and configuration.
func (e *Engine) Snapshot() ([]byte, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshot.Encode(e.state, e.cfg)
}

// Restore decodes data and loads it as the current layout. The previous
// tiling becomes an undo step.
func (e *Engine) Restore(data []byte) error {
	s, cfg, err := snapshot.Load(data)
	if err != nil {
		return err
	}
	return e.Load(s, cfg)
}

// Save writes the current layout to st under key.
func (e *Engine) Save(ctx context.Context, st store.Store, key string) error {
	e.mu.RLock()
	s, cfg := e.state, e.cfg
	e.mu.RUnlock()
	if err := store.SaveSnapshot(ctx, st, key, s, cfg); err != nil {
		return err
	}
	e.logger.Debug("saved layout", "backend", store.Backend(st), "key", key, "tiles", s.Len())
	return nil
}

// Open returns an engine over the layout stored under key. When the key is
// absent a fresh layout is started with opts.Config.
func Open(ctx context.Context, st store.Store, key string, opts Options) (*Engine, error) {
	s, cfg, err := store.LoadSnapshot(ctx, st, key)
	if errors.Is(err, errors.ErrCodeNotFound) {
		return New(nil, opts)
	}
	if err != nil {
		return nil, err
	}
	opts.Config = cfg
	return New(s, opts)
}
