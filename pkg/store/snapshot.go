package store

import (
	"context"
	"time"

	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/snapshot"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// SaveSnapshot encodes s and cfg and stores them under key.
func SaveSnapshot(ctx context.Context, st Store, key string, s *tiling.State, cfg config.Config) error {
	start := time.Now()
	data, err := snapshot.Encode(s, cfg)
	if err == nil {
		err = st.Set(ctx, key, data)
	}
	observability.Store().OnSave(ctx, Backend(st), key, len(data), time.Since(start), err)
	return err
}

// LoadSnapshot reads and decodes the snapshot under key. A missing key is a
// NOT_FOUND error.
func LoadSnapshot(ctx context.Context, st Store, key string) (*tiling.State, config.Config, error) {
	start := time.Now()
	data, ok, err := st.Get(ctx, key)
	observability.Store().OnLoad(ctx, Backend(st), key, ok, time.Since(start), err)
	if err != nil {
		return nil, config.Config{}, err
	}
	if !ok {
		return nil, config.Config{}, errors.New(errors.ErrCodeNotFound, "no snapshot stored under %q", key)
	}
	return snapshot.Load(data)
}
