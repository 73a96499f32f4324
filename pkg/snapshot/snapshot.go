// Package snapshot reads and writes the persisted form of a tiling.
//
// A snapshot is JSON:
//
//	{
//	  "version": 2,
//	  "tiles": [{"id": "a", "x": 0, "y": 0, "width": 100, "height": 100,
//	             "locked": false, "meta": {}, "constraints": {...}}],
//	  "groups": {"sidebar": ["a"]},
//	  "settings": {"minTile": {"width": 5, "height": 5}, ...}
//	}
//
// Version 1 snapshots carry no settings and no tile constraints. Version 2
// adds both. [Decode] detects the version when the field is missing and
// fills every absent field from the defaults by deep-merging, so older and
// partial files load without migration.
package snapshot

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// Snapshot versions.
const (
	V1             = 1
	V2             = 2
	CurrentVersion = V2
)

// Snapshot is the persisted form of a tiling and its settings.
type Snapshot struct {
	Version  int            `json:"version"`
	Tiles    []tiling.Tile  `json:"tiles"`
	Groups   tiling.Groups  `json:"groups,omitempty"`
	Settings *config.Config `json:"settings,omitempty"`
}

// Capture builds a current-version snapshot of s with cfg as its settings.
func Capture(s *tiling.State, cfg config.Config) Snapshot {
	cfg = cfg.Clone()
	sn := Snapshot{
		Version:  CurrentVersion,
		Tiles:    s.Tiles(),
		Settings: &cfg,
	}
	if g := s.Groups(); len(g) > 0 {
		sn.Groups = g
	}
	return sn
}

// Encode marshals the snapshot of s as indented JSON.
func Encode(s *tiling.State, cfg config.Config) ([]byte, error) {
	data, err := json.MarshalIndent(Capture(s, cfg), "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "encode snapshot")
	}
	return append(data, '\n'), nil
}

// Restore validates the snapshot and rebuilds its state and configuration.
func (sn Snapshot) Restore() (*tiling.State, config.Config, error) {
	cfg := config.Default()
	if sn.Settings != nil {
		cfg = sn.Settings.Clone()
	}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, config.Config{}, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "settings")
	}
	s, err := tiling.New(sn.Tiles, tiling.WithGroups(sn.Groups), tiling.WithEpsilon(cfg.Epsilon))
	if err != nil {
		return nil, config.Config{}, err
	}
	return s, cfg, nil
}

// Decode parses a snapshot of any supported version.
func Decode(data []byte) (Snapshot, error) {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "parse snapshot")
	}
	if raw == nil {
		return Snapshot{}, errors.New(errors.ErrCodeInvalidSnapshot, "snapshot is empty")
	}

	version, err := Detect(raw)
	if err != nil {
		return Snapshot{}, err
	}
	if err := normalize(raw, version); err != nil {
		return Snapshot{}, err
	}

	merged, err := json.Marshal(raw)
	if err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "merge defaults")
	}
	var sn Snapshot
	if err := json.Unmarshal(merged, &sn); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode snapshot")
	}
	sn.Version = CurrentVersion
	return sn, nil
}

// Load decodes and restores a snapshot in one step.
func Load(data []byte) (*tiling.State, config.Config, error) {
	sn, err := Decode(data)
	if err != nil {
		return nil, config.Config{}, err
	}
	return sn.Restore()
}
