package snapshot

import (
	"encoding/json"

	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/errors"
)

// Detect returns the version of a raw snapshot. Without an explicit version
// field, settings or tile constraints mark version 2.
func Detect(raw map[string]any) (int, error) {
	if v, ok := raw["version"]; ok {
		n, ok := v.(json.Number)
		if !ok {
			return 0, errors.New(errors.ErrCodeInvalidSnapshot, "version must be a number, got %v", v)
		}
		version, err := n.Int64()
		if err != nil || version < V1 {
			return 0, errors.New(errors.ErrCodeInvalidSnapshot, "invalid version %s", n)
		}
		if version > CurrentVersion {
			return 0, errors.New(errors.ErrCodeUnsupported, "snapshot version %d is newer than supported version %d", version, CurrentVersion)
		}
		return int(version), nil
	}
	if _, ok := raw["settings"]; ok {
		return V2, nil
	}
	tiles, _ := raw["tiles"].([]any)
	for _, t := range tiles {
		if m, ok := t.(map[string]any); ok {
			if _, ok := m["constraints"]; ok {
				return V2, nil
			}
		}
	}
	return V1, nil
}

// normalize upgrades raw in place to the current layout and fills defaults.
func normalize(raw map[string]any, version int) error {
	tiles, ok := raw["tiles"].([]any)
	if !ok {
		return errors.New(errors.ErrCodeInvalidSnapshot, "snapshot has no tiles array")
	}

	if version == V1 {
		delete(raw, "settings")
	}
	for i, t := range tiles {
		m, ok := t.(map[string]any)
		if !ok {
			return errors.New(errors.ErrCodeInvalidSnapshot, "tiles[%d] is not an object", i)
		}
		if version == V1 {
			delete(m, "constraints")
		}
		tiles[i] = merge(m, tileDefaults())
	}

	settings, _ := raw["settings"].(map[string]any)
	defaults, err := settingsDefaults()
	if err != nil {
		return err
	}
	raw["settings"] = merge(settings, defaults)
	return nil
}

func tileDefaults() map[string]any {
	return map[string]any{
		"locked": false,
		"meta":   map[string]any{},
	}
}

func settingsDefaults() (map[string]any, error) {
	data, err := json.Marshal(config.Default())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode default settings")
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode default settings")
	}
	return m, nil
}

// merge fills the keys missing from dst with values from defaults,
// descending into nested objects. Values present in dst always win, and
// nil dst is treated as empty.
func merge(dst, defaults map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(defaults))
	}
	for k, dv := range defaults {
		cur, ok := dst[k]
		if !ok || cur == nil {
			dst[k] = dv
			continue
		}
		cm, cok := cur.(map[string]any)
		dm, dok := dv.(map[string]any)
		if cok && dok {
			dst[k] = merge(cm, dm)
		}
	}
	return dst
}
