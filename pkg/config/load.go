package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

// Environment variables read by [ApplyEnv].
const (
	EnvMinTile  = "TILEGRID_MIN_TILE"
	EnvMaxTiles = "TILEGRID_MAX_TILES"
)

// Load reads a configuration file, applies environment overrides and
// defaults. The format is chosen by extension: .toml, .yaml, .yml or .json.
// Fields missing from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	c, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(&c, os.Getenv); err != nil {
		return Config{}, err
	}
	if err := c.ValidateAndSetDefaults(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Parse decodes data in the format named by ext on top of [Default].
func Parse(data []byte, ext string) (Config, error) {
	c := Default()

	var err error
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&c)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &c)
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&c)
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (must be one of: toml, yaml, json)", ext)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s config", ext)
	}
	return c, nil
}

// ApplyEnv overrides fields from the environment. TILEGRID_MIN_TILE accepts a
// single number for both axes or WIDTHxHEIGHT.
func ApplyEnv(c *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvMinTile)); v != "" {
		w, h, ok := strings.Cut(strings.ToLower(v), "x")
		if !ok {
			h = w
		}
		width, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s=%q", EnvMinTile, v)
		}
		height, err := strconv.ParseFloat(h, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s=%q", EnvMinTile, v)
		}
		c.MinTile = Size{Width: width, Height: height}
	}
	if v := strings.TrimSpace(getenv(EnvMaxTiles)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s=%q", EnvMaxTiles, v)
		}
		c.MaxTiles = n
	}
	return nil
}
