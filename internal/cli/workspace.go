package cli

import (
	"context"
	"os"
	"strings"

	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/engine"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/snapshot"
	"github.com/matzehuels/tilegrid/pkg/store"
)

// workspace is the layout a command works on and where it came from.
type workspace struct {
	eng   *engine.Engine
	store store.Store // nil when backed by --file
}

// open loads the layout named by the persistent flags. A missing file or key
// is an error unless create is set, in which case a fresh layout is started.
func (c *CLI) open(ctx context.Context, create bool) (*workspace, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger, "load", "location", c.location())

	opts := engine.Options{Logger: logger}
	cfg, haveCfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if haveCfg {
		opts.Config = cfg
	}

	ws := &workspace{}
	if c.storeURL != "" {
		st, err := c.openStore(ctx)
		if err != nil {
			return nil, err
		}
		ws.store = st
		if !create {
			if _, ok, err := st.Get(ctx, c.key); err != nil {
				st.Close()
				return nil, err
			} else if !ok {
				st.Close()
				return nil, errors.New(errors.ErrCodeNotFound, "no layout under key %q; run '%s init' first", c.key, appName)
			}
		}
		if ws.eng, err = engine.Open(ctx, st, c.key, opts); err != nil {
			st.Close()
			return nil, err
		}
	} else {
		data, err := os.ReadFile(c.file)
		switch {
		case os.IsNotExist(err) && create:
			ws.eng, err = engine.New(nil, opts)
		case os.IsNotExist(err):
			return nil, errors.New(errors.ErrCodeNotFound, "%s does not exist; run '%s init' first", c.file, appName)
		case err != nil:
			return nil, errors.Wrap(errors.ErrCodeStore, err, "read %s", c.file)
		default:
			ws.eng, err = c.engineFromSnapshot(data, opts)
		}
		if err != nil {
			return nil, err
		}
	}

	// an explicit config file wins over settings stored in the snapshot
	if haveCfg {
		if err := ws.eng.SetConfig(cfg); err != nil {
			ws.close()
			return nil, err
		}
	}
	prog.done("tiles", ws.eng.State().Len())
	return ws, nil
}

func (c *CLI) engineFromSnapshot(data []byte, opts engine.Options) (*engine.Engine, error) {
	s, cfg, err := snapshot.Load(data)
	if err != nil {
		return nil, err
	}
	opts.Config = cfg
	return engine.New(s, opts)
}

// loadConfig reads --config when given.
func (c *CLI) loadConfig() (config.Config, bool, error) {
	if c.configPath == "" {
		return config.Config{}, false, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, false, err
	}
	return cfg, true, nil
}

// openStore opens --store, showing a spinner for network backends.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	if !isNetworkStore(c.storeURL) {
		return store.Open(ctx, c.storeURL)
	}
	var st store.Store
	err := withSpinner(ctx, "Connecting to "+c.storeURL+"...", func(ctx context.Context) error {
		var err error
		st, err = store.Open(ctx, c.storeURL)
		return err
	})
	return st, err
}

func isNetworkStore(url string) bool {
	for _, p := range []string{"redis://", "rediss://", "mongodb://", "mongodb+srv://"} {
		if strings.HasPrefix(url, p) {
			return true
		}
	}
	return false
}

// location describes where the layout lives, for messages.
func (c *CLI) location() string {
	if c.storeURL != "" {
		return c.storeURL + "#" + c.key
	}
	return c.file
}

// save writes the current layout back to where it came from.
func (c *CLI) save(ctx context.Context, ws *workspace) error {
	prog := newProgress(loggerFromContext(ctx), "save", "location", c.location())
	if ws.store != nil {
		if err := ws.eng.Save(ctx, ws.store, c.key); err != nil {
			return err
		}
	} else {
		data, err := ws.eng.Snapshot()
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.file, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeStore, err, "write %s", c.file)
		}
	}
	prog.done()
	return nil
}

func (ws *workspace) close() {
	if ws.store != nil {
		_ = ws.store.Close()
	}
}
