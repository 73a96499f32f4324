package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// exercise runs the common Store contract against st.
func exercise(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := st.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v, want miss", ok, err)
	}

	if err := st.Set(ctx, "layout", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, ok, err := st.Get(ctx, "layout")
	if err != nil || !ok || string(data) != `{"a":1}` {
		t.Fatalf("Get() = %q, %v, %v, want stored value", data, ok, err)
	}

	if err := st.Set(ctx, "layout", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("Set() overwrite error: %v", err)
	}
	data, _, _ = st.Get(ctx, "layout")
	if string(data) != `{"a":2}` {
		t.Errorf("Get() after overwrite = %q, want {\"a\":2}", data)
	}

	if err := st.Delete(ctx, "layout"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := st.Get(ctx, "layout"); ok {
		t.Error("Get() after Delete should miss")
	}
	if err := st.Delete(ctx, "layout"); err != nil {
		t.Errorf("Delete() of absent key error: %v", err)
	}

	for _, bad := range []string{"", "../escape", "a/b"} {
		if err := st.Set(ctx, bad, []byte("x")); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Set(%q) error = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	st := NewMemoryStore()
	defer st.Close()
	exercise(t, st)

	// values are copied in and out
	buf := []byte("abc")
	_ = st.Set(context.Background(), "k", buf)
	buf[0] = 'z'
	got, _, _ := st.Get(context.Background(), "k")
	if string(got) != "abc" {
		t.Errorf("Get() = %q, want abc", got)
	}
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "store")
	st, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	defer st.Close()
	exercise(t, st)

	if err := st.Set(context.Background(), "visible", []byte("{}")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "visible.json")); err != nil {
		t.Errorf("expected visible.json on disk: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1 (no temp files left behind)", len(entries))
	}
}

func TestSQLiteStore(t *testing.T) {
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "db", "layouts.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}
	defer st.Close()
	exercise(t, st)

	ctx := context.Background()
	_ = st.Set(ctx, "b", []byte("2"))
	_ = st.Set(ctx, "a", []byte("1"))
	keys, err := st.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() error: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys() = %v, want [a b]", keys)
	}
}

func TestSQLiteStoreMemory(t *testing.T) {
	st, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore(:memory:) error: %v", err)
	}
	defer st.Close()
	exercise(t, st)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tests := []struct {
		url  string
		want string
	}{
		{"memory:", "memory"},
		{"file:" + dir, "file"},
		{filepath.Join(dir, "plain"), "file"},
		{"sqlite:" + filepath.Join(dir, "x.db"), "sqlite"},
	}
	for _, tt := range tests {
		st, err := Open(ctx, tt.url)
		if err != nil {
			t.Errorf("Open(%q) error: %v", tt.url, err)
			continue
		}
		if got := Backend(st); got != tt.want {
			t.Errorf("Backend(Open(%q)) = %s, want %s", tt.url, got, tt.want)
		}
		st.Close()
	}

	if _, err := Open(ctx, "ftp://example.com"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Open(ftp) error = %v, want UNSUPPORTED", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	hooks := &recordingHooks{}
	observability.SetStoreHooks(hooks)
	defer observability.Reset()

	s, err := tiling.Initial("root")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.MaxTiles = 7

	if err := SaveSnapshot(ctx, st, "main", s, cfg); err != nil {
		t.Fatalf("SaveSnapshot() error: %v", err)
	}
	got, gotCfg, err := LoadSnapshot(ctx, st, "main")
	if err != nil {
		t.Fatalf("LoadSnapshot() error: %v", err)
	}
	if got.Len() != 1 || gotCfg.MaxTiles != 7 {
		t.Errorf("LoadSnapshot() = %d tiles, maxTiles %d, want 1, 7", got.Len(), gotCfg.MaxTiles)
	}

	if _, _, err := LoadSnapshot(ctx, st, "other"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("LoadSnapshot(other) error = %v, want NOT_FOUND", err)
	}
	if hooks.saves != 1 || hooks.loads != 2 || hooks.hits != 1 {
		t.Errorf("hooks saves=%d loads=%d hits=%d, want 1 2 1", hooks.saves, hooks.loads, hooks.hits)
	}
}

type recordingHooks struct {
	saves, loads, hits int
}

func (h *recordingHooks) OnLoad(_ context.Context, _, _ string, hit bool, _ time.Duration, _ error) {
	h.loads++
	if hit {
		h.hits++
	}
}

func (h *recordingHooks) OnSave(context.Context, string, string, int, time.Duration, error) {
	h.saves++
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	base := errors.New(errors.ErrCodeStore, "boom")
	err := Retryable(base)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != base.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), base.Error())
	}
	if IsRetryable(base) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = old }()

	ctx := context.Background()
	boom := errors.New(errors.ErrCodeStore, "boom")

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return boom
	})
	if err != boom || calls != 1 {
		t.Errorf("non-retryable: err = %v calls = %d, want boom 1", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(boom)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retryable: err = %v calls = %d, want nil 2", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(boom)
	})
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err = %v calls = %d, want retryable 3", err, calls)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if err := RetryWithBackoff(cctx, func() error { return Retryable(boom) }); err != context.Canceled {
		t.Errorf("cancelled: err = %v, want context.Canceled", err)
	}
}

func TestMongoDatabase(t *testing.T) {
	tests := []struct {
		uri, want string
	}{
		{"mongodb://localhost:27017", DefaultMongoDatabase},
		{"mongodb://localhost:27017/", DefaultMongoDatabase},
		{"mongodb://localhost:27017/layouts?retryWrites=true", "layouts"},
	}
	for _, tt := range tests {
		if got := mongoDatabase(tt.uri); got != tt.want {
			t.Errorf("mongoDatabase(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}
