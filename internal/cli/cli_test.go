package cli

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/snapshot"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// execute runs the root command against a snapshot file.
func execute(t *testing.T, file string, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(append([]string{"--file", file}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func loadFile(t *testing.T, file string) *tiling.State {
	t.Helper()
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	s, _, err := snapshot.Load(data)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestInitCommand(t *testing.T) {
	file := filepath.Join(t.TempDir(), "layout.json")

	if err := execute(t, file, "show"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("show before init: error = %v, want NOT_FOUND", err)
	}
	if err := execute(t, file, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := execute(t, file, "init"); err == nil {
		t.Error("second init should fail without --force")
	}
	if err := execute(t, file, "split", "root", "vertical"); err != nil {
		t.Fatalf("split: %v", err)
	}
	if err := execute(t, file, "init", "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
	if s := loadFile(t, file); s.Len() != 1 {
		t.Errorf("tiles after init --force = %d, want 1", s.Len())
	}
}

func TestEditCommands(t *testing.T) {
	file := filepath.Join(t.TempDir(), "layout.json")
	if err := execute(t, file, "init"); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, file, "split", "root", "v", "--ratio", "0.3"); err != nil {
		t.Fatalf("split: %v", err)
	}
	if err := execute(t, file, "seam-resize", "seam|v|30.000000", "--delta", "10"); err != nil {
		t.Fatalf("seam-resize: %v", err)
	}

	s := loadFile(t, file)
	root, ok := s.Tile("root")
	if !ok {
		t.Fatal("root tile missing")
	}
	if math.Abs(root.Width-40) > 1e-6 {
		t.Errorf("root width = %v, want 40", root.Width)
	}

	for _, args := range [][]string{
		{"show", "--grid"},
		{"show", "--json"},
		{"seams"},
		{"clamp", "seam|v|40.000000"},
		{"clamp", "root", "right", "--delta", "5"},
		{"validate"},
		{"adjust"},
	} {
		if err := execute(t, file, args...); err != nil {
			t.Errorf("%v: %v", args, err)
		}
	}
}

func TestRejectedCommandKeepsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "layout.json")
	if err := execute(t, file, "init"); err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(file)

	if err := execute(t, file, "delete", "root"); err == nil {
		t.Error("deleting the only tile should fail")
	}
	if err := execute(t, file, "split", "missing", "v"); err == nil {
		t.Error("splitting an unknown tile should fail")
	}

	after, _ := os.ReadFile(file)
	if string(before) != string(after) {
		t.Error("rejected commands must not rewrite the layout")
	}
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "layout.json")
	cfg := filepath.Join(dir, "tilegrid.toml")
	if err := os.WriteFile(cfg, []byte("[min_tile]\nwidth = 20\nheight = 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, file, "init"); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, file, "--config", cfg, "split", "root", "v", "--ratio", "0.1"); err == nil {
		t.Error("split below the configured minimum should be rejected")
	}
	if err := execute(t, file, "split", "root", "v", "--ratio", "0.1"); err != nil {
		t.Errorf("split with default limits: %v", err)
	}
}

func TestWorkspaceStore(t *testing.T) {
	ctx := withLogger(context.Background(), newLogger(io.Discard, LogInfo))
	c := &CLI{storeURL: "sqlite:" + filepath.Join(t.TempDir(), "tiles.db"), key: "office"}

	if _, err := c.open(ctx, false); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("open() error = %v, want NOT_FOUND", err)
	}

	ws, err := c.open(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ws.eng.Split(ctx, "root", "h", 0.5); err != nil {
		t.Fatal(err)
	}
	if err := c.save(ctx, ws); err != nil {
		t.Fatal(err)
	}
	ws.close()

	ws, err = c.open(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.close()
	if n := ws.eng.State().Len(); n != 2 {
		t.Errorf("tiles = %d, want 2", n)
	}
	if got := c.location(); got != c.storeURL+"#office" {
		t.Errorf("location() = %q", got)
	}
}

func TestIsNetworkStore(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"redis://localhost:6379/0", true},
		{"mongodb://localhost/tilegrid", true},
		{"mongodb+srv://cluster.example.com", true},
		{"sqlite:tiles.db", false},
		{"memory:", false},
		{"./layouts", false},
	}
	for _, tt := range tests {
		if got := isNetworkStore(tt.url); got != tt.want {
			t.Errorf("isNetworkStore(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
