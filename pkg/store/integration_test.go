package store

import (
	"context"
	"os"
	"testing"
	"time"
)

// Network-backed stores run only when a server is configured:
//
//	TILEGRID_REDIS_ADDR=redis://localhost:6379/15 go test ./pkg/store
//	TILEGRID_MONGO_URI=mongodb://localhost:27017/tilegrid_test go test ./pkg/store

func TestRedisStoreIntegration(t *testing.T) {
	url := os.Getenv("TILEGRID_REDIS_ADDR")
	if url == "" {
		t.Skip("TILEGRID_REDIS_ADDR not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := Open(ctx, url)
	if err != nil {
		t.Fatalf("Open(%q) error: %v", url, err)
	}
	defer st.Close()
	if Backend(st) != "redis" {
		t.Fatalf("Backend() = %s, want redis", Backend(st))
	}
	exercise(t, st)
}

func TestMongoStoreIntegration(t *testing.T) {
	uri := os.Getenv("TILEGRID_MONGO_URI")
	if uri == "" {
		t.Skip("TILEGRID_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := Open(ctx, uri)
	if err != nil {
		t.Fatalf("Open(%q) error: %v", uri, err)
	}
	defer st.Close()
	if Backend(st) != "mongo" {
		t.Fatalf("Backend() = %s, want mongo", Backend(st))
	}
	exercise(t, st)
}
