package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "countdown.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestGetMissingKey(t *testing.T) {
	st := openTestStore(t)
	value, ok, err := st.Get(context.Background(), "fontSize")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || value != "" {
		t.Fatalf("expected missing key, got %q", value)
	}
}

func TestPutOverwrites(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.Put(ctx, "fontSize", "60"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := st.Put(ctx, "fontSize", "120"); err != nil {
		t.Fatalf("put: %v", err)
	}
	value, ok, err := st.Get(ctx, "fontSize")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if value != "120" {
		t.Fatalf("expected last write to win, got %q", value)
	}
}

func TestListOrderedAndDelete(t *testing.T) {
	st := openTestStore(t)
	fixed := time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)
	st.now = func() time.Time { return fixed }
	ctx := context.Background()
	for _, key := range []string{"timeLeft", "fontSize", "isPaused"} {
		if err := st.Put(ctx, key, "1"); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	if err := st.Delete(ctx, "isPaused"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	settings, err := st.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(settings) != 2 {
		t.Fatalf("expected 2 settings, got %d", len(settings))
	}
	if settings[0].Key != "fontSize" || settings[1].Key != "timeLeft" {
		t.Fatalf("unexpected order: %+v", settings)
	}
	if !settings[0].UpdatedAt.Equal(fixed) {
		t.Fatalf("unexpected updated_at: %v", settings[0].UpdatedAt)
	}
}

func TestClear(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.Put(ctx, "isManualMode", "true"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := st.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	settings, err := st.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(settings) != 0 {
		t.Fatalf("expected empty store, got %+v", settings)
	}
}

func TestReopenKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countdown.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := st.Put(context.Background(), "isPaused", "true"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() {
		_ = st.Close()
	}()
	value, ok, err := st.Get(context.Background(), "isPaused")
	if err != nil || !ok || value != "true" {
		t.Fatalf("expected persisted value, got %q ok=%v err=%v", value, ok, err)
	}
}
