package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "cache.db")
	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return store, dbPath
}

func TestInitCreatesDatabase(t *testing.T) {
	_, dbPath := setupTestStore(t)
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("cache file not created: %v", err)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	store, _ := setupTestStore(t)
	if err := store.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
}

func TestLoadBeforeInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
}

func TestGetSetDeleteClear(t *testing.T) {
	ctx := context.Background()
	store, _ := setupTestStore(t)

	if _, ok, err := store.Get(ctx, "email"); err != nil || ok {
		t.Fatalf("Get on empty cache = ok %v, err %v", ok, err)
	}

	if err := store.Set(ctx, "email", "a@example.com"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "email", "b@example.com"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, ok, err := store.Get(ctx, "email")
	if err != nil || !ok || got != "b@example.com" {
		t.Errorf("Get() = %q, %v, %v; want b@example.com", got, ok, err)
	}

	_ = store.Set(ctx, "userData", "{}")
	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if !slices.Equal(keys, []string{"email", "userData"}) {
		t.Errorf("Keys() = %v", keys)
	}

	if err := store.Delete(ctx, "email"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "email"); ok {
		t.Error("email should be gone after Delete")
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	keys, _ = store.Keys(ctx)
	if len(keys) != 0 {
		t.Errorf("Keys() after Clear = %v", keys)
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	store, dbPath := setupTestStore(t)
	if err := store.Set(ctx, "meal_plan_data", `{"total_calories":1800}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewStore(dbPath)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	got, ok, err := reopened.Get(ctx, "meal_plan_data")
	if err != nil || !ok || got != `{"total_calories":1800}` {
		t.Errorf("Get() after reopen = %q, %v, %v", got, ok, err)
	}
}
