package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/arkavale/gearforge/internal/fitting/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "fitting.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, found, err := store.GetSettings(ctx, "default")
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if found {
		t.Fatal("expected no settings before put")
	}

	record := storage.SettingsRecord{
		Profile:      "default",
		PayloadBytes: []byte(`{"equipment_slot":"Spine2"}`),
		UpdatedAt:    time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC),
	}
	if err := store.PutSettings(ctx, record); err != nil {
		t.Fatalf("put settings: %v", err)
	}

	loaded, found, err := store.GetSettings(ctx, "default")
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if !found {
		t.Fatal("expected settings after put")
	}
	if string(loaded.PayloadBytes) != string(record.PayloadBytes) {
		t.Fatalf("expected payload %q, got %q", record.PayloadBytes, loaded.PayloadBytes)
	}
	if !loaded.UpdatedAt.Equal(record.UpdatedAt) {
		t.Fatalf("expected updated at %v, got %v", record.UpdatedAt, loaded.UpdatedAt)
	}

	// Upsert replaces the payload in place.
	record.PayloadBytes = []byte(`{"equipment_slot":"Hand_R"}`)
	if err := store.PutSettings(ctx, record); err != nil {
		t.Fatalf("put settings again: %v", err)
	}
	loaded, _, err = store.GetSettings(ctx, "default")
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if string(loaded.PayloadBytes) != string(record.PayloadBytes) {
		t.Fatalf("expected upserted payload %q, got %q", record.PayloadBytes, loaded.PayloadBytes)
	}
}

func TestPutSettingsValidation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.PutSettings(ctx, storage.SettingsRecord{PayloadBytes: []byte("{}")}); err == nil {
		t.Fatal("expected error for missing profile")
	}
	if err := store.PutSettings(ctx, storage.SettingsRecord{Profile: "default"}); err == nil {
		t.Fatal("expected error for missing payload")
	}
}

func TestSavedConfigLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.GetSavedConfig(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected %v, got %v", storage.ErrNotFound, err)
	}

	first := storage.SavedConfigRecord{
		ID:           "cfg-1",
		Name:         "tight cuirass",
		PayloadBytes: []byte(`{"version":1}`),
		CreatedAt:    time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC),
	}
	second := storage.SavedConfigRecord{
		ID:           "cfg-2",
		Name:         "loose cuirass",
		PayloadBytes: []byte(`{"version":1}`),
		CreatedAt:    first.CreatedAt.Add(time.Hour),
	}
	if err := store.PutSavedConfig(ctx, first); err != nil {
		t.Fatalf("put first: %v", err)
	}
	if err := store.PutSavedConfig(ctx, second); err != nil {
		t.Fatalf("put second: %v", err)
	}

	records, err := store.ListSavedConfigs(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "cfg-2" || records[1].ID != "cfg-1" {
		t.Fatalf("expected newest first, got %q then %q", records[0].ID, records[1].ID)
	}

	loaded, err := store.GetSavedConfig(ctx, "cfg-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Name != "tight cuirass" {
		t.Fatalf("expected name, got %q", loaded.Name)
	}
	if !loaded.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("expected created at %v, got %v", first.CreatedAt, loaded.CreatedAt)
	}

	if err := store.DeleteSavedConfig(ctx, "cfg-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetSavedConfig(ctx, "cfg-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected %v after delete, got %v", storage.ErrNotFound, err)
	}
}

func TestNilStoreIsSafe(t *testing.T) {
	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("expected nil close to succeed, got %v", err)
	}
	if _, _, err := store.GetSettings(context.Background(), "default"); err == nil {
		t.Fatal("expected error from unconfigured store")
	}
}
