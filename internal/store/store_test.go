package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveToMemory(ctx, "Hello world", "en", "pt", "Olá mundo", "google"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}

	got, found, err := s.GetCachedTranslation(ctx, "Hello world", "en", "pt")
	if err != nil {
		t.Fatalf("GetCachedTranslation failed: %v", err)
	}
	if !found {
		t.Fatal("expected cache hit")
	}
	if got != "Olá mundo" {
		t.Errorf("expected cached text, got %q", got)
	}
}

func TestStore_Get_Miss(t *testing.T) {
	s := newTestStore(t)

	_, found, err := s.GetCachedTranslation(context.Background(), "never stored", "en", "pt")
	if err != nil {
		t.Fatalf("GetCachedTranslation failed: %v", err)
	}
	if found {
		t.Error("expected cache miss")
	}
}

func TestStore_Get_NormalizesWhitespace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveToMemory(ctx, "  Hello world  ", "en", "pt", "Olá mundo", "google"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}

	_, found, err := s.GetCachedTranslation(ctx, "Hello world", "en", "pt")
	if err != nil {
		t.Fatalf("GetCachedTranslation failed: %v", err)
	}
	if !found {
		t.Error("expected hit after whitespace normalization")
	}
}

func TestStore_Get_WrongPairMisses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveToMemory(ctx, "Hello", "en", "pt", "Olá", "google"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}

	_, found, err := s.GetCachedTranslation(ctx, "Hello", "en", "fr")
	if err != nil {
		t.Fatalf("GetCachedTranslation failed: %v", err)
	}
	if found {
		t.Error("expected miss for different target language")
	}
}

func TestStore_UsageCountIncrements(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveToMemory(ctx, "Hello", "en", "pt", "Olá", "google"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, _, err := s.GetCachedTranslation(ctx, "Hello", "en", "pt"); err != nil {
			t.Fatalf("GetCachedTranslation failed: %v", err)
		}
	}

	entries, err := s.ListMemory(ctx)
	if err != nil {
		t.Fatalf("ListMemory failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].UsageCount != 3 {
		t.Errorf("expected usage count 3 (1 save + 2 hits), got %d", entries[0].UsageCount)
	}
}

func TestStore_InvalidateSkipsEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveToMemory(ctx, "Hello", "en", "pt", "Olá", "google"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}

	entries, err := s.ListMemory(ctx)
	if err != nil || len(entries) != 1 {
		t.Fatalf("ListMemory failed: %v (%d entries)", err, len(entries))
	}

	if err := s.InvalidateMemory(ctx, entries[0].ID); err != nil {
		t.Fatalf("InvalidateMemory failed: %v", err)
	}

	_, found, err := s.GetCachedTranslation(ctx, "Hello", "en", "pt")
	if err != nil {
		t.Fatalf("GetCachedTranslation failed: %v", err)
	}
	if found {
		t.Error("expected invalidated entry to miss")
	}
}

func TestStore_DeleteMemory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveToMemory(ctx, "Hello", "en", "pt", "Olá", "google"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}

	entries, _ := s.ListMemory(ctx)
	if err := s.DeleteMemory(ctx, entries[0].ID); err != nil {
		t.Fatalf("DeleteMemory failed: %v", err)
	}

	entries, _ = s.ListMemory(ctx)
	if len(entries) != 0 {
		t.Errorf("expected empty memory after delete, got %d entries", len(entries))
	}
}

func TestStore_ClearMemory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_ = s.SaveToMemory(ctx, "one", "en", "pt", "um", "google")
	_ = s.SaveToMemory(ctx, "two", "en", "pt", "dois", "google")

	n, err := s.ClearMemory(ctx)
	if err != nil {
		t.Fatalf("ClearMemory failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 cleared, got %d", n)
	}
}

func TestStore_Stats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_ = s.SaveToMemory(ctx, "one", "en", "pt", "um", "google")
	_ = s.SaveToMemory(ctx, "two", "en", "pt", "dois", "mymemory")

	entries, _ := s.ListMemory(ctx)
	_ = s.InvalidateMemory(ctx, entries[0].ID)

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalEntries != 2 {
		t.Errorf("expected 2 total, got %d", stats.TotalEntries)
	}
	if stats.ActiveEntries != 1 {
		t.Errorf("expected 1 active, got %d", stats.ActiveEntries)
	}
	if stats.InvalidEntries != 1 {
		t.Errorf("expected 1 invalid, got %d", stats.InvalidEntries)
	}
}

func TestStore_SaveReplacesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_ = s.SaveToMemory(ctx, "Hello", "en", "pt", "Olá velho", "google")
	_ = s.SaveToMemory(ctx, "Hello", "en", "pt", "Olá novo", "mymemory")

	got, found, err := s.GetCachedTranslation(ctx, "Hello", "en", "pt")
	if err != nil || !found {
		t.Fatalf("expected hit, err=%v found=%v", err, found)
	}
	if got != "Olá novo" {
		t.Errorf("expected newer translation, got %q", got)
	}

	entries, _ := s.ListMemory(ctx)
	if len(entries) != 1 {
		t.Errorf("expected replacement not duplication, got %d entries", len(entries))
	}
}
