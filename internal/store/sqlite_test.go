package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_AppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := s.Append(ctx, Entry{
			Persona:       "busy-20s",
			URL:           "https://example.com",
			Utterance:     "えー、また入力？",
			NextAction:    "click",
			FrictionScore: i,
		})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}

	// Most recent first, ids assigned sequentially.
	if got[0].ID != 3 || got[2].ID != 1 {
		t.Errorf("expected newest-first ordering, got ids %d..%d", got[0].ID, got[2].ID)
	}
	if got[0].FrictionScore != 2 {
		t.Errorf("expected friction 2 on newest, got %d", got[0].FrictionScore)
	}
	if got[0].Utterance != "えー、また入力？" {
		t.Errorf("utterance round-trip failed: %q", got[0].Utterance)
	}
	if got[0].Timestamp.IsZero() {
		t.Error("store must assign a timestamp")
	}
}

func TestSQLite_RecentLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.Append(ctx, Entry{Persona: "p", URL: "u"}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected limit 2, got %d", len(got))
	}

	// Non-positive limit falls back to the default of 20.
	got, err = s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("expected all 5 entries, got %d", len(got))
	}
}

func TestSQLite_EmptyRecent(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Recent(context.Background(), 20)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no entries, got %d", len(got))
	}
}

func TestSQLite_KeepsCallerTimestamp(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := s.Append(ctx, Entry{Persona: "p", URL: "u", Timestamp: ts}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, _ := s.Recent(ctx, 1)
	if !got[0].Timestamp.Equal(ts) {
		t.Errorf("expected timestamp %v, got %v", ts, got[0].Timestamp)
	}
}

func TestSQLite_ConcurrentAppends(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Append(ctx, Entry{Persona: "p", URL: "u"}); err != nil {
				t.Errorf("concurrent Append: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := s.Recent(ctx, 50)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 10 {
		t.Errorf("expected 10 entries, got %d", len(got))
	}
}
