//go:build integration

package store

import (
	"context"
	"os"
	"testing"
)

func setupPostgres(t *testing.T) *Postgres {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	p, err := OpenPostgres(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestIntegration_AppendAndRecent(t *testing.T) {
	p := setupPostgres(t)
	ctx := context.Background()

	err := p.Append(ctx, Entry{
		Persona:       "novice-50s",
		URL:           "https://example.com/integration",
		Utterance:     "うーん、これは何だろう？",
		NextAction:    "「登録」を押す",
		FrictionScore: 2,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := p.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].URL != "https://example.com/integration" {
		t.Errorf("unexpected row: %+v", got[0])
	}
	if got[0].Timestamp.IsZero() {
		t.Error("expected assigned timestamp")
	}
}
