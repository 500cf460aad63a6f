//go:build integration

package store_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/store"
	"github.com/google/uuid"
)

func getTestPostgres(t *testing.T) *store.PostgresStore {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := store.NewPostgresStore(db)
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return s
}

func TestPostgresStore_RoundTrip(t *testing.T) {
	s := getTestPostgres(t)
	ctx := context.Background()
	id := uuid.NewString()

	if err := s.WriteResult(ctx, sampleBox(id, time.Now())); err != nil {
		t.Fatalf("Failed to write result: %v", err)
	}

	box, err := s.ReadBoxScore(ctx, id)
	if err != nil || box == nil {
		t.Fatalf("Expected box score, got %v (%v)", box, err)
	}
	if box.Game.HomeTeam != "Sharks" {
		t.Errorf("Expected Sharks, got %s", box.Game.HomeTeam)
	}

	missing, err := s.ReadGameSummary(ctx, uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("Expected nil, nil; got %v, %v", missing, err)
	}
}
