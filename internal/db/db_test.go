// ABOUTME: Tests for database initialization.
// ABOUTME: Covers schema creation and idempotent reopening.

package db

import (
	"path/filepath"
	"testing"
)

func TestOpenCreatesSchema(t *testing.T) {
	dbc, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer dbc.Close()

	var count int
	err = dbc.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('meals', 'meal_images')`,
	).Scan(&count)
	if err != nil {
		t.Fatalf("failed to query schema: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 tables, got %d", count)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	meal, err := CreateMeal(first, &Draft{Notes: "before reopen", Date: "2024-03-01"})
	if err != nil {
		t.Fatalf("failed to create meal: %v", err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("failed to reopen db: %v", err)
	}
	defer second.Close()

	got, err := GetMeal(second, meal.ID)
	if err != nil {
		t.Fatalf("failed to get meal after reopen: %v", err)
	}
	if got.Notes != "before reopen" {
		t.Errorf("expected notes to survive reopen, got %q", got.Notes)
	}
}

func TestOpenCreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	dbc, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open db in nested dir: %v", err)
	}
	dbc.Close()
}
