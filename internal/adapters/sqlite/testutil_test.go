// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the single point where the database schema is loaded for
// tests. Setup goes through db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not declare tables in test files; use
// setupTestDB() and the seed helpers.
package sqlite_test

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/entitygen/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)
	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedRun inserts a test run and returns its ID.
func seedRun(t *testing.T, db *sql.DB, id, entity, status string) string {
	t.Helper()
	if id == "" {
		id = "RUN-001"
	}
	if entity == "" {
		entity = "Customer"
	}
	if status == "" {
		status = "succeeded"
	}
	_, err := db.Exec("INSERT INTO generation_runs (id, entity, package, status) VALUES (?, ?, 'com.acme.entity', ?)", id, entity, status)
	if err != nil {
		t.Fatalf("failed to seed run: %v", err)
	}
	return id
}

// ageRun moves the creation time of a run into the past.
func ageRun(t *testing.T, db *sql.DB, id string, days int) {
	t.Helper()
	_, err := db.Exec("UPDATE generation_runs SET created_at = datetime('now', ?) WHERE id = ?", fmt.Sprintf("-%d days", days), id)
	if err != nil {
		t.Fatalf("failed to age run: %v", err)
	}
}
