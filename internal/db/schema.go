package db

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is recorded in schema_version on fresh installs.
const SchemaVersion = 1

// SchemaSQL is the complete schema of the history database.
//
// This is the single source of truth for the schema. Repository tests load
// it through GetSchemaSQL() instead of declaring their own tables, so a
// column referenced by repository code but missing here fails immediately
// with "no such column".
const SchemaSQL = `
-- Generation runs (one per generate request)
CREATE TABLE IF NOT EXISTS generation_runs (
	id TEXT PRIMARY KEY,
	entity TEXT NOT NULL,
	package TEXT NOT NULL,
	pattern TEXT,
	policy TEXT NOT NULL CHECK(policy IN ('silent', 'confirm')) DEFAULT 'silent',
	dry_run INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL CHECK(status IN ('running', 'succeeded', 'failed')) DEFAULT 'running',
	error TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_generation_runs_entity ON generation_runs(entity);
CREATE INDEX IF NOT EXISTS idx_generation_runs_status ON generation_runs(status);

-- Generated artifacts (placed files of a run)
CREATE TABLE IF NOT EXISTS generation_artifacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	kind TEXT NOT NULL CHECK(kind IN ('dto', 'repository', 'service', 'controller', 'filter')),
	class_name TEXT NOT NULL,
	path TEXT NOT NULL,
	outcome TEXT NOT NULL CHECK(outcome IN ('created', 'overwritten', 'skipped', 'declined', 'planned')),
	position INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (run_id) REFERENCES generation_runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_generation_artifacts_run ON generation_artifacts(run_id);
`

// InitSchema creates the schema on a fresh database and records its version.
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	var current int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current)
	if err != nil {
		return err
	}
	if current > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", current, SchemaVersion)
	}
	if current < SchemaVersion {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
