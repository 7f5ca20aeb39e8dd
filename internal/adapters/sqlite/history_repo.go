// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/entitygen/internal/models"
	"github.com/example/entitygen/internal/ports/secondary"
)

// HistoryRepository implements secondary.HistoryRepository with SQLite.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite history repository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// CreateRun persists a new generation run.
func (r *HistoryRepository) CreateRun(ctx context.Context, run *secondary.RunRecord) error {
	var pattern, errMsg sql.NullString
	if run.Pattern != "" {
		pattern = sql.NullString{String: run.Pattern, Valid: true}
	}
	if run.Error != "" {
		errMsg = sql.NullString{String: run.Error, Valid: true}
	}
	status := run.Status
	if status == "" {
		status = "running"
	}
	policy := run.Policy
	if policy == "" {
		policy = "silent"
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO generation_runs (id, entity, package, pattern, policy, dry_run, status, error) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Entity,
		run.PackageName,
		pattern,
		policy,
		run.DryRun,
		status,
		errMsg,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// UpdateRunStatus records the final status and error of a run.
func (r *HistoryRepository) UpdateRunStatus(ctx context.Context, id, status, errMsg string) error {
	var msg sql.NullString
	if errMsg != "" {
		msg = sql.NullString{String: errMsg, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE generation_runs SET status = ?, error = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, msg, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", models.ErrRunNotFound, id)
	}
	return nil
}

// AddArtifact persists one placed artifact of a run.
func (r *HistoryRepository) AddArtifact(ctx context.Context, artifact *secondary.ArtifactRecord) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO generation_artifacts (run_id, kind, class_name, path, outcome, position) VALUES (?, ?, ?, ?, ?, ?)`,
		artifact.RunID,
		artifact.Kind,
		artifact.ClassName,
		artifact.Path,
		artifact.Outcome,
		artifact.Position,
	)
	if err != nil {
		return fmt.Errorf("failed to add artifact: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		artifact.ID = id
	}
	return nil
}

// GetRun retrieves a run by its ID.
func (r *HistoryRepository) GetRun(ctx context.Context, id string) (*secondary.RunRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, entity, package, pattern, policy, dry_run, status, error, created_at FROM generation_runs WHERE id = ?`,
		id,
	)

	record, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", models.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return record, nil
}

// ListRuns retrieves runs matching the given filters, newest first.
func (r *HistoryRepository) ListRuns(ctx context.Context, filters secondary.RunFilters) ([]*secondary.RunRecord, error) {
	query := `SELECT id, entity, package, pattern, policy, dry_run, status, error, created_at FROM generation_runs WHERE 1=1`
	args := []any{}

	if filters.Entity != "" {
		query += " AND entity = ?"
		args = append(args, filters.Entity)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*secondary.RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, record)
	}

	return runs, rows.Err()
}

// ListArtifacts retrieves the artifacts of a run in placement order.
func (r *HistoryRepository) ListArtifacts(ctx context.Context, runID string) ([]*secondary.ArtifactRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, run_id, kind, class_name, path, outcome, position FROM generation_artifacts WHERE run_id = ? ORDER BY position, id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []*secondary.ArtifactRecord
	for rows.Next() {
		a := &secondary.ArtifactRecord{}
		if err := rows.Scan(&a.ID, &a.RunID, &a.Kind, &a.ClassName, &a.Path, &a.Outcome, &a.Position); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}

	return artifacts, rows.Err()
}

// PruneRuns deletes runs older than the given number of days together with
// their artifacts.
func (r *HistoryRepository) PruneRuns(ctx context.Context, olderThanDays int) (int, error) {
	cutoff := fmt.Sprintf("-%d days", olderThanDays)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM generation_artifacts WHERE run_id IN (SELECT id FROM generation_runs WHERE created_at < datetime('now', ?))`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune artifacts: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM generation_runs WHERE created_at < datetime('now', ?)`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit prune: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*secondary.RunRecord, error) {
	var (
		pattern   sql.NullString
		errMsg    sql.NullString
		createdAt time.Time
	)

	record := &secondary.RunRecord{}
	err := row.Scan(&record.ID,
		&record.Entity,
		&record.PackageName,
		&pattern,
		&record.Policy,
		&record.DryRun,
		&record.Status,
		&errMsg,
		&createdAt)
	if err != nil {
		return nil, err
	}
	record.Pattern = pattern.String
	record.Error = errMsg.String
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Ensure HistoryRepository implements the interface
var _ secondary.HistoryRepository = (*HistoryRepository)(nil)
