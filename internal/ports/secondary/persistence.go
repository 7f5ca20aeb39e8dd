// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// HistoryRepository defines the secondary port for generation history persistence.
type HistoryRepository interface {
	// CreateRun persists a new generation run.
	CreateRun(ctx context.Context, run *RunRecord) error

	// UpdateRunStatus records the final status and error of a run.
	UpdateRunStatus(ctx context.Context, id, status, errMsg string) error

	// AddArtifact persists one placed artifact of a run.
	AddArtifact(ctx context.Context, artifact *ArtifactRecord) error

	// GetRun retrieves a run by its ID.
	GetRun(ctx context.Context, id string) (*RunRecord, error)

	// ListRuns retrieves runs matching the given filters, newest first.
	ListRuns(ctx context.Context, filters RunFilters) ([]*RunRecord, error)

	// ListArtifacts retrieves the artifacts of a run in placement order.
	ListArtifacts(ctx context.Context, runID string) ([]*ArtifactRecord, error)

	// PruneRuns deletes runs older than the given number of days.
	PruneRuns(ctx context.Context, olderThanDays int) (int, error)
}

// RunRecord represents a generation run as stored in persistence.
type RunRecord struct {
	ID          string
	Entity      string
	PackageName string
	Pattern     string
	Policy      string
	DryRun      bool
	Status      string // 'running', 'succeeded', 'failed'
	Error       string
	CreatedAt   string
}

// ArtifactRecord represents one placed artifact as stored in persistence.
type ArtifactRecord struct {
	ID        int64
	RunID     string
	Kind      string
	ClassName string
	Path      string
	Outcome   string
	Position  int
}

// RunFilters contains filter options for querying runs.
type RunFilters struct {
	Entity string
	Status string
	Limit  int
}
