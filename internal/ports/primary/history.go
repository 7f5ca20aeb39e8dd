package primary

import "context"

// HistoryService defines the primary port for generation history.
type HistoryService interface {
	// ListRuns retrieves runs matching the given filters.
	ListRuns(ctx context.Context, filters HistoryFilters) ([]*GenerationRun, error)

	// GetRun retrieves a run and its artifacts.
	GetRun(ctx context.Context, id string) (*GenerationRun, error)

	// PruneRuns deletes runs older than the specified number of days.
	PruneRuns(ctx context.Context, olderThanDays int) (int, error)
}

// GenerationRun represents a recorded generation run at the port boundary.
type GenerationRun struct {
	ID          string               `json:"id"`
	Entity      string               `json:"entity"`
	PackageName string               `json:"packageName"`
	Pattern     string               `json:"pattern"`
	Policy      string               `json:"policy"`
	DryRun      bool                 `json:"dryRun"`
	Status      string               `json:"status"`
	Error       string               `json:"error,omitempty"`
	CreatedAt   string               `json:"createdAt"`
	Artifacts   []*GeneratedArtifact `json:"artifacts,omitempty"`
}

// GeneratedArtifact is one artifact of a recorded run.
type GeneratedArtifact struct {
	Kind      string `json:"kind"`
	ClassName string `json:"className"`
	Path      string `json:"path"`
	Outcome   string `json:"outcome"`
}

// HistoryFilters contains filter options for querying runs.
type HistoryFilters struct {
	Entity string
	Status string
	Limit  int
}
