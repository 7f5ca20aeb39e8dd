package app

import (
	"context"
	"fmt"

	"github.com/example/entitygen/internal/ports/primary"
	"github.com/example/entitygen/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	historyRepo secondary.HistoryRepository
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(historyRepo secondary.HistoryRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		historyRepo: historyRepo,
	}
}

// ListRuns retrieves runs matching the given filters.
func (s *HistoryServiceImpl) ListRuns(ctx context.Context, filters primary.HistoryFilters) ([]*primary.GenerationRun, error) {
	records, err := s.historyRepo.ListRuns(ctx, secondary.RunFilters{
		Entity: filters.Entity,
		Status: filters.Status,
		Limit:  filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*primary.GenerationRun, len(records))
	for i, r := range records {
		runs[i] = s.recordToRun(r)
	}
	return runs, nil
}

// GetRun retrieves a run and its artifacts.
func (s *HistoryServiceImpl) GetRun(ctx context.Context, id string) (*primary.GenerationRun, error) {
	record, err := s.historyRepo.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}
	run := s.recordToRun(record)

	artifacts, err := s.historyRepo.ListArtifacts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	for _, a := range artifacts {
		run.Artifacts = append(run.Artifacts, &primary.GeneratedArtifact{
			Kind:      a.Kind,
			ClassName: a.ClassName,
			Path:      a.Path,
			Outcome:   a.Outcome,
		})
	}
	return run, nil
}

// PruneRuns deletes runs older than the specified number of days.
func (s *HistoryServiceImpl) PruneRuns(ctx context.Context, olderThanDays int) (int, error) {
	if olderThanDays < 0 {
		return 0, fmt.Errorf("days must not be negative, got %d", olderThanDays)
	}
	return s.historyRepo.PruneRuns(ctx, olderThanDays)
}

// Helper methods

func (s *HistoryServiceImpl) recordToRun(r *secondary.RunRecord) *primary.GenerationRun {
	return &primary.GenerationRun{
		ID:          r.ID,
		Entity:      r.Entity,
		PackageName: r.PackageName,
		Pattern:     r.Pattern,
		Policy:      r.Policy,
		DryRun:      r.DryRun,
		Status:      r.Status,
		Error:       r.Error,
		CreatedAt:   r.CreatedAt,
	}
}

// Ensure HistoryServiceImpl implements the interface
var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
