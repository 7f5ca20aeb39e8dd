package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/entitygen/internal/ports/primary"
)

// HistoryAdapter translates CLI operations to HistoryService calls.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter with the given service.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{
		service: service,
		out:     out,
	}
}

// List lists generation runs.
func (a *HistoryAdapter) List(ctx context.Context, filters primary.HistoryFilters) ([]*primary.GenerationRun, error) {
	runs, err := a.service.ListRuns(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(a.out, "No generation runs found.")
		return runs, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tENTITY\tSTATUS\tPOLICY\tDRY RUN\tCREATED")
	fmt.Fprintln(w, "--\t------\t------\t------\t-------\t-------")

	for _, run := range runs {
		dryRun := ""
		if run.DryRun {
			dryRun = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID,
			run.Entity,
			run.Status,
			run.Policy,
			dryRun,
			run.CreatedAt,
		)
	}

	w.Flush()
	return runs, nil
}

// Show displays a run with its artifacts.
func (a *HistoryAdapter) Show(ctx context.Context, runID string) (*primary.GenerationRun, error) {
	run, err := a.service.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	fmt.Fprintf(a.out, "\nRun: %s\n", run.ID)
	fmt.Fprintf(a.out, "Entity:  %s.%s\n", run.PackageName, run.Entity)
	fmt.Fprintf(a.out, "Status:  %s\n", run.Status)
	if run.Error != "" {
		fmt.Fprintf(a.out, "Error:   %s\n", run.Error)
	}
	if run.Pattern != "" {
		fmt.Fprintf(a.out, "Pattern: %s\n", run.Pattern)
	}
	fmt.Fprintf(a.out, "Policy:  %s\n", run.Policy)
	fmt.Fprintf(a.out, "Created: %s\n", run.CreatedAt)

	if len(run.Artifacts) > 0 {
		fmt.Fprintln(a.out, "\nArtifacts:")
		w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
		for _, art := range run.Artifacts {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", art.Kind, art.Outcome, art.Path)
		}
		w.Flush()
	}
	fmt.Fprintln(a.out)

	return run, nil
}

// Prune deletes runs older than days and reports the count.
func (a *HistoryAdapter) Prune(ctx context.Context, days int) (int, error) {
	n, err := a.service.PruneRuns(ctx, days)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Pruned %d run(s) older than %d day(s)\n", n, days)
	return n, nil
}
