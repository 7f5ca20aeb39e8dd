package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/entitygen/internal/models"
	"github.com/example/entitygen/internal/ports/primary"
)

// GenerationAdapter is a thin adapter that translates CLI operations to GenerationService calls.
// It depends only on the GenerationService interface, enabling easy testing with mocks.
type GenerationAdapter struct {
	service primary.GenerationService
	out     io.Writer
}

// NewGenerationAdapter creates a new GenerationAdapter with the given service.
func NewGenerationAdapter(service primary.GenerationService, out io.Writer) *GenerationAdapter {
	return &GenerationAdapter{
		service: service,
		out:     out,
	}
}

// Generate runs a generation request and prints one line per artifact.
// On a partial failure the artifacts already placed are printed before the
// error is returned.
func (a *GenerationAdapter) Generate(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
	resp, err := a.service.Generate(ctx, req)
	if err != nil {
		var genErr *models.GenerationError
		if errors.As(err, &genErr) && len(genErr.Placed) > 0 {
			fmt.Fprintln(a.out, "Placed before the failure:")
			a.printPlaced(genErr.Placed)
		}
		return nil, err
	}

	if req.DryRun {
		fmt.Fprintln(a.out, "Dry run, no files written:")
	}
	a.printPlaced(resp.Placed)
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Run: %s\n", resp.RunID)

	return resp, nil
}

// Existing prints previously generated files of an entity.
func (a *GenerationAdapter) Existing(ctx context.Context, entityName string, sourceRoots []string) ([]string, error) {
	files, err := a.service.FindExisting(ctx, entityName, sourceRoots)
	if err != nil {
		return nil, fmt.Errorf("failed to find existing files: %w", err)
	}

	if len(files) == 0 {
		fmt.Fprintf(a.out, "No generated files found for %s.\n", entityName)
		return files, nil
	}

	fmt.Fprintf(a.out, "Generated files for %s:\n", entityName)
	for _, f := range files {
		fmt.Fprintf(a.out, "  %s\n", f)
	}
	return files, nil
}

func (a *GenerationAdapter) printPlaced(placed []*models.PlacedArtifact) {
	for _, p := range placed {
		fmt.Fprintf(a.out, "%s %-11s %s\n", OutcomeMark(p.Outcome), p.Outcome, p.Path)
	}
}

// OutcomeMark returns the colored status mark of a write outcome.
func OutcomeMark(outcome models.WriteOutcome) string {
	switch outcome {
	case models.OutcomeCreated, models.OutcomeOverwritten:
		return color.New(color.FgGreen).Sprint("✓")
	case models.OutcomeSkipped:
		return color.New(color.FgBlue).Sprint("=")
	case models.OutcomeDeclined:
		return color.New(color.FgYellow).Sprint("!")
	case models.OutcomePlanned:
		return color.New(color.FgCyan).Sprint("~")
	default:
		return " "
	}
}
