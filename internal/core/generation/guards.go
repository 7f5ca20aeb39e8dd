// Package generation contains the pure business logic for generation requests.
// Guards are pure functions that evaluate preconditions without side effects.
package generation

import (
	"fmt"

	"github.com/example/entitygen/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to a SelectionError if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return &models.SelectionError{Reason: r.Reason}
}

// SelectionContext provides context for the selection guard.
type SelectionContext struct {
	EntityName   string
	EntityFields []string
	Components   []models.ArtifactKind
	DtoFields    []string
	FilterFields []string
}

// CanGenerate evaluates whether a component and field selection is usable.
// Rules:
// - At least one component must be selected
// - A DTO needs at least one field
// - A filter needs at least one field
// - Every selected field must exist on the entity
func CanGenerate(ctx SelectionContext) GuardResult {
	if len(ctx.Components) == 0 {
		return GuardResult{Allowed: false, Reason: "select at least one component to generate"}
	}

	if contains(ctx.Components, models.KindDTO) && len(ctx.DtoFields) == 0 {
		return GuardResult{Allowed: false, Reason: "select at least one field for the DTO"}
	}
	if contains(ctx.Components, models.KindFilter) && len(ctx.FilterFields) == 0 {
		return GuardResult{Allowed: false, Reason: "select at least one field for the filter"}
	}

	known := make(map[string]bool, len(ctx.EntityFields))
	for _, f := range ctx.EntityFields {
		known[f] = true
	}
	for _, names := range [][]string{ctx.DtoFields, ctx.FilterFields} {
		for _, n := range names {
			if !known[n] {
				return GuardResult{
					Allowed: false,
					Reason:  fmt.Sprintf("entity %s has no field %q", ctx.EntityName, n),
				}
			}
		}
	}

	return GuardResult{Allowed: true}
}

// Ordered returns the selected components in generation order with
// duplicates removed.
func Ordered(components []models.ArtifactKind) []models.ArtifactKind {
	var out []models.ArtifactKind
	for _, k := range models.GenerationOrder {
		if contains(components, k) {
			out = append(out, k)
		}
	}
	return out
}

func contains(kinds []models.ArtifactKind, k models.ArtifactKind) bool {
	for _, c := range kinds {
		if c == k {
			return true
		}
	}
	return false
}
