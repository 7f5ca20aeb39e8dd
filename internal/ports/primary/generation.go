package primary

import (
	"context"

	"github.com/example/entitygen/internal/config"
	"github.com/example/entitygen/internal/core/validation"
	"github.com/example/entitygen/internal/models"
)

// GenerationService defines the primary port for CRUD artifact generation.
type GenerationService interface {
	// Generate synthesizes and places the selected artifacts in the fixed
	// order DTO, repository, service, controller, filter.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// FindExisting lists previously generated files for an entity below the
	// given source roots.
	FindExisting(ctx context.Context, entityName string, sourceRoots []string) ([]string, error)
}

// PlacementService defines the primary port for writing one artifact.
type PlacementService interface {
	// Place resolves the target directory of an artifact and writes it
	// idempotently.
	Place(ctx context.Context, req PlaceRequest) (*models.PlacedArtifact, error)

	// PrepareCustomPaths validates every custom path of cfg and creates the
	// missing directories. All invalid paths are reported together.
	PrepareCustomPaths(ctx context.Context, cfg *config.ArchitectureConfig, kinds []models.ArtifactKind, dryRun bool) error

	// RequireSourceRoot fails with ErrSourceRootNotFound when a kind without
	// a custom path has no existing source root to be placed under.
	RequireSourceRoot(ctx context.Context, cfg *config.ArchitectureConfig, kinds []models.ArtifactKind, sourceRoots []string) error
}

// GenerateRequest carries one generation request.
type GenerateRequest struct {
	Entity            *models.EntityModel        `validate:"required"`
	Config            *config.ArchitectureConfig `validate:"required"`
	Components        []models.ArtifactKind      `validate:"dive,oneof=dto repository service controller filter"`
	DtoFields         []string
	FilterFields      []string
	ValidationOptions validation.Options
	DtoName           string
	TemplateOverrides map[string]string
	SourceRoots       []string
	Policy            models.OverwritePolicy `validate:"omitempty,oneof=silent confirm"`
	Pattern           string
	DryRun            bool
}

// GenerateResponse lists the placed artifacts of a request.
type GenerateResponse struct {
	RunID  string
	Placed []*models.PlacedArtifact
}

// PlaceRequest carries one artifact to place.
type PlaceRequest struct {
	Artifact    *models.Artifact
	CustomPath  string
	SourceRoots []string
	Policy      models.OverwritePolicy
	DryRun      bool
}
