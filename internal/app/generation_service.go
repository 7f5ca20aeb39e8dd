package app

import (
	"context"
	"fmt"
	"path"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/example/entitygen/internal/config"
	"github.com/example/entitygen/internal/core/generation"
	"github.com/example/entitygen/internal/core/naming"
	"github.com/example/entitygen/internal/logger"
	"github.com/example/entitygen/internal/models"
	"github.com/example/entitygen/internal/ports/primary"
	"github.com/example/entitygen/internal/ports/secondary"
	"github.com/example/entitygen/internal/scaffold"
)

// Run statuses recorded in history.
const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// GenerationServiceImpl implements the GenerationService interface.
type GenerationServiceImpl struct {
	placement   primary.PlacementService
	fs          secondary.FileSystem
	historyRepo secondary.HistoryRepository
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewGenerationService creates a new GenerationService with injected dependencies.
// historyRepo may be nil to disable run history.
func NewGenerationService(placement primary.PlacementService, fs secondary.FileSystem, historyRepo secondary.HistoryRepository, logger *zap.Logger) *GenerationServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerationServiceImpl{
		placement:   placement,
		fs:          fs,
		historyRepo: historyRepo,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Generate synthesizes the selected artifacts and places them one by one in
// generation order. A failure after the first placement returns a
// GenerationError listing what is already on disk.
func (s *GenerationServiceImpl) Generate(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid generate request: %w", err)
	}

	entity := req.Entity
	guard := generation.CanGenerate(generation.SelectionContext{
		EntityName:   entity.Name,
		EntityFields: entity.FieldNames(),
		Components:   req.Components,
		DtoFields:    req.DtoFields,
		FilterFields: req.FilterFields,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	policy := req.Policy
	if policy == "" {
		policy = models.PolicySilent
	}
	kinds := generation.Ordered(req.Components)

	runID := "RUN-" + ulid.Make().String()
	ctx = logger.WithContext(ctx, s.logger)
	ctx, log := logger.WithRunID(ctx, runID)
	log.Info("generation started",
		zap.String("entity", entity.QualifiedName()),
		zap.Strings("components", kindNames(kinds)),
		zap.Bool("dry_run", req.DryRun),
	)

	s.recordRun(ctx, &secondary.RunRecord{
		ID:          runID,
		Entity:      entity.Name,
		PackageName: entity.PackageName,
		Pattern:     req.Pattern,
		Policy:      string(policy),
		DryRun:      req.DryRun,
		Status:      RunStatusRunning,
	})

	if err := s.placement.RequireSourceRoot(ctx, req.Config, kinds, req.SourceRoots); err != nil {
		return nil, s.fail(ctx, runID, firstPlacedByPackage(req.Config, kinds), nil, err)
	}
	if err := s.placement.PrepareCustomPaths(ctx, req.Config, kinds, req.DryRun); err != nil {
		s.finishRun(ctx, runID, err)
		return nil, err
	}

	gen := scaffold.NewGenerator(scaffold.WithTemplateOverrides(req.TemplateOverrides))
	resp := &primary.GenerateResponse{RunID: runID}
	for i, kind := range kinds {
		if err := ctx.Err(); err != nil {
			return nil, s.fail(ctx, runID, kind, resp.Placed, err)
		}

		art, err := s.synthesize(gen, kind, kinds, req)
		if err != nil {
			return nil, s.fail(ctx, runID, kind, resp.Placed, err)
		}

		placed, err := s.placement.Place(ctx, primary.PlaceRequest{
			Artifact:    art,
			CustomPath:  req.Config.CustomPath(kind),
			SourceRoots: req.SourceRoots,
			Policy:      policy,
			DryRun:      req.DryRun,
		})
		if err != nil {
			return nil, s.fail(ctx, runID, kind, resp.Placed, err)
		}
		resp.Placed = append(resp.Placed, placed)
		s.recordArtifact(ctx, runID, i, placed)

		log.Info("artifact placed",
			zap.String("kind", string(kind)),
			zap.String("path", placed.Path),
			zap.String("outcome", string(placed.Outcome)),
		)
	}

	s.finishRun(ctx, runID, nil)
	return resp, nil
}

// FindExisting lists files previously generated for entityName below the
// source roots, in walk order.
func (s *GenerationServiceImpl) FindExisting(ctx context.Context, entityName string, sourceRoots []string) ([]string, error) {
	if len(sourceRoots) == 0 {
		sourceRoots = []string{config.DefaultSourceRoot}
	}
	wanted := existingFileNames(entityName)

	var found []string
	for _, root := range sourceRoots {
		ok, err := s.fs.DirExists(ctx, root)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", root, err)
		}
		if !ok {
			continue
		}
		err = s.fs.Walk(ctx, root, func(p string) error {
			if wanted[path.Base(p)] {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}
	return found, nil
}

// Helper methods

func (s *GenerationServiceImpl) synthesize(gen *scaffold.Generator, kind models.ArtifactKind, kinds []models.ArtifactKind, req primary.GenerateRequest) (*models.Artifact, error) {
	switch kind {
	case models.KindDTO:
		return gen.GenerateDTO(req.Entity, req.Config, req.DtoFields, req.ValidationOptions, req.DtoName)
	case models.KindRepository:
		return gen.GenerateRepository(req.Entity, req.Config, req.FilterFields)
	case models.KindService:
		return gen.GenerateService(req.Entity, req.Config, containsKind(kinds, models.KindRepository))
	case models.KindController:
		return gen.GenerateController(req.Entity, req.Config, containsKind(kinds, models.KindService), req.DtoName)
	case models.KindFilter:
		return gen.GenerateFilter(req.Entity, req.Config, req.FilterFields)
	default:
		return nil, fmt.Errorf("unknown artifact kind: %s", kind)
	}
}

func (s *GenerationServiceImpl) fail(ctx context.Context, runID string, kind models.ArtifactKind, placed []*models.PlacedArtifact, cause error) error {
	err := &models.GenerationError{Kind: kind, Placed: placed, Err: cause}
	logger.FromContext(ctx).Error("generation failed", zap.String("kind", string(kind)), zap.Error(cause))
	s.finishRun(ctx, runID, err)
	return err
}

func (s *GenerationServiceImpl) recordRun(ctx context.Context, run *secondary.RunRecord) {
	if s.historyRepo == nil {
		return
	}
	if err := s.historyRepo.CreateRun(ctx, run); err != nil {
		logger.FromContext(ctx).Warn("failed to record run", zap.Error(err))
	}
}

func (s *GenerationServiceImpl) recordArtifact(ctx context.Context, runID string, position int, placed *models.PlacedArtifact) {
	if s.historyRepo == nil {
		return
	}
	err := s.historyRepo.AddArtifact(ctx, &secondary.ArtifactRecord{
		RunID:     runID,
		Kind:      string(placed.Artifact.Kind),
		ClassName: placed.Artifact.ClassName,
		Path:      placed.Path,
		Outcome:   string(placed.Outcome),
		Position:  position,
	})
	if err != nil {
		logger.FromContext(ctx).Warn("failed to record artifact", zap.Error(err))
	}
}

func (s *GenerationServiceImpl) finishRun(ctx context.Context, runID string, cause error) {
	if s.historyRepo == nil {
		return
	}
	status, msg := RunStatusSucceeded, ""
	if cause != nil {
		status, msg = RunStatusFailed, cause.Error()
	}
	if err := s.historyRepo.UpdateRunStatus(context.WithoutCancel(ctx), runID, status, msg); err != nil {
		logger.FromContext(ctx).Warn("failed to update run", zap.Error(err))
	}
}

func existingFileNames(entityName string) map[string]bool {
	names := map[string]bool{
		naming.ClassName(models.KindService, entityName) + "Impl.java": true,
		entityName + "Filter.java":                                      true,
	}
	for _, kind := range models.GenerationOrder {
		names[naming.ClassName(kind, entityName)+".java"] = true
	}
	return names
}

func containsKind(kinds []models.ArtifactKind, k models.ArtifactKind) bool {
	for _, c := range kinds {
		if c == k {
			return true
		}
	}
	return false
}

func kindNames(kinds []models.ArtifactKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

// Ensure GenerationServiceImpl implements the interface
var _ primary.GenerationService = (*GenerationServiceImpl)(nil)
