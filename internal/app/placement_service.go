package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/entitygen/internal/config"
	"github.com/example/entitygen/internal/core/effects"
	"github.com/example/entitygen/internal/core/generation"
	"github.com/example/entitygen/internal/core/placement"
	"github.com/example/entitygen/internal/logger"
	"github.com/example/entitygen/internal/models"
	"github.com/example/entitygen/internal/ports/primary"
	"github.com/example/entitygen/internal/ports/secondary"
)

// ErrNoConfirmer is returned when the confirm policy meets a conflict and
// no Confirmer was injected.
var ErrNoConfirmer = errors.New("overwrite policy confirm requires a confirmer")

// PlacementServiceImpl implements the PlacementService interface.
type PlacementServiceImpl struct {
	fs        secondary.FileSystem
	confirmer secondary.Confirmer
	executor  EffectExecutor
	logger    *zap.Logger
}

// NewPlacementService creates a new PlacementService with injected dependencies.
// confirmer may be nil when only the silent policy is used.
func NewPlacementService(fs secondary.FileSystem, confirmer secondary.Confirmer, executor EffectExecutor, logger *zap.Logger) *PlacementServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlacementServiceImpl{
		fs:        fs,
		confirmer: confirmer,
		executor:  executor,
		logger:    logger,
	}
}

// Place resolves the target directory of an artifact and writes it.
func (s *PlacementServiceImpl) Place(ctx context.Context, req primary.PlaceRequest) (*models.PlacedArtifact, error) {
	if req.Artifact == nil {
		return nil, fmt.Errorf("no artifact to place")
	}
	art := req.Artifact
	log := s.log(ctx).With(zap.String("class", art.QualifiedName()))

	rctx := placement.ResolveContext{
		PackageName: art.PackageName,
		ClassName:   art.ClassName,
		CustomPath:  req.CustomPath,
	}
	if placement.NormalizePath(req.CustomPath) == "" {
		roots := req.SourceRoots
		if len(roots) == 0 {
			roots = []string{config.DefaultSourceRoot}
		}
		parentDir, err := s.firstDir(ctx, placement.ParentPackageCandidates(roots, art.PackageName))
		if err != nil {
			return nil, err
		}
		sourceRoot, err := s.firstDir(ctx, roots)
		if err != nil {
			return nil, err
		}
		rctx.ParentPackageDir = parentDir
		rctx.SourceRoot = sourceRoot
	}

	dir, err := placement.ResolveDirectory(rctx)
	if err != nil {
		return nil, err
	}
	filePath := placement.Join(dir, art.FileName())
	placed := &models.PlacedArtifact{Artifact: art, Directory: dir, Path: filePath}

	exists, err := s.fs.FileExists(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", filePath, err)
	}
	wctx := placement.WriteContext{Exists: exists, Content: []byte(art.SourceText)}
	if exists {
		wctx.Existing, err = s.fs.ReadFile(ctx, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
		}
	}
	decision := placement.Decide(wctx)

	if req.DryRun {
		placed.Outcome = models.OutcomePlanned
		if decision == placement.DecisionSkip {
			placed.Outcome = models.OutcomeSkipped
		}
		log.Debug("dry run", zap.String("path", filePath), zap.String("decision", string(decision)))
		return placed, nil
	}

	if decision == placement.DecisionOverwrite && req.Policy == models.PolicyConfirm {
		if s.confirmer == nil {
			return nil, ErrNoConfirmer
		}
		ok, err := s.confirmer.ConfirmOverwrite(ctx, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to confirm overwrite of %s: %w", filePath, err)
		}
		if !ok {
			log.Info("overwrite declined", zap.String("path", filePath))
			placed.Outcome = models.OutcomeDeclined
			return placed, nil
		}
	}

	if err := s.executor.Execute(ctx, []effects.Effect{placement.PlanWrite(dir, filePath, wctx.Content, decision)}); err != nil {
		return nil, fmt.Errorf("failed to place %s: %w", art.ClassName, err)
	}
	placed.Outcome = placement.Outcome(decision)
	return placed, nil
}

// PrepareCustomPaths validates every custom path of cfg used by kinds and
// creates the missing directories. Nothing is created unless every path is
// valid.
func (s *PlacementServiceImpl) PrepareCustomPaths(ctx context.Context, cfg *config.ArchitectureConfig, kinds []models.ArtifactKind, dryRun bool) error {
	var pathErrs models.PathErrors
	var valid []string
	seen := make(map[string]bool)

	for _, kind := range generation.Ordered(kinds) {
		raw := cfg.CustomPath(kind)
		target := placement.NormalizePath(raw)
		if target == "" && placement.CheckPathSyntax(raw) == nil {
			continue
		}

		pctx := placement.CustomPathContext{Kind: kind, Path: raw}
		if placement.CheckPathSyntax(raw) == nil {
			states, err := s.pathStates(ctx, target)
			if err != nil {
				return err
			}
			pctx.States = states
		}
		if pe := pctx.PathError(placement.CanUseCustomPath(pctx)); pe != nil {
			pathErrs = append(pathErrs, pe)
			continue
		}
		if !seen[target] {
			seen[target] = true
			valid = append(valid, target)
		}
	}
	if len(pathErrs) > 0 {
		return pathErrs
	}
	if dryRun {
		return nil
	}

	for _, dir := range valid {
		eff := effects.FileEffect{Operation: effects.OpMkdir, Path: dir, Mode: placement.DirMode}
		if err := s.executor.Execute(ctx, []effects.Effect{eff}); err != nil {
			pathErrs = append(pathErrs, &models.PathError{Path: dir, Reason: err.Error()})
		}
	}
	if len(pathErrs) > 0 {
		return pathErrs
	}
	return nil
}

// RequireSourceRoot checks that kinds placed by package have a source root
// to land in. Kinds with a custom path never need one.
func (s *PlacementServiceImpl) RequireSourceRoot(ctx context.Context, cfg *config.ArchitectureConfig, kinds []models.ArtifactKind, sourceRoots []string) error {
	kind := firstPlacedByPackage(cfg, kinds)
	if kind == "" {
		return nil
	}

	if len(sourceRoots) == 0 {
		sourceRoots = []string{config.DefaultSourceRoot}
	}
	root, err := s.firstDir(ctx, sourceRoots)
	if err != nil {
		return err
	}
	if root == "" {
		return fmt.Errorf("%w for %s under %s", models.ErrSourceRootNotFound, kind, strings.Join(sourceRoots, ", "))
	}
	return nil
}

// Helper methods

// firstPlacedByPackage returns the first kind in generation order without a
// custom path, or "".
func firstPlacedByPackage(cfg *config.ArchitectureConfig, kinds []models.ArtifactKind) models.ArtifactKind {
	for _, k := range generation.Ordered(kinds) {
		if placement.NormalizePath(cfg.CustomPath(k)) == "" {
			return k
		}
	}
	return ""
}

func (s *PlacementServiceImpl) firstDir(ctx context.Context, candidates []string) (string, error) {
	for _, c := range candidates {
		ok, err := s.fs.DirExists(ctx, c)
		if err != nil {
			return "", fmt.Errorf("failed to check directory %s: %w", c, err)
		}
		if ok {
			return c, nil
		}
	}
	return "", nil
}

func (s *PlacementServiceImpl) pathStates(ctx context.Context, target string) (map[string]placement.PathState, error) {
	states := make(map[string]placement.PathState)
	for _, p := range placement.Ancestors(target) {
		isDir, err := s.fs.DirExists(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", p, err)
		}
		if isDir {
			states[p] = placement.PathDir
			break
		}
		isFile, err := s.fs.FileExists(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", p, err)
		}
		if isFile {
			states[p] = placement.PathFile
			break
		}
	}
	return states, nil
}

func (s *PlacementServiceImpl) log(ctx context.Context) *zap.Logger {
	if logger.RunID(ctx) != "" {
		return logger.FromContext(ctx)
	}
	return s.logger
}

// Ensure PlacementServiceImpl implements the interface
var _ primary.PlacementService = (*PlacementServiceImpl)(nil)
