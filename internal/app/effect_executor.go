// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/entitygen/internal/core/effects"
	"github.com/example/entitygen/internal/core/placement"
	"github.com/example/entitygen/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor over the FileSystem port.
type DefaultEffectExecutor struct {
	fs     secondary.FileSystem
	logger *zap.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(fs secondary.FileSystem, logger *zap.Logger) *DefaultEffectExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultEffectExecutor{fs: fs, logger: logger}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.FileEffect:
		return e.executeFile(ctx, typed)
	case effects.CompositeEffect:
		return e.Execute(ctx, typed.Effects)
	case effects.LogEffect:
		e.executeLog(typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeFile(ctx context.Context, eff effects.FileEffect) error {
	switch eff.Operation {
	case effects.OpMkdir:
		return e.mkdir(ctx, eff.Path)
	case effects.OpWrite:
		return e.fs.WriteFile(ctx, eff.Path, eff.Content)
	case effects.OpRemove:
		return e.fs.Remove(ctx, eff.Path)
	default:
		return fmt.Errorf("unknown file operation: %s", eff.Operation)
	}
}

// mkdir creates dir with MkdirAll and, when that fails, retries one segment
// at a time from the top.
func (e *DefaultEffectExecutor) mkdir(ctx context.Context, dir string) error {
	err := e.fs.MkdirAll(ctx, dir)
	if err == nil {
		return nil
	}
	e.logger.Warn("directory creation failed, retrying by segment",
		zap.String("path", dir),
		zap.Error(err),
	)

	ancestors := placement.Ancestors(dir)
	for i := len(ancestors) - 1; i >= 0; i-- {
		p := ancestors[i]
		exists, err := e.fs.DirExists(ctx, p)
		if err != nil {
			return fmt.Errorf("failed to check directory %s: %w", p, err)
		}
		if exists {
			continue
		}
		if err := e.fs.Mkdir(ctx, p); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", p, err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeLog(eff effects.LogEffect) {
	fields := make([]zap.Field, 0, len(eff.Fields))
	for k, v := range eff.Fields {
		fields = append(fields, zap.Any(k, v))
	}

	switch eff.Level {
	case "debug":
		e.logger.Debug(eff.Message, fields...)
	case "warn":
		e.logger.Warn(eff.Message, fields...)
	case "error":
		e.logger.Error(eff.Message, fields...)
	default:
		e.logger.Info(eff.Message, fields...)
	}
}

// Ensure DefaultEffectExecutor implements the interface
var _ EffectExecutor = (*DefaultEffectExecutor)(nil)
