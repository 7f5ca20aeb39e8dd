package app

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/example/entitygen/internal/core/effects"
)

func TestEffectExecutor_FileEffects(t *testing.T) {
	fsys := newMockFileSystem()
	executor := NewEffectExecutor(fsys, nil)
	ctx := context.Background()

	err := executor.Execute(ctx, []effects.Effect{
		effects.FileEffect{Operation: effects.OpMkdir, Path: "out/a"},
		effects.CompositeEffect{Effects: []effects.Effect{
			effects.FileEffect{Operation: effects.OpWrite, Path: "out/a/A.java", Content: []byte("one")},
			effects.LogEffect{Level: "debug", Message: "written"},
		}},
		effects.FileEffect{Operation: effects.OpRemove, Path: "out/a/A.java"},
		effects.FileEffect{Operation: effects.OpWrite, Path: "out/a/A.java", Content: []byte("two")},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if got := fsys.read("out/a/A.java"); got != "two" {
		t.Errorf("content = %q, want %q", got, "two")
	}
	if len(fsys.removes) != 1 {
		t.Errorf("expected 1 remove, got %d", len(fsys.removes))
	}
}

func TestEffectExecutor_UnknownOperation(t *testing.T) {
	executor := NewEffectExecutor(newMockFileSystem(), nil)

	err := executor.Execute(context.Background(), []effects.Effect{
		effects.FileEffect{Operation: "chmod", Path: "x"},
	})
	if err == nil {
		t.Fatal("expected error for unknown operation")
	}
	if err.Error() != "failed to execute file effect: unknown file operation: chmod" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEffectExecutor_MkdirFallbackSurfacesError(t *testing.T) {
	fsys := newMockFileSystem()
	fsys.mkdirAllErr = errors.New("denied")
	fsys.put("out", "i am a file")
	executor := NewEffectExecutor(fsys, nil)

	err := executor.Execute(context.Background(), []effects.Effect{
		effects.FileEffect{Operation: effects.OpMkdir, Path: "out/a"},
	})
	if err == nil {
		t.Fatal("expected error when a path component is a file")
	}
}

func TestEffectExecutor_LogEffect(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	executor := NewEffectExecutor(newMockFileSystem(), zap.New(core))

	err := executor.Execute(context.Background(), []effects.Effect{
		effects.LogEffect{Level: "debug", Message: "d"},
		effects.LogEffect{Level: "warn", Message: "w", Fields: map[string]any{"path": "a"}},
		effects.LogEffect{Message: "i"},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 log entries, got %d", len(entries))
	}
	wantLevels := []zapcore.Level{zapcore.DebugLevel, zapcore.WarnLevel, zapcore.InfoLevel}
	for i, want := range wantLevels {
		if entries[i].Level != want {
			t.Errorf("entries[%d].Level = %s, want %s", i, entries[i].Level, want)
		}
	}
	if entries[1].ContextMap()["path"] != "a" {
		t.Errorf("expected path field on warn entry, got %v", entries[1].ContextMap())
	}
}
