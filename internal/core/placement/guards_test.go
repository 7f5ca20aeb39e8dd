package placement

import (
	"testing"

	"github.com/example/entitygen/internal/models"
)

func TestCheckPathSyntax(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"src/main/java", false},
		{"/gen/java", false},
		{"gen/../java", false},
		{`C:\code`, true},
		{"gen/java?", true},
		{`gen/"java"`, true},
		{"gen/<java>", true},
		{"gen|java", true},
		{"gen/*", true},
		{"../outside", true},
		{"a/../../outside", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := CheckPathSyntax(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckPathSyntax(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestCanUseCustomPath(t *testing.T) {
	tests := []struct {
		name        string
		ctx         CustomPathContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "nothing exists yet",
			ctx:         CustomPathContext{Path: "gen/java"},
			wantAllowed: true,
		},
		{
			name: "existing directory",
			ctx: CustomPathContext{
				Path:   "gen/java",
				States: map[string]PathState{"gen/java": PathDir, "gen": PathDir},
			},
			wantAllowed: true,
		},
		{
			name: "creatable under existing parent",
			ctx: CustomPathContext{
				Path:   "gen/java/dto",
				States: map[string]PathState{"gen": PathDir},
			},
			wantAllowed: true,
		},
		{
			name: "path is a file",
			ctx: CustomPathContext{
				Path:   "gen/java",
				States: map[string]PathState{"gen/java": PathFile, "gen": PathDir},
			},
			wantAllowed: false,
			wantReason:  "path exists but is a file",
		},
		{
			name: "parent is a file",
			ctx: CustomPathContext{
				Path:   "gen/java/dto",
				States: map[string]PathState{"gen": PathFile},
			},
			wantAllowed: false,
			wantReason:  "parent gen is a file and cannot hold directories",
		},
		{
			name:        "forbidden character",
			ctx:         CustomPathContext{Path: "gen:java"},
			wantAllowed: false,
			wantReason:  `contains forbidden character ':'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanUseCustomPath(tt.ctx)

			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCustomPathContextPathError(t *testing.T) {
	ctx := CustomPathContext{Kind: models.KindDTO, Path: "gen/java"}

	if pe := ctx.PathError(GuardResult{Allowed: true}); pe != nil {
		t.Errorf("expected nil PathError, got %v", pe)
	}

	pe := ctx.PathError(GuardResult{Allowed: false, Reason: "path exists but is a file"})
	if pe == nil {
		t.Fatal("expected PathError")
	}
	want := "the path 'gen/java' for dto is not valid or cannot be created: path exists but is a file"
	if pe.Error() != want {
		t.Errorf("Error() = %q, want %q", pe.Error(), want)
	}
}
