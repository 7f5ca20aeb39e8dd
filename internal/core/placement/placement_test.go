package placement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/entitygen/internal/core/effects"
	"github.com/example/entitygen/internal/models"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"/", ""},
		{"src/main/java", "src/main/java"},
		{"/src/main/java/", "src/main/java"},
		{" src//main/./java ", "src/main/java"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.in))
		})
	}
}

func TestAncestors(t *testing.T) {
	assert.Equal(t, []string{"a/b/c", "a/b", "a"}, Ancestors("a/b/c"))
	assert.Equal(t, []string{"a"}, Ancestors("a"))
	assert.Empty(t, Ancestors(""))
}

func TestParentPackageCandidates(t *testing.T) {
	got := ParentPackageCandidates([]string{"src/main/java", "gen"}, "com.acme.dto")
	assert.Equal(t, []string{"src/main/java/com/acme", "gen/com/acme"}, got)

	assert.Nil(t, ParentPackageCandidates([]string{"src/main/java"}, "dto"))
}

func TestIsImpl(t *testing.T) {
	assert.True(t, IsImpl("CustomerServiceImpl"))
	assert.False(t, IsImpl("CustomerService"))
	assert.False(t, IsImpl("Impl"))
}

func TestResolveDirectory(t *testing.T) {
	tests := []struct {
		name string
		ctx  ResolveContext
		want string
	}{
		{
			name: "custom path gets package segments",
			ctx: ResolveContext{
				PackageName: "com.acme.dto",
				ClassName:   "CustomerDto",
				CustomPath:  "/gen/java/",
				SourceRoot:  "src/main/java",
			},
			want: "gen/java/com/acme/dto",
		},
		{
			name: "existing parent package",
			ctx: ResolveContext{
				PackageName:      "com.acme.dto",
				ClassName:        "CustomerDto",
				ParentPackageDir: "src/main/java/com/acme",
				SourceRoot:       "src/main/java",
			},
			want: "src/main/java/com/acme/dto",
		},
		{
			name: "source root fallback",
			ctx: ResolveContext{
				PackageName: "com.acme.dto",
				ClassName:   "CustomerDto",
				SourceRoot:  "src/main/java",
			},
			want: "src/main/java/com/acme/dto",
		},
		{
			name: "impl subdirectory",
			ctx: ResolveContext{
				PackageName: "com.acme.service",
				ClassName:   "CustomerServiceImpl",
				SourceRoot:  "src/main/java",
			},
			want: "src/main/java/com/acme/service/impl",
		},
		{
			name: "blank custom path is ignored",
			ctx: ResolveContext{
				PackageName: "dto",
				ClassName:   "CustomerDto",
				CustomPath:  "  ",
				SourceRoot:  "src/main/java",
			},
			want: "src/main/java/dto",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDirectory(tt.ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDirectory_NoSourceRoot(t *testing.T) {
	_, err := ResolveDirectory(ResolveContext{PackageName: "com.acme.dto", ClassName: "CustomerDto"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrSourceRootNotFound))
}

func TestDecide(t *testing.T) {
	content := []byte("class A {}\n")

	assert.Equal(t, DecisionCreate, Decide(WriteContext{Content: content}))
	assert.Equal(t, DecisionSkip, Decide(WriteContext{Exists: true, Existing: []byte("class A {}\n"), Content: content}))
	assert.Equal(t, DecisionOverwrite, Decide(WriteContext{Exists: true, Existing: []byte("class B {}\n"), Content: content}))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, models.OutcomeCreated, Outcome(DecisionCreate))
	assert.Equal(t, models.OutcomeSkipped, Outcome(DecisionSkip))
	assert.Equal(t, models.OutcomeOverwritten, Outcome(DecisionOverwrite))
}

func TestPlanWrite(t *testing.T) {
	content := []byte("x")

	t.Run("create", func(t *testing.T) {
		plan := PlanWrite("src/a", "src/a/A.java", content, DecisionCreate)
		assert.Equal(t, "composite", plan.EffectType())
		assert.Equal(t, []string{"mkdir src/a", "write src/a/A.java"}, effects.Paths([]effects.Effect{plan}))

		write, ok := plan.Effects[1].(effects.FileEffect)
		require.True(t, ok)
		assert.Equal(t, content, write.Content)
		assert.Equal(t, FileMode, write.Mode)
	})

	t.Run("overwrite removes first", func(t *testing.T) {
		plan := PlanWrite("src/a", "src/a/A.java", content, DecisionOverwrite)
		assert.Equal(t, []string{"mkdir src/a", "remove src/a/A.java", "write src/a/A.java"}, effects.Paths([]effects.Effect{plan}))
	})

	t.Run("skip touches nothing", func(t *testing.T) {
		plan := PlanWrite("src/a", "src/a/A.java", content, DecisionSkip)
		assert.Empty(t, effects.Paths([]effects.Effect{plan}))
		require.Len(t, plan.Effects, 1)
		assert.Equal(t, "log", plan.Effects[0].EffectType())
	})
}
