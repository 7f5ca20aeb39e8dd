// Package placement contains the pure decisions of artifact placement:
// directory resolution, impl routing, the write decision and the file
// effects that carry it out. It never touches the file system.
package placement

import (
	"fmt"
	"path"
	"strings"

	"github.com/example/entitygen/internal/core/effects"
	"github.com/example/entitygen/internal/core/naming"
	"github.com/example/entitygen/internal/models"
)

// ImplDir is the subdirectory receiving Impl-suffixed classes.
const ImplDir = "impl"

// Directory and file modes used by planned effects.
const (
	DirMode  uint32 = 0o755
	FileMode uint32 = 0o644
)

// Decision is the write decision for one artifact.
type Decision string

const (
	DecisionCreate    Decision = "create"
	DecisionSkip      Decision = "skip"
	DecisionOverwrite Decision = "overwrite"
)

// ResolveContext provides what directory resolution needs. ParentPackageDir
// and SourceRoot are filled by the caller from the file system; an empty
// value means nothing was found.
type ResolveContext struct {
	PackageName      string
	ClassName        string
	CustomPath       string
	ParentPackageDir string
	SourceRoot       string
}

// WriteContext provides the state of the target file.
type WriteContext struct {
	Exists   bool
	Existing []byte
	Content  []byte
}

// NormalizePath trims whitespace and leading slashes from a user supplied
// path and cleans it. Custom paths are always relative to the project root.
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if p == "." {
		return ""
	}
	return p
}

// PackagePath converts a dotted package name into a slash separated path.
func PackagePath(pkg string) string {
	return strings.Join(naming.PackageSegments(pkg), "/")
}

// Join joins path elements, ignoring empty ones.
func Join(elems ...string) string {
	var parts []string
	for _, e := range elems {
		if e != "" {
			parts = append(parts, e)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return path.Join(parts...)
}

// Ancestors returns p followed by each of its parents, nearest first.
//
//	Ancestors("a/b/c") == []string{"a/b/c", "a/b", "a"}
func Ancestors(p string) []string {
	var out []string
	for p != "" && p != "." {
		out = append(out, p)
		dir := path.Dir(p)
		if dir == p {
			break
		}
		p = dir
	}
	return out
}

// ParentPackageCandidates returns, for every source root, the directory the
// parent package of pkg would occupy. A single segment package has no
// parent and yields nothing.
func ParentPackageCandidates(sourceRoots []string, pkg string) []string {
	parent := naming.ParentPackage(pkg)
	if parent == "" {
		return nil
	}
	out := make([]string, 0, len(sourceRoots))
	for _, root := range sourceRoots {
		out = append(out, Join(root, PackagePath(parent)))
	}
	return out
}

// IsImpl reports whether className names an implementation class.
func IsImpl(className string) bool {
	return len(className) > len("Impl") && strings.HasSuffix(className, "Impl")
}

// ResolveDirectory picks the target directory of an artifact.
// Rules:
// - A custom path wins; package segments are created beneath it
// - Otherwise an existing parent package directory receives the last segment
// - Otherwise the source root receives the full package path
// - Impl classes go one level deeper into impl/
func ResolveDirectory(ctx ResolveContext) (string, error) {
	var dir string
	switch {
	case NormalizePath(ctx.CustomPath) != "":
		dir = Join(NormalizePath(ctx.CustomPath), PackagePath(ctx.PackageName))
	case ctx.ParentPackageDir != "":
		dir = Join(ctx.ParentPackageDir, naming.LastSegment(ctx.PackageName))
	case ctx.SourceRoot != "":
		dir = Join(ctx.SourceRoot, PackagePath(ctx.PackageName))
	default:
		return "", fmt.Errorf("%w for package %s", models.ErrSourceRootNotFound, ctx.PackageName)
	}
	if IsImpl(ctx.ClassName) {
		dir = Join(dir, ImplDir)
	}
	return dir, nil
}

// Decide compares the artifact with the file already at its path.
func Decide(ctx WriteContext) Decision {
	if !ctx.Exists {
		return DecisionCreate
	}
	if string(ctx.Existing) == string(ctx.Content) {
		return DecisionSkip
	}
	return DecisionOverwrite
}

// Outcome maps a decision to the outcome reported for the artifact.
func Outcome(d Decision) models.WriteOutcome {
	switch d {
	case DecisionSkip:
		return models.OutcomeSkipped
	case DecisionOverwrite:
		return models.OutcomeOverwritten
	default:
		return models.OutcomeCreated
	}
}

// PlanWrite returns the composite effect that carries out decision d for
// the file at filePath inside dir.
func PlanWrite(dir, filePath string, content []byte, d Decision) effects.CompositeEffect {
	if d == DecisionSkip {
		return effects.CompositeEffect{Effects: []effects.Effect{
			effects.LogEffect{
				Level:   "debug",
				Message: "artifact unchanged",
				Fields:  map[string]any{"path": filePath},
			},
		}}
	}

	effs := []effects.Effect{
		effects.FileEffect{Operation: effects.OpMkdir, Path: dir, Mode: DirMode},
	}
	if d == DecisionOverwrite {
		effs = append(effs, effects.FileEffect{Operation: effects.OpRemove, Path: filePath})
	}
	effs = append(effs,
		effects.FileEffect{Operation: effects.OpWrite, Path: filePath, Content: content, Mode: FileMode},
		effects.LogEffect{
			Level:   "info",
			Message: "artifact written",
			Fields:  map[string]any{"path": filePath, "outcome": string(Outcome(d))},
		},
	)
	return effects.CompositeEffect{Effects: effs}
}
