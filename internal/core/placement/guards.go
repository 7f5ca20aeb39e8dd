package placement

import (
	"fmt"
	"strings"

	"github.com/example/entitygen/internal/models"
)

// ForbiddenChars may not appear in a custom path.
const ForbiddenChars = `\:?"<>|*`

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// PathState is what the file system holds at a path.
type PathState int

const (
	PathMissing PathState = iota
	PathDir
	PathFile
)

// CustomPathContext provides context for custom path guards. States maps
// the path and each of its ancestors to what currently exists there.
type CustomPathContext struct {
	Kind   models.ArtifactKind
	Path   string
	States map[string]PathState
}

// CheckPathSyntax rejects paths with forbidden characters or paths that
// leave the project root.
func CheckPathSyntax(p string) error {
	if i := strings.IndexAny(p, ForbiddenChars); i >= 0 {
		return fmt.Errorf("contains forbidden character %q", p[i])
	}
	n := NormalizePath(p)
	if n == ".." || strings.HasPrefix(n, "../") {
		return fmt.Errorf("leaves the project root")
	}
	return nil
}

// CanUseCustomPath evaluates whether a custom path can hold artifacts.
// Rules:
// - Path must be syntactically valid
// - An existing path must be a directory
// - The nearest existing ancestor must be a directory so the rest can be created
func CanUseCustomPath(ctx CustomPathContext) GuardResult {
	if err := CheckPathSyntax(ctx.Path); err != nil {
		return GuardResult{Allowed: false, Reason: err.Error()}
	}

	target := NormalizePath(ctx.Path)
	for _, p := range Ancestors(target) {
		switch ctx.States[p] {
		case PathDir:
			return GuardResult{Allowed: true}
		case PathFile:
			if p == target {
				return GuardResult{Allowed: false, Reason: "path exists but is a file"}
			}
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("parent %s is a file and cannot hold directories", p),
			}
		}
	}

	return GuardResult{Allowed: true}
}

// PathError converts a rejected guard result into a typed path error.
func (ctx CustomPathContext) PathError(r GuardResult) *models.PathError {
	if r.Allowed {
		return nil
	}
	return &models.PathError{Kind: ctx.Kind, Path: ctx.Path, Reason: r.Reason}
}
