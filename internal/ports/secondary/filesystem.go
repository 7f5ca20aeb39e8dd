package secondary

import (
	"context"

	"github.com/example/entitygen/internal/models"
)

// FileSystem is the minimal file-system capability set used by placement.
// Paths are slash separated and relative to the project root.
type FileSystem interface {
	// DirExists reports whether path exists and is a directory.
	DirExists(ctx context.Context, path string) (bool, error)

	// FileExists reports whether path exists and is a regular file.
	FileExists(ctx context.Context, path string) (bool, error)

	// MkdirAll creates path and any missing parents.
	MkdirAll(ctx context.Context, path string) error

	// Mkdir creates a single directory whose parent must exist.
	Mkdir(ctx context.Context, path string) error

	// ReadFile returns the content of a file.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// Remove deletes a file.
	Remove(ctx context.Context, path string) error

	// WriteFile creates a file with the given content.
	WriteFile(ctx context.Context, path string, content []byte) error

	// Walk visits every regular file below root.
	Walk(ctx context.Context, root string, fn func(path string) error) error
}

// Confirmer asks whether an existing file may be overwritten.
type Confirmer interface {
	ConfirmOverwrite(ctx context.Context, path string) (bool, error)
}

// Introspector extracts entity metadata from a source file.
type Introspector interface {
	// ExtractEntity returns the entity model declared at path.
	ExtractEntity(ctx context.Context, path string) (*models.EntityModel, error)

	// IsEntity reports whether the class at path carries a persistence-entity marker.
	IsEntity(ctx context.Context, path string) (bool, error)

	// PackageOf returns the package declared at path.
	PackageOf(ctx context.Context, path string) (string, error)
}
