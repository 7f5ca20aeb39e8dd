// Package introspect extracts entity models from Java sources and from
// YAML/JSON entity descriptors.
package introspect

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/example/entitygen/internal/models"
	"github.com/example/entitygen/internal/ports/secondary"
)

// ErrIntrospectorUnavailable is returned for Java sources when the binary
// was built without cgo.
var ErrIntrospectorUnavailable = errors.New("java source introspection requires a cgo build")

// entityAnnotations are the qualified persistence-entity markers.
var entityAnnotations = []string{"javax.persistence.Entity", "jakarta.persistence.Entity"}

// Introspector reads entity models from files on fs.
type Introspector struct {
	fs       afero.Fs
	validate *validator.Validate
}

// NewIntrospector creates an Introspector over fs.
func NewIntrospector(fs afero.Fs) *Introspector {
	return &Introspector{fs: fs, validate: validator.New()}
}

var _ secondary.Introspector = (*Introspector)(nil)

// ExtractEntity reads the entity model stored at path. Java sources are
// parsed; .yaml, .yml and .json files are decoded as descriptors.
func (i *Introspector) ExtractEntity(ctx context.Context, path string) (*models.EntityModel, error) {
	data, err := afero.ReadFile(i.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read entity source: %w", err)
	}

	var entity *models.EntityModel
	switch strings.ToLower(filepath.Ext(path)) {
	case ".java":
		entity, err = parseJavaSource(ctx, data)
	case ".yaml", ".yml", ".json":
		entity, err = DecodeDescriptor(data)
	default:
		return nil, fmt.Errorf("unsupported entity source %q (want .java, .yaml, .yml or .json)", path)
	}
	if err != nil {
		return nil, err
	}

	if err := i.validate.Struct(entity); err != nil {
		return nil, fmt.Errorf("invalid entity in %s: %w", path, err)
	}
	return entity, nil
}

// IsEntity reports whether the class at path carries a persistence-entity
// marker annotation.
func (i *Introspector) IsEntity(ctx context.Context, path string) (bool, error) {
	entity, err := i.ExtractEntity(ctx, path)
	if err != nil {
		return false, err
	}
	return HasEntityMarker(entity), nil
}

// PackageOf returns the package declared by the source at path.
func (i *Introspector) PackageOf(ctx context.Context, path string) (string, error) {
	entity, err := i.ExtractEntity(ctx, path)
	if err != nil {
		return "", err
	}
	return entity.PackageName, nil
}

// HasEntityMarker reports whether the entity is annotated with a
// javax/jakarta persistence Entity annotation. An unresolved simple
// "Entity" annotation also counts.
func HasEntityMarker(entity *models.EntityModel) bool {
	for _, a := range entity.Annotations {
		a = strings.TrimPrefix(a, "@")
		if a == "Entity" {
			return true
		}
		for _, marker := range entityAnnotations {
			if a == marker {
				return true
			}
		}
	}
	return false
}

// DecodeDescriptor decodes a YAML (or JSON) entity descriptor.
//
//	name: Customer
//	package: com.acme.entity
//	annotations: [javax.persistence.Entity]
//	fields:
//	  - {name: id, type: Long, annotations: [javax.persistence.Id]}
//	  - {name: email, type: String}
func DecodeDescriptor(data []byte) (*models.EntityModel, error) {
	var entity models.EntityModel
	if err := yaml.Unmarshal(data, &entity); err != nil {
		return nil, fmt.Errorf("failed to parse entity descriptor: %w", err)
	}
	for idx := range entity.Fields {
		normaliseField(&entity.Fields[idx])
	}
	return &entity, nil
}
