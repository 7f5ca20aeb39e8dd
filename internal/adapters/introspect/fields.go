package introspect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/example/entitygen/internal/core/classify"
	"github.com/example/entitygen/internal/core/naming"
	"github.com/example/entitygen/internal/models"
)

var javaIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// ParseFields parses the --fields DSL into field descriptors.
// Format: "id:Long@Id,name:String,tags:List<String>,status:Status@Enumerated"
func ParseFields(fieldsStr string) ([]models.FieldDescriptor, error) {
	if strings.TrimSpace(fieldsStr) == "" {
		return nil, nil
	}

	var fields []models.FieldDescriptor
	seen := make(map[string]bool)
	for _, part := range splitTopLevel(fieldsStr) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		field, err := parseField(part)
		if err != nil {
			return nil, err
		}
		if seen[field.Name] {
			return nil, fmt.Errorf("duplicate field %q", field.Name)
		}
		seen[field.Name] = true
		fields = append(fields, field)
	}

	return fields, nil
}

// BuildEntity builds an entity model from a class name, package and the
// fields DSL.
func BuildEntity(name, packageName, fieldsStr string) (*models.EntityModel, error) {
	if name == "" {
		return nil, fmt.Errorf("entity name is required")
	}

	fields, err := ParseFields(fieldsStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fields: %w", err)
	}

	return &models.EntityModel{
		Name:        naming.ToPascalCase(name),
		PackageName: strings.TrimSpace(packageName),
		Fields:      fields,
	}, nil
}

// parseField parses "name:Type" followed by any number of "@Annotation".
func parseField(spec string) (models.FieldDescriptor, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return models.FieldDescriptor{}, fmt.Errorf("invalid field spec %q: expected 'name:Type'", spec)
	}

	name := strings.TrimSpace(parts[0])
	if strings.ContainsAny(name, "_-") {
		name = naming.ToCamelCase(name)
	}
	if !javaIdentifier.MatchString(name) {
		return models.FieldDescriptor{}, fmt.Errorf("invalid field spec %q: %q is not a valid field name", spec, name)
	}

	typeAndAnnotations := strings.Split(parts[1], "@")
	declaredType := strings.TrimSpace(typeAndAnnotations[0])
	if declaredType == "" {
		return models.FieldDescriptor{}, fmt.Errorf("invalid field spec %q: empty type", spec)
	}

	field := models.FieldDescriptor{Name: name, DeclaredType: declaredType}
	for _, a := range typeAndAnnotations[1:] {
		if a = strings.TrimSpace(a); a != "" {
			field.Annotations = append(field.Annotations, a)
		}
	}
	normaliseField(&field)
	return field, nil
}

// normaliseField derives the primitive, collection and enum flags from the
// declared type and annotations.
func normaliseField(f *models.FieldDescriptor) {
	if classify.IsPrimitiveType(f.DeclaredType) {
		f.IsPrimitive = true
	}
	if classify.Classify(f.DeclaredType) == classify.CategoryCollection {
		f.IsCollection = true
	}
	if f.HasAnnotation("Enumerated") {
		f.IsEnum = true
	}
}

// splitTopLevel splits on commas that are not inside generic brackets.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
