// Package naming holds the naming conventions shared by every generator:
// case transforms, route pluralisation, package derivation and repository
// finder names.
package naming

import (
	"strings"
	"unicode"

	"github.com/example/entitygen/internal/models"
)

// packageStripSuffixes are the trailing entity package segments replaced
// by the component suffix when deriving a sibling package.
var packageStripSuffixes = []string{".entity", ".entities", ".model", ".models"}

// Capitalize upper-cases the first letter and leaves the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Decapitalize lower-cases the first letter and leaves the rest untouched.
func Decapitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// Pluralize appends "s". Route names follow this rule exactly, even for
// words whose English plural differs.
func Pluralize(s string) string {
	if s == "" {
		return s
	}
	return s + "s"
}

// RouteBase returns the controller base path for an entity: "/customers".
func RouteBase(entityName string) string {
	return "/" + Pluralize(Decapitalize(entityName))
}

// DerivePackageName strips a trailing entity/model segment from the entity
// package and appends the component suffix.
//
//	DerivePackageName("com.acme.entity", "dto") == "com.acme.dto"
func DerivePackageName(entityPackage, componentSuffix string) string {
	base := entityPackage
	for _, suffix := range packageStripSuffixes {
		if strings.HasSuffix(base, suffix) {
			base = strings.TrimSuffix(base, suffix)
			break
		}
	}
	if componentSuffix == "" {
		return base
	}
	if base == "" {
		return componentSuffix
	}
	return base + "." + componentSuffix
}

// ParentPackage returns everything before the last package segment.
func ParentPackage(pkg string) string {
	if i := strings.LastIndex(pkg, "."); i >= 0 {
		return pkg[:i]
	}
	return ""
}

// LastSegment returns the last package segment.
func LastSegment(pkg string) string {
	if i := strings.LastIndex(pkg, "."); i >= 0 {
		return pkg[i+1:]
	}
	return pkg
}

// PackageSegments splits a package name into path segments.
func PackageSegments(pkg string) []string {
	if pkg == "" {
		return nil
	}
	return strings.Split(pkg, ".")
}

// ClassName returns the conventional class name for an artifact kind.
func ClassName(kind models.ArtifactKind, entityName string) string {
	switch kind {
	case models.KindDTO:
		return entityName + "Dto"
	case models.KindRepository:
		return entityName + "Repository"
	case models.KindService:
		return entityName + "Service"
	case models.KindController:
		return entityName + "Controller"
	case models.KindFilter:
		return entityName + "Param"
	default:
		return entityName
	}
}

// DtoClassName returns the DTO class name, honouring a caller override.
// The override gets a "Dto" suffix only when it does not already end in one.
func DtoClassName(entityName, override string) string {
	override = strings.TrimSpace(override)
	if override == "" {
		return ClassName(models.KindDTO, entityName)
	}
	if strings.HasSuffix(override, "Dto") {
		return override
	}
	return override + "Dto"
}

// FinderName builds a repository finder: FinderName("email", "ContainingIgnoreCase")
// == "findByEmailContainingIgnoreCase".
func FinderName(fieldName, suffix string) string {
	return "findBy" + Capitalize(fieldName) + suffix
}

// CombinedFinderName joins capitalised field names with "And" in selection
// order: "findByNameAndAge".
func CombinedFinderName(fieldNames []string) string {
	parts := make([]string, len(fieldNames))
	for i, n := range fieldNames {
		parts[i] = Capitalize(n)
	}
	return "findBy" + strings.Join(parts, "And")
}

// GetterName returns the JavaBean getter for a field.
func GetterName(fieldName string) string {
	return "get" + Capitalize(fieldName)
}

// SetterName returns the JavaBean setter for a field.
func SetterName(fieldName string) string {
	return "set" + Capitalize(fieldName)
}

// ToPascalCase converts snake_case, kebab-case or camelCase to PascalCase.
func ToPascalCase(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = Capitalize(word)
	}
	return strings.Join(words, "")
}

// ToCamelCase converts a string to camelCase.
func ToCamelCase(s string) string {
	return Decapitalize(ToPascalCase(s))
}

// splitWords splits on '_', '-', spaces and lower-to-upper transitions.
func splitWords(s string) []string {
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	var result strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsSpace(prev) && !unicode.IsUpper(prev) {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
		prev = r
	}

	return strings.Fields(result.String())
}
