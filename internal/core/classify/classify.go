// Package classify maps declared Java field types to semantic categories.
// All functions are pure.
package classify

import (
	"strings"

	"github.com/example/entitygen/internal/models"
)

// Category is the semantic class of a field type.
type Category string

const (
	CategoryString     Category = "string"
	CategoryNumeric    Category = "numeric"
	CategoryTemporal   Category = "temporal"
	CategoryBoolean    Category = "boolean"
	CategoryCollection Category = "collection"
	CategoryEnumLike   Category = "enum-like"
	CategoryOther      Category = "other"
)

var integralTypes = map[string]bool{
	"int": true, "Integer": true,
	"long": true, "Long": true,
	"short": true, "Short": true,
	"byte": true, "Byte": true,
}

var decimalTypes = map[string]bool{
	"float": true, "Float": true,
	"double": true, "Double": true,
	"BigDecimal": true,
}

var primitiveTypes = map[string]bool{
	"int": true, "long": true, "short": true, "byte": true,
	"float": true, "double": true, "boolean": true, "char": true,
}

// containerTypes is the closure of java.util container abstractions and
// their common implementations.
var containerTypes = map[string]bool{
	"Collection": true, "Iterable": true,
	"List": true, "ArrayList": true, "LinkedList": true,
	"Set": true, "HashSet": true, "LinkedHashSet": true, "TreeSet": true, "SortedSet": true,
	"Map": true, "HashMap": true, "LinkedHashMap": true, "TreeMap": true, "SortedMap": true,
	"Queue": true, "Deque": true,
}

var temporalMarkers = []string{"Date", "LocalDate", "LocalDateTime", "Calendar"}

// Classify returns the category of a declared type. Unknown types map to
// CategoryOther.
func Classify(declaredType string) Category {
	t := strings.TrimSpace(declaredType)
	raw := RawType(t)

	switch {
	case raw == "String":
		return CategoryString
	case IsNumeric(t):
		return CategoryNumeric
	case isContainer(t):
		return CategoryCollection
	case isTemporal(t):
		return CategoryTemporal
	case raw == "boolean" || raw == "Boolean":
		return CategoryBoolean
	default:
		return CategoryOther
	}
}

// ClassifyField classifies a field, honouring the introspector's collection
// and enum flags.
func ClassifyField(f models.FieldDescriptor) Category {
	if f.IsEnum {
		return CategoryEnumLike
	}
	if f.IsCollection {
		return CategoryCollection
	}
	return Classify(f.DeclaredType)
}

// RawType strips generic arguments and any package qualifier:
// "java.util.List<Order>" -> "List".
func RawType(declaredType string) string {
	t := strings.TrimSpace(declaredType)
	if i := strings.Index(t, "<"); i >= 0 {
		t = t[:i]
	}
	return models.SimpleName(strings.TrimSpace(t))
}

// IsNumeric reports whether the type is one of the supported numeric types.
func IsNumeric(declaredType string) bool {
	raw := RawType(declaredType)
	return integralTypes[raw] || decimalTypes[raw]
}

// IsIntegral reports whether the type is a whole-number type.
func IsIntegral(declaredType string) bool {
	return integralTypes[RawType(declaredType)]
}

// IsDecimal reports whether the type is a floating point or BigDecimal type.
func IsDecimal(declaredType string) bool {
	return decimalTypes[RawType(declaredType)]
}

// IsPrimitiveType reports whether the type is a Java primitive.
func IsPrimitiveType(declaredType string) bool {
	return primitiveTypes[strings.TrimSpace(declaredType)]
}

// IsIdentifier reports whether the field carries an identifier-marking
// annotation (any annotation whose simple name ends in "Id").
func IsIdentifier(f models.FieldDescriptor) bool {
	for _, a := range f.Annotations {
		if strings.HasSuffix(models.SimpleName(a), "Id") {
			return true
		}
	}
	return false
}

func isContainer(t string) bool {
	if strings.HasSuffix(t, "[]") {
		return true
	}
	return containerTypes[RawType(t)]
}

func isTemporal(t string) bool {
	for _, m := range temporalMarkers {
		if strings.Contains(t, m) {
			return true
		}
	}
	return false
}
