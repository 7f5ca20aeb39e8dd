package scaffold

import (
	"sort"
	"strings"
	"unicode"
)

// knownTypeImports maps simple JDK type names to their import.
var knownTypeImports = map[string]string{
	"BigDecimal":     "java.math.BigDecimal",
	"BigInteger":     "java.math.BigInteger",
	"LocalDate":      "java.time.LocalDate",
	"LocalDateTime":  "java.time.LocalDateTime",
	"LocalTime":      "java.time.LocalTime",
	"Instant":        "java.time.Instant",
	"OffsetDateTime": "java.time.OffsetDateTime",
	"ZonedDateTime":  "java.time.ZonedDateTime",
	"Date":           "java.util.Date",
	"Calendar":       "java.util.Calendar",
	"UUID":           "java.util.UUID",
	"List":           "java.util.List",
	"Set":            "java.util.Set",
	"Map":            "java.util.Map",
	"Collection":     "java.util.Collection",
}

// importSet collects imports without duplicates.
type importSet map[string]struct{}

func (s importSet) add(imports ...string) {
	for _, imp := range imports {
		if imp != "" {
			s[imp] = struct{}{}
		}
	}
}

// addType adds the imports needed by a declared type, including its type
// arguments. Qualified names need no import.
func (s importSet) addType(declaredType string) {
	for _, token := range typeTokens(declaredType) {
		if imp, ok := knownTypeImports[token]; ok {
			s.add(imp)
		}
	}
}

// sorted returns the imports in lexical order.
func (s importSet) sorted() []string {
	out := make([]string, 0, len(s))
	for imp := range s {
		out = append(out, imp)
	}
	sort.Strings(out)
	return out
}

// typeTokens splits a declared type into its unqualified identifiers:
// "Map<String, List<LocalDate>>" -> [Map String List LocalDate].
func typeTokens(declaredType string) []string {
	fields := strings.FieldsFunc(declaredType, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' || r == '$')
	})
	var tokens []string
	for _, f := range fields {
		if strings.Contains(f, ".") {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
