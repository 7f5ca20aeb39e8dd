package config

import (
	"fmt"
	"strings"

	"github.com/example/entitygen/internal/models"
)

// Pattern names a package-layout convention.
type Pattern string

const (
	PatternDefault Pattern = "default"
	PatternMVC     Pattern = "mvc"
	PatternDDD     Pattern = "ddd"
)

// DefaultBasePackage is used when a preset is applied without a base package.
const DefaultBasePackage = "com.example"

var patternLayouts = map[Pattern]map[models.ArtifactKind]string{
	PatternMVC: {
		models.KindDTO:        "model/dto",
		models.KindService:    "service",
		models.KindRepository: "repository",
		models.KindController: "controller",
		models.KindFilter:     "filter",
	},
	PatternDDD: {
		models.KindDTO:        "domain/dto",
		models.KindService:    "domain/service",
		models.KindRepository: "domain/repository",
		models.KindController: "application/controller",
		models.KindFilter:     "infrastructure/filter",
	},
}

// ParsePattern converts a user supplied name into a Pattern.
func ParsePattern(s string) (Pattern, error) {
	switch p := Pattern(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PatternDefault:
		return PatternDefault, nil
	case PatternMVC, PatternDDD:
		return p, nil
	default:
		return "", fmt.Errorf("unknown architecture pattern %q (valid: default, mvc, ddd)", s)
	}
}

// ApplyPattern returns a copy of cfg whose custom paths follow the pattern,
// rooted at sourceRoot/<basePackage as path>. The default pattern clears
// custom paths so placement follows package names.
func ApplyPattern(cfg *ArchitectureConfig, pattern Pattern, sourceRoot, basePackage string) *ArchitectureConfig {
	out := cfg.Clone()

	layout, ok := patternLayouts[pattern]
	if !ok {
		for _, kind := range models.GenerationOrder {
			out.SetCustomPath(kind, "")
		}
		return out
	}

	if basePackage = strings.TrimSpace(basePackage); basePackage == "" {
		basePackage = DefaultBasePackage
	}
	if sourceRoot == "" {
		sourceRoot = DefaultSourceRoot
	}
	base := sourceRoot + "/" + strings.ReplaceAll(basePackage, ".", "/")

	for kind, rel := range layout {
		out.SetCustomPath(kind, base+"/"+rel)
	}
	return out
}

// SuggestedFolders lists the common component folders for a base package,
// covering the flat and DDD layouts.
func SuggestedFolders(sourceRoot, basePackage string) []string {
	if basePackage == "" {
		basePackage = DefaultBasePackage
	}
	if sourceRoot == "" {
		sourceRoot = DefaultSourceRoot
	}
	base := sourceRoot + "/" + strings.ReplaceAll(basePackage, ".", "/")

	folders := []string{"", sourceRoot, base}
	for _, rel := range []string{"dto", "model", "service", "repository", "controller", "filter"} {
		folders = append(folders, base+"/"+rel)
	}
	for _, kind := range models.GenerationOrder {
		folders = append(folders, base+"/"+patternLayouts[PatternDDD][kind])
	}
	return folders
}
