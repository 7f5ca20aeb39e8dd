// Package config holds the project level generator documents
// (architecture config and project-structure templates) and the tool's own
// runtime settings.
package config

import (
	"github.com/example/entitygen/internal/models"
)

// Document file names, relative to the project root.
const (
	ConfigFileName    = "entity-generator-config.json"
	TemplatesFileName = "entity-generator-templates.json"
)

// ArchitectureConfig controls package suffixes, code style and placement
// overrides for the generated artifacts.
type ArchitectureConfig struct {
	Name                 string            `json:"name"`
	Description          string            `json:"description"`
	DtoPackage           string            `json:"dtoPackage"`
	ServicePackage       string            `json:"servicePackage"`
	RepositoryPackage    string            `json:"repositoryPackage"`
	ControllerPackage    string            `json:"controllerPackage"`
	FilterPackage        string            `json:"filterPackage"`
	UseLombok            bool              `json:"useLombok"`
	UseDtoValidation     bool              `json:"useDtoValidation"`
	CustomDtoPath        string            `json:"customDtoPath"`
	CustomServicePath    string            `json:"customServicePath"`
	CustomRepositoryPath string            `json:"customRepositoryPath"`
	CustomControllerPath string            `json:"customControllerPath"`
	CustomFilterPath     string            `json:"customFilterPath"`
	Templates            map[string]string `json:"templates,omitempty"`
}

// DefaultArchitectureConfig returns the configuration used when no
// document exists or it cannot be parsed.
func DefaultArchitectureConfig() *ArchitectureConfig {
	return &ArchitectureConfig{
		Name:              "Default",
		Description:       "Default architecture pattern",
		DtoPackage:        "dto",
		ServicePackage:    "service",
		RepositoryPackage: "repository",
		ControllerPackage: "controller",
		FilterPackage:     "filter",
		UseLombok:         true,
	}
}

// Clone returns a deep copy.
func (c *ArchitectureConfig) Clone() *ArchitectureConfig {
	clone := *c
	if c.Templates != nil {
		clone.Templates = make(map[string]string, len(c.Templates))
		for k, v := range c.Templates {
			clone.Templates[k] = v
		}
	}
	return &clone
}

// PackageSuffix returns the package suffix configured for an artifact kind.
// The filter suffix is relative to the DTO package.
func (c *ArchitectureConfig) PackageSuffix(kind models.ArtifactKind) string {
	switch kind {
	case models.KindDTO:
		return c.DtoPackage
	case models.KindRepository:
		return c.RepositoryPackage
	case models.KindService:
		return c.ServicePackage
	case models.KindController:
		return c.ControllerPackage
	case models.KindFilter:
		return c.FilterPackage
	default:
		return ""
	}
}

// CustomPath returns the placement override for an artifact kind, or "".
func (c *ArchitectureConfig) CustomPath(kind models.ArtifactKind) string {
	switch kind {
	case models.KindDTO:
		return c.CustomDtoPath
	case models.KindRepository:
		return c.CustomRepositoryPath
	case models.KindService:
		return c.CustomServicePath
	case models.KindController:
		return c.CustomControllerPath
	case models.KindFilter:
		return c.CustomFilterPath
	default:
		return ""
	}
}

// SetCustomPath sets the placement override for an artifact kind.
func (c *ArchitectureConfig) SetCustomPath(kind models.ArtifactKind, path string) {
	switch kind {
	case models.KindDTO:
		c.CustomDtoPath = path
	case models.KindRepository:
		c.CustomRepositoryPath = path
	case models.KindService:
		c.CustomServicePath = path
	case models.KindController:
		c.CustomControllerPath = path
	case models.KindFilter:
		c.CustomFilterPath = path
	}
}
