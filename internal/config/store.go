package config

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Store reads and writes the generator documents in a project root.
type Store struct {
	fs     afero.Fs
	logger *zap.Logger
}

// NewStore creates a Store over fs, which is expected to be rooted at the
// project directory.
func NewStore(fs afero.Fs, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{fs: fs, logger: logger}
}

// LoadArchitecture reads the architecture config. A missing or unparseable
// document is replaced by the default, which is persisted. Loading never
// fails.
func (s *Store) LoadArchitecture() *ArchitectureConfig {
	var cfg ArchitectureConfig
	if err := s.readJSON(ConfigFileName, &cfg); err != nil {
		s.logger.Warn("using default architecture config",
			zap.String("file", ConfigFileName), zap.Error(err))
		def := DefaultArchitectureConfig()
		if err := s.SaveArchitecture(def); err != nil {
			s.logger.Warn("failed to persist default config", zap.Error(err))
		}
		return def
	}
	return &cfg
}

// SaveArchitecture writes the architecture config as indented JSON.
func (s *Store) SaveArchitecture(cfg *ArchitectureConfig) error {
	return s.writeJSON(ConfigFileName, cfg)
}

// LoadStructures reads the project-structure templates. A missing,
// unparseable or empty document is replaced by the default template list.
func (s *Store) LoadStructures() []*ProjectStructureConfig {
	var templates []*ProjectStructureConfig
	err := s.readJSON(TemplatesFileName, &templates)
	if err == nil && len(templates) > 0 {
		return templates
	}
	if err == nil {
		err = fmt.Errorf("no templates defined")
	}

	s.logger.Warn("using default project structure",
		zap.String("file", TemplatesFileName), zap.Error(err))
	templates = []*ProjectStructureConfig{DefaultProjectStructure()}
	if err := s.SaveStructures(templates); err != nil {
		s.logger.Warn("failed to persist default structures", zap.Error(err))
	}
	return templates
}

// SaveStructures writes the project-structure templates.
func (s *Store) SaveStructures(templates []*ProjectStructureConfig) error {
	return s.writeJSON(TemplatesFileName, templates)
}

// ActiveStructure returns the named template, or the first one when name
// is empty.
func (s *Store) ActiveStructure(name string) (*ProjectStructureConfig, error) {
	templates := s.LoadStructures()
	if name == "" {
		return templates[0], nil
	}
	return FindStructure(templates, name)
}

// ReadTemplateOverrides loads the template files named in cfg.Templates,
// keyed by artifact kind.
func (s *Store) ReadTemplateOverrides(cfg *ArchitectureConfig) (map[string]string, error) {
	if len(cfg.Templates) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(cfg.Templates))
	for kind, path := range cfg.Templates {
		data, err := afero.ReadFile(s.fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s template: %w", kind, err)
		}
		out[kind] = string(data)
	}
	return out, nil
}

// ResolveOptions selects the preset and project structure of a request.
type ResolveOptions struct {
	Pattern     string
	BasePackage string
	Structure   string
}

// Resolved is the per-request view of the project documents.
type Resolved struct {
	Config            *ArchitectureConfig
	SourceRoots       []string
	TemplateOverrides map[string]string
}

// Resolve loads the architecture config with the requested pattern preset
// applied, the source roots of the active project structure and the
// template overrides. The stored config is never modified.
func (s *Store) Resolve(opts ResolveOptions) (*Resolved, error) {
	structure, err := s.ActiveStructure(opts.Structure)
	if err != nil {
		return nil, err
	}
	roots := structure.SourceRoots()

	cfg := s.LoadArchitecture()
	if opts.Pattern != "" {
		pattern, err := ParsePattern(opts.Pattern)
		if err != nil {
			return nil, err
		}
		cfg = ApplyPattern(cfg, pattern, roots[0], opts.BasePackage)
	}

	overrides, err := s.ReadTemplateOverrides(cfg)
	if err != nil {
		return nil, err
	}

	return &Resolved{
		Config:            cfg,
		SourceRoots:       roots,
		TemplateOverrides: overrides,
	}, nil
}

func (s *Store) readJSON(name string, v any) error {
	data, err := afero.ReadFile(s.fs, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	if err := afero.WriteFile(s.fs, name, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
