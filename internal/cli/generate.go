package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	cliadapter "github.com/example/entitygen/internal/adapters/cli"
	"github.com/example/entitygen/internal/adapters/introspect"
	"github.com/example/entitygen/internal/config"
	"github.com/example/entitygen/internal/core/validation"
	"github.com/example/entitygen/internal/models"
	"github.com/example/entitygen/internal/ports/primary"
	"github.com/example/entitygen/internal/ports/secondary"
	"github.com/example/entitygen/internal/wire"
)

// defaultComponents are generated when --components is not given.
var defaultComponents = []string{"dto", "repository", "service", "controller"}

type generateFlags struct {
	entityFile   string
	name         string
	packageName  string
	fields       string
	components   []string
	dtoFields    []string
	filterFields []string
	dtoName      string
	validations  string
	pattern      string
	basePackage  string
	structure    string
	policy       string
	interactive  bool
	assumeYes    bool
	dryRun       bool
	force        bool
}

// GenerateCmd returns the generate command
func GenerateCmd() *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate CRUD classes for an entity",
		Long: `Generate the DTO, repository, service, controller and filter classes of an
entity. Artifacts are written in that order; identical files are left alone.

The entity comes from a source file (--entity, .java/.yaml/.yml/.json) or
from --name, --package and --fields.

Examples:
  entitygen generate --entity src/main/java/com/acme/entity/Customer.java
  entitygen generate --name Customer --package com.acme.entity \
      --fields "id:Long@Id,name:String,email:String" --dto-fields name,email
  entitygen generate --entity customer.yaml --components dto,filter \
      --dto-fields name --filter-fields name,email --pattern ddd --base-package com.acme
  entitygen generate --entity Customer.java --interactive --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Get()
			if err != nil {
				return err
			}
			defer wire.Shutdown()

			ctx := cmd.Context()
			entity, err := loadEntity(ctx, c.Introspector, f)
			if err != nil {
				return err
			}

			req, err := buildGenerateRequest(c.Store, afero.NewOsFs(), entity, f, c.Settings.Generate)
			if err != nil {
				return err
			}

			confirmer := cliadapter.NewPromptConfirmer(os.Stdin, cmd.OutOrStdout(), f.assumeYes)
			_, err = c.GenerationAdapter(cmd.OutOrStdout(), confirmer).Generate(ctx, req)
			return err
		},
	}

	cmd.Flags().StringVarP(&f.entityFile, "entity", "e", "", "entity source file (.java, .yaml, .yml, .json)")
	cmd.Flags().StringVar(&f.name, "name", "", "entity class name (with --fields)")
	cmd.Flags().StringVar(&f.packageName, "package", "", "entity package (with --fields)")
	cmd.Flags().StringVar(&f.fields, "fields", "", `entity fields, e.g. "id:Long@Id,name:String,tags:List<String>"`)
	cmd.Flags().StringSliceVar(&f.components, "components", defaultComponents, "components: dto, repository, service, controller, filter")
	cmd.Flags().StringSliceVar(&f.dtoFields, "dto-fields", nil, "fields copied into the DTO (default all)")
	cmd.Flags().StringSliceVar(&f.filterFields, "filter-fields", nil, "fields of the filter and repository finders")
	cmd.Flags().StringVar(&f.dtoName, "dto-name", "", "DTO class name (Dto suffix added when missing)")
	cmd.Flags().StringVar(&f.validations, "validations", "", "YAML file with per-field validation options")
	cmd.Flags().StringVar(&f.pattern, "pattern", "", "architecture preset: default, mvc, ddd")
	cmd.Flags().StringVar(&f.basePackage, "base-package", "", "base package of the preset (default com.example)")
	cmd.Flags().StringVar(&f.structure, "structure", "", "project structure template supplying the source root")
	cmd.Flags().StringVar(&f.policy, "policy", "", "overwrite policy for changed files: silent, confirm")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "ask before overwriting changed files")
	cmd.Flags().BoolVarP(&f.assumeYes, "yes", "y", false, "answer yes to every overwrite prompt")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "show what would be written")
	cmd.Flags().BoolVar(&f.force, "force", false, "generate even if the class is not a persistence entity")

	cmd.MarkFlagsMutuallyExclusive("entity", "fields")
	cmd.MarkFlagsMutuallyExclusive("entity", "name")

	return cmd
}

// loadEntity builds the entity model from a source file or the inline
// flags. Source files must carry a persistence-entity marker unless forced.
func loadEntity(ctx context.Context, in secondary.Introspector, f generateFlags) (*models.EntityModel, error) {
	if f.entityFile == "" {
		if f.name == "" || f.packageName == "" {
			return nil, fmt.Errorf("either --entity or --name and --package are required")
		}
		return introspect.BuildEntity(f.name, f.packageName, f.fields)
	}

	entity, err := in.ExtractEntity(ctx, f.entityFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read entity: %w", err)
	}
	if !f.force && !introspect.HasEntityMarker(entity) {
		return nil, fmt.Errorf("%s: %w\nHint: use --force to generate anyway", entity.Name, models.ErrNotEntity)
	}
	return entity, nil
}

// buildGenerateRequest resolves the flags against the project documents
// and the settings defaults.
func buildGenerateRequest(store *config.Store, fs afero.Fs, entity *models.EntityModel, f generateFlags, defaults config.GenerateSettings) (primary.GenerateRequest, error) {
	components, err := parseComponents(f.components)
	if err != nil {
		return primary.GenerateRequest{}, err
	}

	policy, err := resolvePolicy(f.policy, f.interactive, defaults.OverwritePolicy)
	if err != nil {
		return primary.GenerateRequest{}, err
	}

	structure := f.structure
	if structure == "" {
		structure = defaults.Structure
	}
	resolved, err := store.Resolve(config.ResolveOptions{
		Pattern:     f.pattern,
		BasePackage: f.basePackage,
		Structure:   structure,
	})
	if err != nil {
		return primary.GenerateRequest{}, err
	}

	opts, err := loadValidations(fs, f.validations)
	if err != nil {
		return primary.GenerateRequest{}, err
	}

	dtoFields := f.dtoFields
	if len(dtoFields) == 0 {
		dtoFields = entity.FieldNames()
	}

	return primary.GenerateRequest{
		Entity:            entity,
		Config:            resolved.Config,
		Components:        components,
		DtoFields:         dtoFields,
		FilterFields:      f.filterFields,
		ValidationOptions: opts,
		DtoName:           f.dtoName,
		TemplateOverrides: resolved.TemplateOverrides,
		SourceRoots:       resolved.SourceRoots,
		Policy:            policy,
		Pattern:           f.pattern,
		DryRun:            f.dryRun,
	}, nil
}

func parseComponents(names []string) ([]models.ArtifactKind, error) {
	var kinds []models.ArtifactKind
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		kind, err := models.ParseArtifactKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// resolvePolicy picks the overwrite policy: --interactive wins, then
// --policy, then the settings default.
func resolvePolicy(flag string, interactive bool, fallback string) (models.OverwritePolicy, error) {
	if interactive {
		return models.PolicyConfirm, nil
	}
	if flag == "" {
		flag = fallback
	}
	return models.ParseOverwritePolicy(flag)
}

// loadValidations reads per-field validation options from a YAML file.
//
//	email:
//	  required: true
//	  email: true
//	age:
//	  range: true
//	  min: "18"
//	  max: "120"
func loadValidations(fs afero.Fs, path string) (validation.Options, error) {
	if path == "" {
		return nil, nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read validations: %w", err)
	}

	var opts validation.Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse validations: %w", err)
	}
	for name, o := range opts {
		if o == nil {
			continue
		}
		if o.FieldName == "" {
			o.FieldName = name
		}
	}
	return opts, nil
}
