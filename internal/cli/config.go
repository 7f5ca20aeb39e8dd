package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/entitygen/internal/config"
	"github.com/example/entitygen/internal/models"
	scaffoldtmpl "github.com/example/entitygen/internal/templates/scaffold"
	"github.com/example/entitygen/internal/wire"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the architecture config",
		Long: `Show and edit entity-generator-config.json in the project root. It holds
package suffixes, Lombok and validation switches, custom output paths and
template overrides.`,
	}

	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configInitCmd())
	cmd.AddCommand(configPatternCmd())
	cmd.AddCommand(configSetPathCmd())
	cmd.AddCommand(configTemplatesCmd())

	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the architecture config",
		Long:  "Print the architecture config as JSON. A missing or invalid file is replaced by the default.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Get()
			if err != nil {
				return err
			}
			defer wire.Shutdown()

			data, err := json.MarshalIndent(c.Store.LoadArchitecture(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func configInitCmd() *cobra.Command {
	var pattern, basePackage string
	var lombok, validation bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a fresh architecture config",
		Long: `Write entity-generator-config.json with the default settings, optionally
laid out by an architecture preset.

Examples:
  entitygen config init
  entitygen config init --pattern ddd --base-package com.acme --validation`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Get()
			if err != nil {
				return err
			}
			defer wire.Shutdown()

			p, err := config.ParsePattern(pattern)
			if err != nil {
				return err
			}
			active, err := c.Store.ActiveStructure(c.Settings.Generate.Structure)
			if err != nil {
				return err
			}

			cfg := config.DefaultArchitectureConfig()
			cfg.UseLombok = lombok
			cfg.UseDtoValidation = validation
			cfg = config.ApplyPattern(cfg, p, active.SourceRoots()[0], basePackage)

			if err := c.Store.SaveArchitecture(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s (pattern %s)\n", color.New(color.FgGreen).Sprint("✓"), config.ConfigFileName, p)
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "default", "architecture preset: default, mvc, ddd")
	cmd.Flags().StringVar(&basePackage, "base-package", "", "base package of the preset (default com.example)")
	cmd.Flags().BoolVar(&lombok, "lombok", true, "generate Lombok annotations instead of accessors")
	cmd.Flags().BoolVar(&validation, "validation", false, "emit bean-validation constraints on DTO fields")

	return cmd
}

func configPatternCmd() *cobra.Command {
	var basePackage string

	cmd := &cobra.Command{
		Use:   "pattern [default|mvc|ddd]",
		Short: "Apply an architecture preset to the stored config",
		Long: `Set the custom output paths of every component from a preset. The default
preset clears them so placement follows the package names.

Presets (under <source root>/<base package>):
  mvc  model/dto, service, repository, controller, filter
  ddd  domain/dto, domain/service, domain/repository,
       application/controller, infrastructure/filter`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Get()
			if err != nil {
				return err
			}
			defer wire.Shutdown()

			p, err := config.ParsePattern(args[0])
			if err != nil {
				return err
			}
			active, err := c.Store.ActiveStructure(c.Settings.Generate.Structure)
			if err != nil {
				return err
			}

			cfg := config.ApplyPattern(c.Store.LoadArchitecture(), p, active.SourceRoots()[0], basePackage)
			if err := c.Store.SaveArchitecture(cfg); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Applied pattern %s\n", color.New(color.FgGreen).Sprint("✓"), p)
			for _, kind := range models.GenerationOrder {
				if path := cfg.CustomPath(kind); path != "" {
					fmt.Fprintf(out, "  %-10s %s\n", kind, path)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&basePackage, "base-package", "", "base package of the preset (default com.example)")

	return cmd
}

func configSetPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-path [component] [path]",
		Short: "Set or clear the custom output path of a component",
		Long: `Set the directory a component is written to, relative to the project root.
An empty path clears the override.

Examples:
  entitygen config set-path dto src/main/java/com/acme/api/dto
  entitygen config set-path dto ""`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := models.ParseArtifactKind(args[0])
			if err != nil {
				return err
			}

			c, err := wire.Get()
			if err != nil {
				return err
			}
			defer wire.Shutdown()

			cfg := c.Store.LoadArchitecture()
			cfg.SetCustomPath(kind, args[1])
			if err := c.Store.SaveArchitecture(cfg); err != nil {
				return err
			}

			if args[1] == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Cleared %s path\n", color.New(color.FgGreen).Sprint("✓"), kind)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Set %s path to %s\n", color.New(color.FgGreen).Sprint("✓"), kind, args[1])
			}
			return nil
		},
	}
}

func configTemplatesCmd() *cobra.Command {
	var dump string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the Java templates and their overrides",
		Long: `List the embedded Java templates with the package suffix of their component
and the override file configured under "templates", if any.

Use --dump to print an embedded template as a starting point for an override.

Examples:
  entitygen config templates
  entitygen config templates --dump dto > templates/dto.java.tmpl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dump != "" {
				content, err := scaffoldtmpl.GetJavaTemplate(strings.TrimSuffix(dump, ".java") + ".java")
				if err != nil {
					return fmt.Errorf("unknown template %q: %w", dump, err)
				}
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			c, err := wire.Get()
			if err != nil {
				return err
			}
			defer wire.Shutdown()

			return printTemplates(cmd.OutOrStdout(), c.Store.LoadArchitecture())
		},
	}

	cmd.Flags().StringVar(&dump, "dump", "", "print the embedded template of a component, e.g. dto")

	return cmd
}

func printTemplates(out io.Writer, cfg *config.ArchitectureConfig) error {
	names, err := scaffoldtmpl.ListJavaTemplates()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TEMPLATE\tPACKAGE\tSOURCE")
	fmt.Fprintln(w, "--------\t-------\t------")
	for _, name := range names {
		if slices.Contains(scaffoldtmpl.SharedTemplates, name) {
			fmt.Fprintf(w, "%s\t-\tshared\n", name)
			continue
		}
		kind := models.ArtifactKind(strings.TrimSuffix(name, ".java"))
		source := "embedded"
		if path, ok := cfg.Templates[string(kind)]; ok && path != "" {
			source = path
		}
		pkg := cfg.PackageSuffix(kind)
		if kind == models.KindFilter {
			pkg = cfg.PackageSuffix(models.KindDTO) + "." + pkg
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, pkg, source)
	}
	return w.Flush()
}
