package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/entitygen/internal/config"
	"github.com/example/entitygen/internal/wire"
)

// StructureCmd returns the structure command
func StructureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "structure",
		Short: "Manage project-structure templates",
		Long: `Project-structure templates (entity-generator-templates.json) describe the
directory layout of a project. Their JAVA_SOURCE nodes are the source roots
searched during placement.`,
	}

	cmd.AddCommand(structureListCmd())
	cmd.AddCommand(structureShowCmd())
	cmd.AddCommand(structureInitCmd())
	cmd.AddCommand(structureSuggestCmd())

	return cmd
}

func structureListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List project-structure templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Get()
			if err != nil {
				return err
			}
			defer wire.Shutdown()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "NAME\tSOURCE ROOTS")
			fmt.Fprintln(w, "----\t------------")
			for _, s := range c.Store.LoadStructures() {
				fmt.Fprintf(w, "%s\t%s\n", s.ConfigName, strings.Join(s.SourceRoots(), ", "))
			}
			w.Flush()
			return nil
		},
	}
}

func structureShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show the tree of a project-structure template",
		Long:  "Show the tree of the named template, or of the active one when no name is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Get()
			if err != nil {
				return err
			}
			defer wire.Shutdown()

			name := c.Settings.Generate.Structure
			if len(args) == 1 {
				name = args[0]
			}
			s, err := c.Store.ActiveStructure(name)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", s.ConfigName)
			printNodes(cmd.OutOrStdout(), s.RootNodes, "  ")
			return nil
		},
	}
}

func printNodes(out io.Writer, nodes []*config.ProjectStructureNode, indent string) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		fmt.Fprintf(out, "%s%s/  [%s]\n", indent, n.Name, n.Type)
		printNodes(out, n.Children, indent+"  ")
	}
}

func structureInitCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Create the directories of a project-structure template",
		Long: `Create every directory of the named (or active) template in the project.
Existing directories are kept.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Get()
			if err != nil {
				return err
			}
			defer wire.Shutdown()

			name := c.Settings.Generate.Structure
			if len(args) == 1 {
				name = args[0]
			}
			s, err := c.Store.ActiveStructure(name)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			fs := c.FileSystem()
			out := cmd.OutOrStdout()
			created := 0
			for _, dir := range s.Directories() {
				exists, err := fs.DirExists(ctx, dir)
				if err != nil {
					return err
				}
				if exists {
					continue
				}
				if !dryRun {
					if err := fs.MkdirAll(ctx, dir); err != nil {
						return err
					}
				}
				created++
				fmt.Fprintf(out, "%s %s\n", color.New(color.FgGreen).Sprint("+"), dir)
			}

			if dryRun {
				fmt.Fprintf(out, "Would create %d director(ies) for %s\n", created, s.ConfigName)
			} else {
				fmt.Fprintf(out, "%s Created %d director(ies) for %s\n", color.New(color.FgGreen).Sprint("✓"), created, s.ConfigName)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the directories without creating them")

	return cmd
}

func structureSuggestCmd() *cobra.Command {
	var basePackage string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "List common component folders for a base package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Get()
			if err != nil {
				return err
			}
			defer wire.Shutdown()

			s, err := c.Store.ActiveStructure(c.Settings.Generate.Structure)
			if err != nil {
				return err
			}
			for _, folder := range config.SuggestedFolders(s.SourceRoots()[0], basePackage) {
				if folder == "" {
					folder = "."
				}
				fmt.Fprintln(cmd.OutOrStdout(), folder)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&basePackage, "base-package", "", "base package (default com.example)")

	return cmd
}
