package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/entitygen/internal/wire"
)

// ExistingCmd returns the existing command
func ExistingCmd() *cobra.Command {
	var structure string

	cmd := &cobra.Command{
		Use:   "existing [entity-name]",
		Short: "List generated files of an entity",
		Long: `Search the source roots of the active project structure for the classes
generated for an entity (Dto, Repository, Service, ServiceImpl, Controller,
Filter and Param).

Examples:
  entitygen existing Customer
  entitygen existing Order --structure "Multi Module"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Get()
			if err != nil {
				return err
			}
			defer wire.Shutdown()

			if structure == "" {
				structure = c.Settings.Generate.Structure
			}
			active, err := c.Store.ActiveStructure(structure)
			if err != nil {
				return err
			}

			_, err = c.GenerationAdapter(cmd.OutOrStdout(), nil).Existing(cmd.Context(), args[0], active.SourceRoots())
			return err
		},
	}

	cmd.Flags().StringVar(&structure, "structure", "", "project structure template supplying the source roots")

	return cmd
}
