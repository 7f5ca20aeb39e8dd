// Package cli implements the entitygen command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/entitygen/internal/version"
	"github.com/example/entitygen/internal/wire"
)

// RootCmd returns the entitygen root command with all subcommands.
func RootCmd() *cobra.Command {
	var opts wire.Options

	cmd := &cobra.Command{
		Use:     "entitygen",
		Short:   "Generate CRUD layers for JPA entities",
		Version: version.String(),
		Long: `entitygen generates the DTO, repository, service, controller and filter
classes of a JPA entity and places them in the project's package layout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			wire.Configure(opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "settings file (default ./entitygen.yaml or ~/.entitygen/entitygen.yaml)")
	cmd.PersistentFlags().StringVarP(&opts.ProjectDir, "project-dir", "C", "", "project root (default current directory)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(GenerateCmd())
	cmd.AddCommand(InspectCmd())
	cmd.AddCommand(ExistingCmd())
	cmd.AddCommand(ConfigCmd())
	cmd.AddCommand(StructureCmd())
	cmd.AddCommand(HistoryCmd())
	cmd.AddCommand(ServeCmd())

	return cmd
}
