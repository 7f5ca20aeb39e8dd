package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/entitygen/internal/ports/primary"
	"github.com/example/entitygen/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded generation runs",
		Long:  "List, show and prune the generation runs recorded in the local history database.",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyShowCmd())
	cmd.AddCommand(historyPruneCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	var filters primary.HistoryFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List generation runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Get()
			if err != nil {
				return err
			}
			defer wire.Shutdown()

			adapter, err := c.HistoryAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.List(cmd.Context(), filters)
			return err
		},
	}

	cmd.Flags().StringVar(&filters.Entity, "entity", "", "filter by entity name")
	cmd.Flags().StringVar(&filters.Status, "status", "", "filter by status: running, succeeded, failed")
	cmd.Flags().IntVarP(&filters.Limit, "limit", "n", 20, "maximum number of runs (0 for all)")

	return cmd
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show a run and its artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Get()
			if err != nil {
				return err
			}
			defer wire.Shutdown()

			adapter, err := c.HistoryAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Show(cmd.Context(), args[0])
			return err
		},
	}
}

func historyPruneCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete runs older than a number of days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Get()
			if err != nil {
				return err
			}
			defer wire.Shutdown()

			adapter, err := c.HistoryAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Prune(cmd.Context(), days)
			return err
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "delete runs older than this many days")

	return cmd
}
