package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/entitygen/internal/adapters/introspect"
	"github.com/example/entitygen/internal/core/classify"
	"github.com/example/entitygen/internal/models"
	"github.com/example/entitygen/internal/wire"
)

// InspectCmd returns the inspect command
func InspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [entity-file]",
		Short: "Show the entity model read from a source file",
		Long: `Show the class, package and fields introspected from an entity source
(.java, .yaml, .yml or .json) together with each field's type category.

Examples:
  entitygen inspect src/main/java/com/acme/entity/Customer.java
  entitygen inspect entities/order.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Get()
			if err != nil {
				return err
			}
			defer wire.Shutdown()

			entity, err := c.Introspector.ExtractEntity(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to read entity: %w", err)
			}
			printEntity(cmd.OutOrStdout(), entity)
			return nil
		},
	}
}

func printEntity(out io.Writer, entity *models.EntityModel) {
	fmt.Fprintf(out, "Entity:  %s\n", entity.QualifiedName())
	if introspect.HasEntityMarker(entity) {
		fmt.Fprintf(out, "Marker:  %s persistence entity\n", color.New(color.FgGreen).Sprint("✓"))
	} else {
		fmt.Fprintf(out, "Marker:  %s not annotated as a persistence entity\n", color.New(color.FgYellow).Sprint("!"))
	}
	fmt.Fprintln(out)

	if len(entity.Fields) == 0 {
		fmt.Fprintln(out, "No fields.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "FIELD\tTYPE\tCATEGORY\tANNOTATIONS")
	fmt.Fprintln(w, "-----\t----\t--------\t-----------")
	for _, f := range entity.Fields {
		annotations := make([]string, len(f.Annotations))
		for i, a := range f.Annotations {
			annotations[i] = "@" + models.SimpleName(a)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			f.Name,
			f.DeclaredType,
			classify.ClassifyField(f),
			strings.Join(annotations, " "),
		)
	}
	w.Flush()
}
