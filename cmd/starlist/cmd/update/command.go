// Package update provides the update command implementation.
package update

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/starlist/internal/cmd/application"
)

// Flags holds the update command flags.
type Flags struct {
	DryRun  bool
	Catalog string
	Target  string
	Sources []string
}

// NewCommand creates the update command using app context.
func NewCommand(app application.Application) *cobra.Command {
	settings := app.Settings()
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "update",
		GroupID: "core",
		Short:   "Reconcile the catalog with every origin",
		Long: `Update gathers add-on records from the configured origins, drops the ones
already listed, checks that every remaining link is live, categorizes the
records that arrived without a category and merges the result into the
catalog.

The rendered catalog replaces the text between the starlist markers of the
target document. With --dry-run nothing is written; the updated document (or
the rendered catalog when no target is set) is printed instead.`,
		Example: `  starlist update --target README.md        # Update the list in README.md
  starlist update --dry-run                 # Preview the rendered catalog
  starlist update --sources registry,feed   # Only query some origins`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.applySettings(cmd, app.Settings())
			return Execute(cmd.Context(), app, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", settings.DryRun, "print the result instead of writing files")
	cmd.Flags().StringVar(&flags.Catalog, "catalog", settings.CatalogPath, "catalog YAML file to reconcile and save")
	cmd.Flags().StringVar(&flags.Target, "target", settings.TargetPath, "document holding the starlist markers")
	cmd.Flags().StringSliceVar(&flags.Sources, "sources", settings.Sources, "origins to query: registry, showcase, feed, page, local")

	return cmd
}

// applySettings fills flags the user did not set from the settings, which
// may have changed since the command was built (--config).
func (f *Flags) applySettings(cmd *cobra.Command, s application.Settings) {
	if !cmd.Flags().Changed("dry-run") {
		f.DryRun = s.DryRun
	}
	if !cmd.Flags().Changed("catalog") {
		f.Catalog = s.CatalogPath
	}
	if !cmd.Flags().Changed("target") {
		f.Target = s.TargetPath
	}
	if !cmd.Flags().Changed("sources") {
		f.Sources = s.Sources
	}
}
