// Package list provides the list command implementation.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/starlist/internal/cmd/application"
	"github.com/agentstation/starlist/internal/cmd/output"
	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/errors"
)

// NewCommand creates the list command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		catalogPath string
		category    string
		counts      bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Short:   "Show catalog entries",
		Example: `  starlist list
  starlist list --category theme -o json
  starlist list --counts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("catalog") {
				catalogPath = app.Settings().CatalogPath
			}
			cat, err := app.Baseline(catalogPath)
			if err != nil {
				return err
			}

			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			if counts {
				perCategory := make(map[catalogs.Category]int)
				for _, c := range catalogs.Categories() {
					perCategory[c] = cat.Count(c)
				}
				return output.Print(app.Stdout(), format, perCategory, output.CountsToTableData(perCategory))
			}

			entries := cat.All()
			if category != "" {
				c, ok := catalogs.ParseCategory(category)
				if !ok {
					return errors.NewValidationError("category", category, "unknown category")
				}
				entries = cat.Entries(c)
			}
			return output.Print(app.Stdout(), format, entries, output.EntriesToTableData(entries))
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", app.Settings().CatalogPath, "catalog YAML file")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only show one category")
	cmd.Flags().BoolVar(&counts, "counts", false, "show entry counts per category")

	return cmd
}
