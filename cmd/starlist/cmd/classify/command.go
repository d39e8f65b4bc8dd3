// Package classify provides the classify command implementation.
package classify

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/starlist/internal/cmd/application"
	"github.com/agentstation/starlist/internal/cmd/output"
	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/logging"
)

// NewCommand creates the classify command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "classify <title[|url[|description]]>...",
		GroupID: "management",
		Short:   "Categorize add-ons as plugin, theme or tool",
		Long: `Classify sends the given records to the categorization service in one
request and prints the category of each. Without a configured credential, or
when the reply cannot be used, a keyword heuristic decides.

Each argument is a title, optionally followed by a link and a description
separated by "|".`,
		Example: `  starlist classify "starlight-theme-nova|https://github.com/acme/nova"
  starlist classify "create-starlight|https://npm.im/create-starlight|project generator"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			ctx = logging.WithOperation(ctx, "classify")

			items := make([]catalogs.Item, len(args))
			for i, arg := range args {
				items[i] = ParseArg(arg)
			}

			c, err := app.Classifier()
			if err != nil {
				return err
			}
			labels, err := c.Classify(ctx, items)
			if err != nil {
				return err
			}

			rows := make([]output.Classification, len(items))
			for i, item := range items {
				rows[i] = output.Classification{Title: item.Title, URL: item.URL, Category: labels[i]}
			}

			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}
			return output.Print(app.Stdout(), format, rows, output.ClassificationsToTableData(rows))
		},
	}
	return cmd
}

// ParseArg reads "title|url|description"; missing parts stay empty.
func ParseArg(arg string) catalogs.Item {
	parts := strings.SplitN(arg, "|", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return catalogs.NewItem(parts[0], parts[1], parts[2])
}
