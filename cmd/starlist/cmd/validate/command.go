// Package validate provides the validate command implementation.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/starlist/internal/cmd/application"
	"github.com/agentstation/starlist/internal/cmd/output"
	"github.com/agentstation/starlist/pkg/errors"
	"github.com/agentstation/starlist/pkg/logging"
)

// NewCommand creates the validate command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		catalogPath string
		failOnDead  bool
	)

	cmd := &cobra.Command{
		Use:     "validate [url...]",
		GroupID: "management",
		Short:   "Check whether links are live",
		Long: `Validate checks each link the way the update command does: repository links
on github.com are looked up through the hosting API (forks are rejected),
every other link is probed with HEAD, falling back to GET.

Without arguments every entry of the catalog file is checked.`,
		Example: `  starlist validate https://github.com/acme/nova
  starlist validate --catalog catalog.yaml --fail`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("catalog") {
				catalogPath = app.Settings().CatalogPath
			}
			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			ctx = logging.WithOperation(ctx, "validate")

			urls := args
			if len(urls) == 0 {
				cat, err := app.Baseline(catalogPath)
				if err != nil {
					return err
				}
				for _, e := range cat.All() {
					urls = append(urls, e.URL)
				}
			}
			if len(urls) == 0 {
				return errors.NewValidationError("url", "", "nothing to validate")
			}

			verdicts := app.Validator().ValidateAll(ctx, urls)

			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}
			if err := output.Print(app.Stdout(), format, verdicts, output.VerdictsToTableData(verdicts)); err != nil {
				return err
			}

			dead := 0
			for _, v := range verdicts {
				if !v.Live {
					dead++
				}
			}
			if dead > 0 && failOnDead {
				return fmt.Errorf("%d of %d links are not live", dead, len(verdicts))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", app.Settings().CatalogPath, "catalog YAML file checked when no URL is given")
	cmd.Flags().BoolVar(&failOnDead, "fail", false, "exit with an error when a link is not live")

	return cmd
}
