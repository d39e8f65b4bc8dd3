package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/starlist/internal/cmd/output"
)

// VersionInfo is the build information printed by the version command.
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	BuiltBy string `json:"built_by" yaml:"built_by"`
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := VersionInfo{
				Version: a.version,
				Commit:  a.commit,
				Date:    a.date,
				BuiltBy: a.builtBy,
			}
			switch output.Format(a.config.Format) {
			case output.FormatJSON, output.FormatYAML:
				return output.NewFormatter(output.Format(a.config.Format)).Format(cmd.OutOrStdout(), info)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "starlist %s (commit %s, built %s by %s)\n",
				info.Version, info.Commit, info.Date, info.BuiltBy)
			return err
		},
	}
}
