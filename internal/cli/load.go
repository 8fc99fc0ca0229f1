package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/winereview/internal/format"
	"github.com/aidanlsb/winereview/internal/ui"
)

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load the CSV files into the database",
		Long: `Run the schema script and load Wine.csv, Review.csv and Reviewer.csv
from the data directory. Rows with the same key are replaced, so loading
again is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := a.loader().Load(db)
			if err != nil {
				return a.failErr(cmd, err)
			}

			out := cmd.OutOrStdout()
			switch a.mode {
			case format.ModeJSON:
				return format.WriteJSON(out, format.Response{OK: true, Data: stats})
			case format.ModeYAML:
				return yaml.NewEncoder(out).Encode(stats)
			}
			fmt.Fprintln(out, ui.Successf("Loaded %s, %s, %s into %s",
				ui.Count(stats.Wines, "wine", "wines"),
				ui.Count(stats.Reviews, "review", "reviews"),
				ui.Count(stats.Reviewers, "reviewer", "reviewers"),
				db.Path()))
			return nil
		},
	}
}
