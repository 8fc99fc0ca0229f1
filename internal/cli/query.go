package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/winereview/internal/format"
	"github.com/aidanlsb/winereview/internal/model"
	"github.com/aidanlsb/winereview/internal/query"
	"github.com/aidanlsb/winereview/internal/shell"
	"github.com/aidanlsb/winereview/internal/store"
)

func newQueryCmd(a *app) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "query <keyword> [column value]...",
		Short: "Run one query and exit",
		Long: `Run a single query without starting the prompt.

The arguments form one query line. Arguments with spaces are quoted again
before parsing, so shell quoting works as expected.

Examples:
  wr query wine country France
  wr query review 'points>=90' variety 'Pinot Noir' --page 2
  wr query reviewer taster_twitter_handle @vossroger -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := query.JoinArgs(args)
			if err != nil {
				return a.fail(cmd, ErrInternal, err.Error(), "")
			}
			return a.runQuery(cmd, line, page)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page of results to show")
	return cmd
}

func (a *app) runQuery(cmd *cobra.Command, line string, page int) error {
	q, err := query.Parse(line)
	if err != nil {
		return a.failErr(cmd, err)
	}
	kind, ok := model.ParseKind(q.Keyword)
	if !ok {
		return a.failErr(cmd, fmt.Errorf("%w: %q", query.ErrUnknownView, q.Keyword))
	}
	desc, err := query.Build(q, page, a.cfg.PageSize)
	if err != nil {
		return a.failErr(cmd, err)
	}

	db, err := a.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	start := time.Now()
	records, err := store.NewExecutor(db).Execute(desc)
	if err != nil {
		return a.failErr(cmd, err)
	}

	printer, err := a.printer(cmd, nil)
	if err != nil {
		return err
	}
	return printer.Print(format.Page{
		Kind:     kind,
		Records:  records,
		Page:     max(page, 1),
		PageSize: a.cfg.PageSize,
		Elapsed:  time.Since(start),
	})
}

// failErr reports a query or store failure using the same message the
// prompt shows.
func (a *app) failErr(cmd *cobra.Command, err error) error {
	return a.fail(cmd, errorCode(err), shell.ErrorMessage(err), shell.ErrorHint(err))
}

// fail writes a JSON error envelope in json mode and returns an error that
// makes the process exit non-zero either way.
func (a *app) fail(cmd *cobra.Command, code, message, suggestion string) error {
	if a.jsonOutput() {
		_ = format.WriteJSONError(cmd.OutOrStdout(), code, message, suggestion)
		return &exitError{code: code}
	}
	if suggestion != "" {
		return fmt.Errorf("%s\n%s", message, suggestion)
	}
	return fmt.Errorf("%s", message)
}

// exitError signals failure after the error was already written as JSON.
type exitError struct {
	code string
}

func (e *exitError) Error() string {
	return e.code
}
