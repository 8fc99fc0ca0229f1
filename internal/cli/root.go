// Package cli implements the command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/winereview/internal/config"
	"github.com/aidanlsb/winereview/internal/format"
	"github.com/aidanlsb/winereview/internal/logging"
	"github.com/aidanlsb/winereview/internal/shell"
	"github.com/aidanlsb/winereview/internal/store"
	"github.com/aidanlsb/winereview/internal/ui"
)

// flags holds the global flag values before they are merged into the config.
type flags struct {
	configPath   string
	prompt       string
	schemaPath   string
	dataDir      string
	databasePath string
	templateDir  string
	output       string
	pageSize     int
	logLevel     string
}

// app is the state shared by every command of one invocation.
type app struct {
	flags flags
	cfg   *config.Config
	mode  format.Mode
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "wr",
		Short: "Wine Review CLI - query wines, reviews and reviewers",
		Long: `wr loads wine, review and reviewer CSV files into a local SQLite
database and queries them from an interactive prompt.

Queries are a keyword followed by column/value pairs:

  wine country France
  review points>=90 variety 'Pinot Noir'
  reviewer taster_name "Kerin O'Keefe"

Run without a subcommand to start the prompt; type help there for more.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "Path to config file")
	pf.StringVarP(&a.flags.prompt, "prompt-symbol", "p", "", "The prompt symbol")
	pf.StringVarP(&a.flags.schemaPath, "schema-path", "s", "", "The schema path")
	pf.StringVarP(&a.flags.dataDir, "data-dir", "d", "", "The data directory containing the CSV files")
	pf.StringVar(&a.flags.databasePath, "database-path", "", "The database path to read and write the database")
	pf.StringVar(&a.flags.templateDir, "template-dir", "", "Directory with wine.tmpl, review.tmpl or reviewer.tmpl overrides")
	pf.StringVarP(&a.flags.output, "output", "o", "", "Result format: template, table, json or yaml")
	pf.IntVar(&a.flags.pageSize, "page-size", 0, "Results per page")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newQueryCmd(a),
		newLoadCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// Execute runs the CLI. SIGINT and SIGTERM cancel the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	var exitErr *exitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), ui.Error(err.Error()))
	}
	return err
}

// setup loads the config file and applies flags over it. Flags win over the
// file, and the file wins over defaults.
func (a *app) setup(fs *pflag.FlagSet) error {
	cfg, err := config.LoadResolved(a.flags.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if fs.Changed("prompt-symbol") {
		cfg.Prompt = a.flags.prompt
	}
	if fs.Changed("schema-path") {
		cfg.SchemaPath = a.flags.schemaPath
	}
	if fs.Changed("data-dir") {
		cfg.DataDir = a.flags.dataDir
	}
	if fs.Changed("database-path") {
		cfg.DatabasePath = a.flags.databasePath
	}
	if fs.Changed("template-dir") {
		cfg.TemplateDir = a.flags.templateDir
	}
	if fs.Changed("output") {
		cfg.Output = a.flags.output
	}
	if fs.Changed("page-size") {
		if a.flags.pageSize < 1 {
			return fmt.Errorf("--page-size must be at least 1")
		}
		cfg.PageSize = a.flags.pageSize
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = a.flags.logLevel
	}
	cfg.ApplyDefaults()

	mode, err := format.ParseMode(cfg.Output)
	if err != nil {
		return err
	}
	if err := logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		return err
	}
	if cfg.UI.Accent != "" {
		ui.ConfigureTheme(cfg.UI.Accent)
	}

	a.cfg = cfg
	a.mode = mode
	logging.Get().Debug("config resolved",
		"data_dir", cfg.DataDir,
		"database_path", cfg.DatabasePath,
		"schema_path", cfg.SchemaPath,
		"output", mode)
	return nil
}

func (a *app) openDatabase() (*store.Database, error) {
	if a.cfg.DatabasePath == ":memory:" {
		return store.OpenInMemory()
	}
	return store.Open(a.cfg.DatabasePath)
}

func (a *app) loader() *store.Loader {
	return &store.Loader{SchemaPath: a.cfg.SchemaPath, DataDir: a.cfg.DataDir}
}

func (a *app) printer(cmd *cobra.Command, display *ui.DisplayContext) (*format.Printer, error) {
	f, err := format.NewFormatter(a.cfg.TemplateDir)
	if err != nil {
		return nil, err
	}
	return format.NewPrinter(cmd.OutOrStdout(), a.mode, f, display), nil
}

func (a *app) runShell(cmd *cobra.Command) error {
	db, err := a.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	display := ui.NewDisplayContext(out)
	printer, err := a.printer(cmd, display)
	if err != nil {
		return err
	}

	sh := shell.New(db, a.loader(), printer, out, display, shell.Options{
		Prompt:      a.cfg.Prompt,
		PageSize:    a.cfg.PageSize,
		HistoryFile: a.cfg.HistoryFile,
	})
	return sh.Run(cmd.Context(), cmd.InOrStdin())
}

func (a *app) jsonOutput() bool {
	return a.mode == format.ModeJSON
}
