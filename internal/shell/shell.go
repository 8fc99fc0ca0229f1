// Package shell implements the interactive wine review prompt.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aidanlsb/winereview/docs"
	"github.com/aidanlsb/winereview/internal/format"
	"github.com/aidanlsb/winereview/internal/logging"
	"github.com/aidanlsb/winereview/internal/model"
	"github.com/aidanlsb/winereview/internal/query"
	"github.com/aidanlsb/winereview/internal/store"
	"github.com/aidanlsb/winereview/internal/ui"
)

// Intro is printed when an interactive session starts.
const Intro = "Wine Review CLI. Type help or ? to list commands and print documentation."

var verbs = []string{"exit", "help", "load", "max", "page", "quit"}

// Options configures a Shell.
type Options struct {
	Prompt      string
	PageSize    int
	HistoryFile string
}

// Shell reads query lines, runs them and prints the results. It is not safe
// for concurrent use.
type Shell struct {
	db       *store.Database
	exec     *store.Executor
	loader   *store.Loader
	printer  *format.Printer
	display  *ui.DisplayContext
	out      io.Writer
	log      *slog.Logger
	prompt   string
	history  string
	pageSize int

	// lastQuery is the last query line that returned rows; page reruns it.
	lastQuery string
}

// New creates a shell over db. Results and messages are written to out.
func New(db *store.Database, loader *store.Loader, printer *format.Printer, out io.Writer, display *ui.DisplayContext, opts Options) *Shell {
	if opts.Prompt == "" {
		opts.Prompt = "> "
	}
	if opts.PageSize <= 0 {
		opts.PageSize = query.DefaultPageSize
	}
	if display == nil {
		display = ui.NewDisplayContext(out)
	}
	return &Shell{
		db:       db,
		exec:     store.NewExecutor(db),
		loader:   loader,
		printer:  printer,
		display:  display,
		out:      out,
		log:      logging.Get(),
		prompt:   opts.Prompt,
		history:  opts.HistoryFile,
		pageSize: opts.PageSize,
	}
}

// PageSize returns the current number of results per page.
func (s *Shell) PageSize() int {
	return s.pageSize
}

// LastQuery returns the line page reruns, or "" if there is none.
func (s *Shell) LastQuery() string {
	return s.lastQuery
}

type readResult struct {
	line string
	err  error
}

// Run reads lines from in until quit, end of input, Ctrl-C or ctx is done.
// A terminal gets line editing and history; other readers are read without
// a prompt.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	var r lineReader
	if ui.IsInteractive(in) {
		r = newTermReader(s.history)
		fmt.Fprintln(s.out, Intro)
	} else {
		r = newScanReader(in)
	}
	defer func() {
		if err := r.Close(); err != nil {
			s.log.Warn("failed to save history", "file", s.history, "error", err)
		}
	}()

	// Reading happens on its own goroutine so a cancelled ctx ends the
	// session even while the prompt is waiting.
	requests := make(chan struct{})
	replies := make(chan readResult, 1)
	defer close(requests)
	go func() {
		for range requests {
			line, err := r.ReadLine(s.prompt)
			replies <- readResult{line: line, err: err}
		}
	}()

	for {
		requests <- struct{}{}

		var res readResult
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, msgQuitting)
			return nil
		case res = <-replies:
		}

		switch {
		case errors.Is(res.err, errInterrupted):
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, msgQuitting)
			return nil
		case errors.Is(res.err, io.EOF):
			return nil
		case res.err != nil:
			return fmt.Errorf("read input: %w", res.err)
		}

		if quit := s.Execute(res.line); quit {
			return nil
		}
	}
}

// Execute runs one input line and reports whether the session should end.
func (s *Shell) Execute(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	verb, arg := splitVerb(line)
	switch verb {
	case "quit", "exit":
		fmt.Fprintln(s.out, msgQuitting)
		return true
	case "help", "?":
		s.help(arg)
	case "load":
		s.load()
	case "max":
		s.max(arg)
	case "page":
		s.page(arg)
	default:
		s.query(line, 1)
	}
	return false
}

func splitVerb(line string) (string, string) {
	if strings.HasPrefix(line, "?") {
		return "?", strings.TrimSpace(line[1:])
	}
	verb, arg, _ := strings.Cut(line, " ")
	return strings.ToLower(verb), strings.TrimSpace(arg)
}

func (s *Shell) query(line string, page int) {
	q, err := query.Parse(line)
	if err != nil {
		s.printError(err)
		return
	}
	kind, ok := model.ParseKind(q.Keyword)
	if !ok {
		fmt.Fprintln(s.out, msgInvalidKeyword)
		return
	}

	desc, err := query.Build(q, page, s.pageSize)
	if err != nil {
		s.printError(err)
		return
	}

	start := time.Now()
	records, err := s.exec.Execute(desc)
	if err != nil {
		s.printError(err)
		return
	}

	if err := s.printer.Print(format.Page{
		Kind:     kind,
		Records:  records,
		Page:     max(page, 1),
		PageSize: s.pageSize,
		Elapsed:  time.Since(start),
	}); err != nil {
		fmt.Fprintln(s.out, ui.Error(err.Error()))
		return
	}

	if len(records) > 0 {
		s.lastQuery = line
	}
}

func (s *Shell) load() {
	spinner := ui.NewSpinner(s.out, s.display.IsTTY, "Loading data")
	spinner.Start()
	stats, err := s.loader.Load(s.db)
	spinner.Stop()
	if err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintln(s.out, ui.Successf("Loaded %s, %s, %s.",
		ui.Count(stats.Wines, "wine", "wines"),
		ui.Count(stats.Reviews, "review", "reviews"),
		ui.Count(stats.Reviewers, "reviewer", "reviewers")))
}

func (s *Shell) max(arg string) {
	if arg == "" {
		fmt.Fprintln(s.out, "Current result maximum:", s.pageSize)
		return
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		fmt.Fprintln(s.out, msgInvalidArgument)
		s.help("max")
		return
	}
	s.pageSize = n
	s.log.Debug("page size changed", "page_size", n)
}

func (s *Shell) page(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintln(s.out, msgInvalidArgument)
		s.help("page")
		return
	}
	if s.lastQuery == "" {
		fmt.Fprintln(s.out, ui.Hint(msgNoLastQuery))
		return
	}
	s.query(s.lastQuery, n)
}

func (s *Shell) help(topic string) {
	text, ok := docs.Help(topic)
	if !ok {
		fmt.Fprintf(s.out, "*** No help on %s\n", topic)
		return
	}
	if !s.display.IsTTY {
		fmt.Fprint(s.out, ui.PlainMarkdown(text))
		return
	}
	rendered, err := ui.RenderMarkdown(text, s.display.TermWidth)
	if err != nil {
		s.log.Debug("markdown render failed", "topic", topic, "error", err)
		fmt.Fprint(s.out, text)
		return
	}
	fmt.Fprint(s.out, rendered)
}

func (s *Shell) printError(err error) {
	s.log.Debug("command failed", "error", err)
	fmt.Fprintln(s.out, ErrorMessage(err))
	if hint := ErrorHint(err); hint != "" {
		fmt.Fprintln(s.out, ui.Hint(hint))
	}
}

// complete offers verbs and keywords matching the first word typed so far.
func complete(line string) []string {
	if strings.Contains(line, " ") {
		return nil
	}
	prefix := strings.ToLower(line)
	var out []string
	for _, kind := range model.Kinds {
		if strings.HasPrefix(string(kind), prefix) {
			out = append(out, string(kind)+" ")
		}
	}
	for _, v := range verbs {
		if strings.HasPrefix(v, prefix) {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
