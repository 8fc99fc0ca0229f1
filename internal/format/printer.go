package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/winereview/internal/model"
	"github.com/aidanlsb/winereview/internal/ui"
)

// Mode selects how a page of results is written.
type Mode string

const (
	ModeTemplate Mode = "template"
	ModeTable    Mode = "table"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
)

// NoResults is printed when a query matches nothing.
const NoResults = "No results."

// ParseMode resolves an output mode name. Empty means ModeTemplate.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeTemplate, nil
	case ModeTemplate, ModeTable, ModeJSON, ModeYAML:
		return m, nil
	}
	return "", fmt.Errorf("unknown output mode %q (expected template, table, json, or yaml)", s)
}

// Page is one page of query results.
type Page struct {
	Kind     model.Kind
	Records  []model.Record
	Page     int
	PageSize int
	Elapsed  time.Duration
}

// pageData is the serialized form of a Page for json and yaml output.
type pageData struct {
	Kind    model.Kind     `json:"kind" yaml:"kind"`
	Records []model.Record `json:"records" yaml:"records"`
}

// Printer writes result pages in one output mode.
type Printer struct {
	out       io.Writer
	mode      Mode
	formatter *Formatter
	display   *ui.DisplayContext
}

// NewPrinter creates a printer. display may be nil, in which case it is
// detected from out.
func NewPrinter(out io.Writer, mode Mode, f *Formatter, display *ui.DisplayContext) *Printer {
	if display == nil {
		display = ui.NewDisplayContext(out)
	}
	return &Printer{out: out, mode: mode, formatter: f, display: display}
}

// Mode returns the printer's output mode.
func (p *Printer) Mode() Mode {
	return p.mode
}

// Print writes p.Records in the printer's mode.
func (p *Printer) Print(page Page) error {
	switch p.mode {
	case ModeJSON:
		return WriteJSON(p.out, Response{
			OK:   true,
			Data: pageData{Kind: page.Kind, Records: nonNil(page.Records)},
			Meta: &Meta{
				Count:       len(page.Records),
				Page:        page.Page,
				PageSize:    page.PageSize,
				QueryTimeMs: page.Elapsed.Milliseconds(),
			},
		})
	case ModeYAML:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(pageData{Kind: page.Kind, Records: nonNil(page.Records)}); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(page.Records) == 0 {
		_, err := fmt.Fprintln(p.out, NoResults)
		return err
	}

	if p.mode == ModeTable {
		rows := make([][]string, len(page.Records))
		for i, r := range page.Records {
			rows[i] = r.Row()
		}
		_, err := io.WriteString(p.out, ui.RenderTable(model.Columns(page.Kind), rows, p.display.TermWidth))
		return err
	}

	sep := ui.Hint(p.display.Separator())
	for i, r := range page.Records {
		text, err := p.formatter.Format(r)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(p.out, sep)
		}
		if _, err := fmt.Fprintln(p.out, text); err != nil {
			return err
		}
	}
	return nil
}

func nonNil(recs []model.Record) []model.Record {
	if recs == nil {
		return []model.Record{}
	}
	return recs
}
