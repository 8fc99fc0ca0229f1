package format

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/winereview/internal/model"
	"github.com/aidanlsb/winereview/internal/ui"
)

var (
	trimbach = model.Wine{Country: "France", Price: model.NewPrice(24), Province: "Alsace", Variety: "Gewürztraminer", Winery: "Trimbach"}
	roger    = model.Reviewer{TasterName: "Roger Voss", TasterTwitterHandle: "@vossroger"}
	review8  = model.Review{
		ReviewID:            8,
		Description:         "This dry and restrained wine offers spice in profusion.",
		Points:              89,
		TasterTwitterHandle: "@vossroger",
		Title:               "Trimbach 2012 Gewurztraminer (Alsace)",
		Variety:             "Gewürztraminer",
		Winery:              "Trimbach",
		Wine:                trimbach,
		Reviewer:            roger,
	}
)

func newTestFormatter(t *testing.T, dir string) *Formatter {
	t.Helper()
	f, err := NewFormatter(dir)
	if err != nil {
		t.Fatalf("NewFormatter: %v", err)
	}
	return f
}

func TestFormatBuiltinTemplates(t *testing.T) {
	f := newTestFormatter(t, "")

	tests := []struct {
		name   string
		record model.Record
		want   string
	}{
		{
			name:   "wine",
			record: trimbach,
			want:   "Trimbach Gewürztraminer\nCountry:  France\nProvince: Alsace\nPrice:    24",
		},
		{
			name:   "wine without price",
			record: model.Wine{Country: "Italy", Province: "Sicily & Sardinia", Variety: "White Blend", Winery: "Nicosia"},
			want:   "Nicosia White Blend\nCountry:  Italy\nProvince: Sicily & Sardinia\nPrice:    -",
		},
		{
			name:   "reviewer",
			record: roger,
			want:   "Reviewer: Roger Voss (@vossroger)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Format(tt.record)
			if err != nil {
				t.Fatalf("Format: %v", err)
			}
			if got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestFormatReviewNestsWineAndReviewer(t *testing.T) {
	f := newTestFormatter(t, "")

	got, err := f.Format(review8)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	wine, _ := f.Format(trimbach)
	reviewer, _ := f.Format(roger)

	want := strings.Join([]string{
		"#8 Trimbach 2012 Gewurztraminer (Alsace)",
		"Points: 89",
		"",
		review8.Description,
		"",
		wine,
		reviewer,
	}, "\n")
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatterTemplateOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "reviewer.tmpl"), []byte("{{.TasterTwitterHandle}}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := newTestFormatter(t, dir)

	got, err := f.Format(roger)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "@vossroger" {
		t.Errorf("expected override template output, got %q", got)
	}

	// Kinds without an override keep the built-in template.
	if got, _ := f.Format(trimbach); !strings.HasPrefix(got, "Trimbach Gewürztraminer") {
		t.Errorf("expected built-in wine template, got %q", got)
	}

	// The review nests the overridden reviewer rendering.
	if got, _ := f.Format(review8); !strings.HasSuffix(got, "\n@vossroger") {
		t.Errorf("expected nested override in review, got %q", got)
	}
}

func TestFormatterBadTemplate(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "wine.tmpl"), []byte("{{.Winery"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFormatter(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeTemplate, false},
		{"template", ModeTemplate, false},
		{"TABLE", ModeTable, false},
		{" json ", ModeJSON, false},
		{"yaml", ModeYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func newTestPrinter(t *testing.T, mode Mode) (*Printer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewPrinter(&buf, mode, newTestFormatter(t, ""), ui.NewDisplayContextWithWidth(20)), &buf
}

func TestPrintTemplateSeparatesRecords(t *testing.T) {
	p, buf := newTestPrinter(t, ModeTemplate)

	err := p.Print(Page{Kind: model.KindReviewer, Records: []model.Record{
		roger,
		model.Reviewer{TasterName: "Jim Gordon", TasterTwitterHandle: "@jimgordonwine"},
	}})
	if err != nil {
		t.Fatalf("Print: %v", err)
	}

	out := buf.String()
	if strings.Count(out, strings.Repeat("-", 20)) != 1 {
		t.Errorf("expected one separator between two records, got:\n%s", out)
	}
	if !strings.HasPrefix(out, "Reviewer: Roger Voss") || !strings.HasSuffix(out, "Reviewer: Jim Gordon (@jimgordonwine)\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestPrintNoResults(t *testing.T) {
	for _, mode := range []Mode{ModeTemplate, ModeTable} {
		t.Run(string(mode), func(t *testing.T) {
			p, buf := newTestPrinter(t, mode)
			if err := p.Print(Page{Kind: model.KindWine}); err != nil {
				t.Fatalf("Print: %v", err)
			}
			if buf.String() != NoResults+"\n" {
				t.Errorf("expected %q, got %q", NoResults, buf.String())
			}
		})
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, ModeTable, newTestFormatter(t, ""), ui.NewDisplayContextWithWidth(100))
	if err := p.Print(Page{Kind: model.KindWine, Records: []model.Record{trimbach}}); err != nil {
		t.Fatalf("Print: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"country", "winery", "Trimbach", "Alsace", "24"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrintJSON(t *testing.T) {
	p, buf := newTestPrinter(t, ModeJSON)
	if err := p.Print(Page{Kind: model.KindReview, Records: []model.Record{review8}, Page: 2, PageSize: 5}); err != nil {
		t.Fatalf("Print: %v", err)
	}

	var resp struct {
		OK   bool `json:"ok"`
		Data struct {
			Kind    string           `json:"kind"`
			Records []map[string]any `json:"records"`
		} `json:"data"`
		Meta Meta `json:"meta"`
	}
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if !resp.OK || resp.Data.Kind != "review" || resp.Meta.Count != 1 || resp.Meta.Page != 2 {
		t.Errorf("unexpected envelope: %+v", resp)
	}
	rec := resp.Data.Records[0]
	if rec["review_id"] != float64(8) || rec["wine"].(map[string]any)["country"] != "France" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestPrintJSONKeepsMissingPriceApartFromZero(t *testing.T) {
	p, buf := newTestPrinter(t, ModeJSON)
	recs := []model.Record{
		model.Wine{Winery: "Nicosia", Variety: "White Blend"},
		model.Wine{Winery: "Gratis", Variety: "Sample", Price: model.NewPrice(0)},
	}
	if err := p.Print(Page{Kind: model.KindWine, Records: recs}); err != nil {
		t.Fatalf("Print: %v", err)
	}

	var resp struct {
		Data struct {
			Records []map[string]any `json:"records"`
		} `json:"data"`
	}
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if got, ok := resp.Data.Records[0]["price"]; !ok || got != nil {
		t.Errorf("expected null price, got %v", got)
	}
	if got := resp.Data.Records[1]["price"]; got != float64(0) {
		t.Errorf("expected price 0, got %v", got)
	}
}

func TestPrintJSONEmptyIsList(t *testing.T) {
	p, buf := newTestPrinter(t, ModeJSON)
	if err := p.Print(Page{Kind: model.KindWine}); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(buf.String(), `"records": []`) {
		t.Errorf("expected empty record list, got %s", buf.String())
	}
}

func TestPrintYAML(t *testing.T) {
	p, buf := newTestPrinter(t, ModeYAML)
	if err := p.Print(Page{Kind: model.KindReviewer, Records: []model.Record{roger}}); err != nil {
		t.Fatalf("Print: %v", err)
	}

	var doc struct {
		Kind    string           `yaml:"kind"`
		Records []model.Reviewer `yaml:"records"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid yaml: %v\n%s", err, buf.String())
	}
	if doc.Kind != "reviewer" || len(doc.Records) != 1 || doc.Records[0] != roger {
		t.Errorf("unexpected yaml document: %+v", doc)
	}
}

func TestWriteJSONError(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSONError(&buf, "NO_SUCH_COLUMN", "data column does not exist", "check column names"); err != nil {
		t.Fatal(err)
	}
	var resp Response
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.OK || resp.Error == nil || resp.Error.Code != "NO_SUCH_COLUMN" {
		t.Errorf("unexpected error envelope: %+v", resp)
	}
}
