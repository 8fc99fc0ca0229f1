package store

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Data file names expected in the data directory.
const (
	WineFile     = "Wine.csv"
	ReviewFile   = "Review.csv"
	ReviewerFile = "Reviewer.csv"
)

// tableSpec describes how one CSV file maps onto one base relation.
type tableSpec struct {
	table   string
	file    string
	columns []string
	// numeric columns store an empty CSV field as NULL.
	numeric map[string]bool
}

var tableSpecs = []tableSpec{
	{
		table:   TableWine,
		file:    WineFile,
		columns: []string{"country", "price", "province", "variety", "winery"},
		numeric: map[string]bool{"price": true},
	},
	{
		table:   TableReview,
		file:    ReviewFile,
		columns: []string{"review_id", "description", "points", "taster_twitter_handle", "title", "variety", "winery"},
		numeric: map[string]bool{"review_id": true, "points": true},
	},
	{
		table:   TableReviewer,
		file:    ReviewerFile,
		columns: []string{"taster_name", "taster_twitter_handle"},
	},
}

// LoadStats reports the row count of each base relation after a load.
type LoadStats struct {
	Wines     int           `json:"wines" yaml:"wines"`
	Reviews   int           `json:"reviews" yaml:"reviews"`
	Reviewers int           `json:"reviewers" yaml:"reviewers"`
	Elapsed   time.Duration `json:"-" yaml:"-"`
}

// Loader populates the base relations from a schema script and CSV files.
type Loader struct {
	SchemaPath string
	DataDir    string
}

// Load runs the schema script and upserts every CSV row, keyed by each
// relation's primary key, in a single transaction. Loading the same files
// again leaves the relations unchanged.
//
// A missing schema file fails with MissingSchema and a missing CSV file with
// MissingData; in both cases nothing is written.
func (l *Loader) Load(d *Database) (*LoadStats, error) {
	start := time.Now()

	schema, err := os.ReadFile(l.SchemaPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Code: MissingSchema, Path: l.SchemaPath, Err: err}
		}
		return nil, &Error{Code: UnknownError, Path: l.SchemaPath, Err: err}
	}

	// Read everything first so a missing file leaves the database untouched.
	data := make([][][]any, len(tableSpecs))
	for i, spec := range tableSpecs {
		rows, err := l.readCSV(spec)
		if err != nil {
			return nil, err
		}
		data[i] = rows
	}

	tx, err := d.db.Begin()
	if err != nil {
		return nil, &Error{Code: UnknownError, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(string(schema)); err != nil {
		return nil, &Error{Code: UnknownError, Path: l.SchemaPath, Err: fmt.Errorf("schema: %w", err)}
	}

	for i, spec := range tableSpecs {
		if err := upsert(tx, spec, data[i]); err != nil {
			return nil, Classify(fmt.Errorf("%s: %w", spec.table, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, &Error{Code: UnknownError, Err: err}
	}

	stats, err := countRows(d.db)
	if err != nil {
		return nil, Classify(err)
	}
	stats.Elapsed = time.Since(start)

	d.log.Info("data loaded",
		"wines", stats.Wines,
		"reviews", stats.Reviews,
		"reviewers", stats.Reviewers,
		"elapsed", stats.Elapsed)
	return stats, nil
}

func (l *Loader) readCSV(spec tableSpec) ([][]any, error) {
	path := filepath.Join(l.DataDir, spec.file)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Code: MissingData, Path: path, Err: err}
		}
		return nil, &Error{Code: UnknownError, Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &Error{Code: MissingData, Path: path, Err: errors.New("empty file")}
		}
		return nil, &Error{Code: UnknownError, Path: path, Err: err}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	positions := make([]int, len(spec.columns))
	for i, col := range spec.columns {
		pos, ok := index[col]
		if !ok {
			return nil, &Error{Code: MissingData, Path: path, Err: fmt.Errorf("missing column %q", col)}
		}
		positions[i] = pos
	}

	var rows [][]any
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &Error{Code: UnknownError, Path: path, Err: err}
		}
		args := make([]any, len(spec.columns))
		for i, col := range spec.columns {
			value := record[positions[i]]
			if !spec.numeric[col] {
				args[i] = value
			} else if value = strings.TrimSpace(value); value != "" {
				args[i] = value
			}
		}
		rows = append(rows, args)
	}
	return rows, nil
}

func upsert(tx *sql.Tx, spec tableSpec, rows [][]any) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(spec.columns)), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		spec.table, strings.Join(spec.columns, ", "), placeholders))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, args := range rows {
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}
	return nil
}

func countRows(db *sql.DB) (*LoadStats, error) {
	stats := &LoadStats{}
	targets := []struct {
		table string
		dst   *int
	}{
		{TableWine, &stats.Wines},
		{TableReview, &stats.Reviews},
		{TableReviewer, &stats.Reviewers},
	}
	for _, t := range targets {
		if err := db.QueryRow("SELECT COUNT(*) FROM " + t.table).Scan(t.dst); err != nil {
			return nil, err
		}
	}
	return stats, nil
}
