package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/aidanlsb/winereview/internal/model"
	"github.com/aidanlsb/winereview/internal/query"
)

// Executor runs view queries against the database.
type Executor struct {
	db  *sql.DB
	log *slog.Logger
}

// NewExecutor creates a new query executor.
func NewExecutor(d *Database) *Executor {
	return &Executor{db: d.db, log: d.log}
}

// Execute runs d and returns the matching records in view order.
//
// Backend failures are returned as *Error classified by NoSuchTable,
// NoSuchColumn or UnknownError; the raw message is only logged.
func (e *Executor) Execute(d *query.Descriptor) ([]model.Record, error) {
	sqlStr, args, err := buildSQL(d)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	e.log.Debug("executing query", "view", d.View, "sql", sqlStr, "args", args)

	rows, err := e.db.Query(sqlStr, args...)
	if err != nil {
		return nil, e.classify(err, d)
	}

	var records []model.Record
	switch d.View {
	case model.KindWine:
		records, err = scanRecords(rows, scanWine)
	case model.KindReview:
		records, err = scanRecords(rows, scanReview)
	case model.KindReviewer:
		records, err = scanRecords(rows, scanReviewer)
	default:
		rows.Close()
		return nil, fmt.Errorf("%w: %q", query.ErrUnknownView, d.View)
	}
	if err != nil {
		return nil, e.classify(err, d)
	}

	e.log.Debug("query complete", "view", d.View, "rows", len(records), "elapsed", time.Since(start))
	return records, nil
}

func (e *Executor) classify(err error, d *query.Descriptor) error {
	cerr := Classify(err)
	e.log.Debug("query failed", "view", d.View, "code", cerr.Code, "error", err)
	return cerr
}

// scanRecords drains and closes rows, decoding each with scan.
func scanRecords[T model.Record](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]model.Record, error) {
	defer rows.Close()

	var out []model.Record
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Scanners follow the column order of model.Columns for each kind.

func scanWine(rows *sql.Rows) (model.Wine, error) {
	var country, province, variety, winery sql.NullString
	var price sql.NullFloat64
	if err := rows.Scan(&country, &price, &province, &variety, &winery); err != nil {
		return model.Wine{}, err
	}
	return model.Wine{
		Country:  country.String,
		Price:    nullPrice(price),
		Province: province.String,
		Variety:  variety.String,
		Winery:   winery.String,
	}, nil
}

func scanReviewer(rows *sql.Rows) (model.Reviewer, error) {
	var name, handle sql.NullString
	if err := rows.Scan(&name, &handle); err != nil {
		return model.Reviewer{}, err
	}
	return model.Reviewer{TasterName: name.String, TasterTwitterHandle: handle.String}, nil
}

func scanReview(rows *sql.Rows) (model.Review, error) {
	var (
		id, points                     sql.NullInt64
		price                          sql.NullFloat64
		description, tasterName        sql.NullString
		handle, title, variety, winery sql.NullString
		province, country              sql.NullString
	)
	if err := rows.Scan(&id, &description, &points, &tasterName, &handle,
		&title, &variety, &winery, &province, &country, &price); err != nil {
		return model.Review{}, err
	}

	r := model.Review{
		ReviewID:            id.Int64,
		Description:         description.String,
		Points:              int(points.Int64),
		TasterTwitterHandle: handle.String,
		Title:               title.String,
		Variety:             variety.String,
		Winery:              winery.String,
		Wine: model.Wine{
			Country:  country.String,
			Price:    nullPrice(price),
			Province: province.String,
			Variety:  variety.String,
			Winery:   winery.String,
		},
		Reviewer: model.Reviewer{
			TasterName:          tasterName.String,
			TasterTwitterHandle: handle.String,
		},
	}
	return r, nil
}

func nullPrice(p sql.NullFloat64) *float64 {
	if !p.Valid {
		return nil
	}
	return &p.Float64
}
