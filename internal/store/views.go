package store

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/winereview/internal/model"
	"github.com/aidanlsb/winereview/internal/query"
)

// Base relation names created by the schema.
const (
	TableWine     = "tblWine"
	TableReview   = "tblReview"
	TableReviewer = "tblReviewer"
)

// view is the fixed, hand-written source query behind one keyword.
type view struct {
	source  string
	orderBy string
}

var views = map[model.Kind]view{
	model.KindWine: {
		source:  `SELECT country, price, province, variety, winery FROM ` + TableWine,
		orderBy: "winery, variety",
	},
	model.KindReviewer: {
		source:  `SELECT taster_name, taster_twitter_handle FROM ` + TableReviewer,
		orderBy: "taster_name, taster_twitter_handle",
	},
	// Review columns win over wine and reviewer columns of the same name.
	// Wine joins on variety alone, so one review can match several wines;
	// wine_winery orders those rows.
	model.KindReview: {
		source: `SELECT r.review_id AS review_id,
				r.description AS description,
				r.points AS points,
				p.taster_name AS taster_name,
				r.taster_twitter_handle AS taster_twitter_handle,
				r.title AS title,
				r.variety AS variety,
				r.winery AS winery,
				w.province AS province,
				w.country AS country,
				w.price AS price,
				w.winery AS wine_winery
			FROM ` + TableReview + ` r
			JOIN ` + TableWine + ` w ON w.variety = r.variety
			JOIN ` + TableReviewer + ` p ON p.taster_twitter_handle = r.taster_twitter_handle`,
		orderBy: "review_id, wine_winery",
	},
}

// buildSQL translates a descriptor into SQLite text and bind arguments.
// Filter values are always bound; column names are quoted identifiers.
func buildSQL(d *query.Descriptor) (string, []any, error) {
	v, ok := views[d.View]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", query.ErrUnknownView, d.View)
	}

	cols := model.Columns(d.View)
	var sb strings.Builder
	var args []any

	fmt.Fprintf(&sb, "SELECT %s FROM (%s) AS v", strings.Join(cols, ", "), v.source)

	if len(d.Filters) > 0 {
		conds := make([]string, 0, len(d.Filters))
		for _, f := range d.Filters {
			if !f.Op.Valid() {
				return "", nil, fmt.Errorf("invalid operator %q for column %s", f.Op, f.Column)
			}
			// Qualified, so an unknown name is an error rather than a string literal.
			conds = append(conds, fmt.Sprintf("v.%s %s ?", quoteIdent(f.Column), f.Op))
			args = append(args, f.Value)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	fmt.Fprintf(&sb, " ORDER BY %s LIMIT ? OFFSET ?", v.orderBy)
	args = append(args, d.Limit, d.Offset)

	return sb.String(), args, nil
}

// quoteIdent makes name a single SQLite identifier, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
