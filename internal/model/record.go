// Package model defines the typed records returned by wine review queries.
package model

import "strconv"

// Kind identifies one of the three queryable views.
type Kind string

const (
	KindWine     Kind = "wine"
	KindReview   Kind = "review"
	KindReviewer Kind = "reviewer"
)

// Kinds lists every valid kind in display order.
var Kinds = []Kind{KindWine, KindReview, KindReviewer}

// ParseKind resolves a query keyword to a Kind. Keywords are lower case and
// match exactly.
func ParseKind(keyword string) (Kind, bool) {
	switch Kind(keyword) {
	case KindWine:
		return KindWine, true
	case KindReview:
		return KindReview, true
	case KindReviewer:
		return KindReviewer, true
	}
	return "", false
}

// Record is a single result row. The set of implementations is closed:
// Wine, Review and Reviewer.
type Record interface {
	Kind() Kind
	// Row returns the record's values in the order given by Columns(Kind()).
	Row() []string
	record()
}

// Wine is a row of the wine relation. Price is nil when the source row has
// no price.
type Wine struct {
	Country  string   `json:"country" yaml:"country"`
	Price    *float64 `json:"price" yaml:"price"`
	Province string   `json:"province" yaml:"province"`
	Variety  string   `json:"variety" yaml:"variety"`
	Winery   string   `json:"winery" yaml:"winery"`
}

// Reviewer is a row of the reviewer relation.
type Reviewer struct {
	TasterName          string `json:"taster_name" yaml:"taster_name"`
	TasterTwitterHandle string `json:"taster_twitter_handle" yaml:"taster_twitter_handle"`
}

// Review is a row of the review view: a review joined with its wine and
// reviewer. Variety, Winery and TasterTwitterHandle come from the review
// itself and take precedence over the joined columns of the same name.
type Review struct {
	ReviewID            int64    `json:"review_id" yaml:"review_id"`
	Description         string   `json:"description" yaml:"description"`
	Points              int      `json:"points" yaml:"points"`
	TasterTwitterHandle string   `json:"taster_twitter_handle" yaml:"taster_twitter_handle"`
	Title               string   `json:"title" yaml:"title"`
	Variety             string   `json:"variety" yaml:"variety"`
	Winery              string   `json:"winery" yaml:"winery"`
	Wine                Wine     `json:"wine" yaml:"wine"`
	Reviewer            Reviewer `json:"reviewer" yaml:"reviewer"`
}

func (Wine) Kind() Kind     { return KindWine }
func (Review) Kind() Kind   { return KindReview }
func (Reviewer) Kind() Kind { return KindReviewer }

func (Wine) record()     {}
func (Review) record()   {}
func (Reviewer) record() {}

var (
	wineColumns     = []string{"country", "price", "province", "variety", "winery"}
	reviewerColumns = []string{"taster_name", "taster_twitter_handle"}
	reviewColumns   = []string{
		"review_id", "description", "points", "taster_name", "taster_twitter_handle",
		"title", "variety", "winery", "province", "country", "price",
	}
)

// Columns returns the column names exposed by the view for kind, in the order
// the store selects them. It returns nil for an unknown kind.
func Columns(k Kind) []string {
	var cols []string
	switch k {
	case KindWine:
		cols = wineColumns
	case KindReview:
		cols = reviewColumns
	case KindReviewer:
		cols = reviewerColumns
	default:
		return nil
	}
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

func (w Wine) Row() []string {
	return []string{w.Country, FormatPrice(w.Price), w.Province, w.Variety, w.Winery}
}

func (r Reviewer) Row() []string {
	return []string{r.TasterName, r.TasterTwitterHandle}
}

func (r Review) Row() []string {
	return []string{
		strconv.FormatInt(r.ReviewID, 10),
		r.Description,
		strconv.Itoa(r.Points),
		r.Reviewer.TasterName,
		r.TasterTwitterHandle,
		r.Title,
		r.Variety,
		r.Winery,
		r.Wine.Province,
		r.Wine.Country,
		FormatPrice(r.Wine.Price),
	}
}

// NewPrice returns a pointer to v for Wine.Price.
func NewPrice(v float64) *float64 {
	return &v
}

// FormatPrice renders a price without trailing zeros, or "" when there is
// no price.
func FormatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
