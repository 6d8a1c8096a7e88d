package usage

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/emerytura/internal/domain"
)

// PageSizes lists the page sizes offered by the admin view.
var PageSizes = []int{10, 25, 50, 100}

// DefaultPageSize is used when a filter leaves PageSize unset.
const DefaultPageSize = 10

// Filter narrows and pages the usage log. Zero fields do not filter.
type Filter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Gender   domain.Gender
	AgeMin   *int
	AgeMax   *int
	Search   string
	Page     int
	PageSize int
}

// Page is one slice of filtered records plus the totals needed to render pagination
type Page struct {
	Records  []Record `json:"records"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
	Pages    int      `json:"pages"`
}

// Normalize applies defaults and rejects unsupported values.
func (f Filter) Normalize() (Filter, error) {
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Page < 0 {
		return f, fmt.Errorf("page must be positive, got %d", f.Page)
	}
	if f.PageSize == 0 {
		f.PageSize = DefaultPageSize
	}
	if !slices.Contains(PageSizes, f.PageSize) {
		return f, fmt.Errorf("page size must be one of %v, got %d", PageSizes, f.PageSize)
	}
	if f.Gender != "" && !f.Gender.Valid() {
		return f, fmt.Errorf("unknown gender %q", f.Gender)
	}
	if f.AgeMin != nil && f.AgeMax != nil && *f.AgeMin > *f.AgeMax {
		return f, fmt.Errorf("age range is inverted: %d > %d", *f.AgeMin, *f.AgeMax)
	}
	return f, nil
}

// Match reports whether rec passes every criterion of f.
func (f Filter) Match(rec Record) bool {
	if f.DateFrom != nil && rec.Timestamp.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && rec.Timestamp.After(*f.DateTo) {
		return false
	}
	if f.Gender != "" && rec.Gender != f.Gender {
		return false
	}
	if f.AgeMin != nil && rec.Age < *f.AgeMin {
		return false
	}
	if f.AgeMax != nil && rec.Age > *f.AgeMax {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		return slices.ContainsFunc(searchableFields(rec), func(v string) bool {
			return strings.Contains(strings.ToLower(v), s)
		})
	}
	return true
}

// searchableFields renders the columns free-text search looks at. Zero amounts
// render empty so "0" does not match every unset field.
func searchableFields(rec Record) []string {
	amount := func(v int64) string {
		if v == 0 {
			return ""
		}
		return strconv.FormatInt(v, 10)
	}
	fields := []string{rec.PostalCode, string(rec.Gender), amount(rec.NominalPension), amount(rec.RealPension)}
	for _, d := range [...]string{rec.GrossSalary.String(), rec.ExpectedPension.String()} {
		if d == "0" {
			d = ""
		}
		fields = append(fields, d)
	}
	return fields
}

// Apply returns the records matching f in their input order.
func (f Filter) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Paginate filters records and cuts out the requested page. A page past the
// end is empty but still reports the totals.
func (f Filter) Paginate(records []Record) (Page, error) {
	f, err := f.Normalize()
	if err != nil {
		return Page{}, err
	}
	filtered := f.Apply(records)

	page := Page{
		Records:  []Record{},
		Total:    len(filtered),
		Page:     f.Page,
		PageSize: f.PageSize,
		Pages:    (len(filtered) + f.PageSize - 1) / f.PageSize,
	}
	start := (f.Page - 1) * f.PageSize
	if start >= len(filtered) {
		return page, nil
	}
	end := min(start+f.PageSize, len(filtered))
	page.Records = filtered[start:end]
	return page, nil
}

// ParseDateBound parses a filter bound given as YYYY-MM-DD or RFC 3339. A
// date-only upper bound covers that whole day.
func ParseDateBound(v string, upper bool) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		if upper {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or RFC 3339)", v)
	}
	return t, nil
}
