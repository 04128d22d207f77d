// Package pipeline post-processes an in-memory record set: substring
// filtering, a stable field sort, then optional pagination, always in
// that order.
package pipeline

import (
	"log"
	"sort"
	"strings"

	"github.com/oleksandr38kebab342/log-csv-git/internal/model"
)

// fallbackSortField is used when the requested sort field is unknown.
const fallbackSortField = "timestamp"

// Criteria maps a field name to a required substring. All entries must
// match (case-insensitively) for a record to be retained.
type Criteria map[string]string

// Config controls the sort and pagination stages.
type Config struct {
	SortBy  string
	Reverse bool
	Page    int // 1-based
	PerPage int // 0 disables pagination
}

// Apply runs filter, sort and paginate over records, in that fixed order.
// The sort always sees the full filtered set before any slicing.
func Apply(records []model.LogRecord, criteria Criteria, cfg Config) []model.LogRecord {
	out := Filter(records, criteria)
	out = Sort(out, cfg.SortBy, cfg.Reverse)
	if cfg.PerPage > 0 {
		out = Paginate(out, cfg.Page, cfg.PerPage)
	}
	return out
}

// Filter retains records whose named fields contain the required
// substrings, compared case-insensitively. A criterion naming an unknown
// field excludes the record. Empty criteria is the identity.
func Filter(records []model.LogRecord, criteria Criteria) []model.LogRecord {
	if len(criteria) == 0 {
		return records
	}

	out := make([]model.LogRecord, 0, len(records))
	for _, rec := range records {
		if matches(rec, criteria) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec model.LogRecord, criteria Criteria) bool {
	for field, want := range criteria {
		value, ok := rec.Field(field)
		if !ok {
			return false
		}
		if !strings.Contains(strings.ToLower(value), strings.ToLower(want)) {
			return false
		}
	}
	return true
}

// Sort returns a stably sorted copy of records, keyed on the named field's
// string value. Unknown field names fall back to timestamp with a warning.
func Sort(records []model.LogRecord, sortBy string, reverse bool) []model.LogRecord {
	if !model.IsField(sortBy) {
		log.Printf("warning: unknown sort field %q, using %q", sortBy, fallbackSortField)
		sortBy = fallbackSortField
	}

	out := make([]model.LogRecord, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i].Field(sortBy)
		b, _ := out[j].Field(sortBy)
		if reverse {
			return a > b
		}
		return a < b
	})
	return out
}

// Paginate returns the 1-based page of size perPage, clipped to the record
// set bounds. Pages beyond the data yield an empty slice, never an error.
func Paginate(records []model.LogRecord, page, perPage int) []model.LogRecord {
	page = normalizePage(page)

	start := (page - 1) * perPage
	if start >= len(records) {
		return []model.LogRecord{}
	}
	end := start + perPage
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
