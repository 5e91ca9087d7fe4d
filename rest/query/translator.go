// Package query translates the flat key/value parameters accepted by
// every list route into a structured store query and a pagination
// envelope. Reserved parameters (select, sort, page, limit) control
// projection, ordering and windowing; everything else becomes part of
// the filter predicate.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/campdir/campdir/db"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	selectParam = "select"
	sortParam   = "sort"
	pageParam   = "page"
	limitParam  = "limit"

	// DefaultPage and DefaultLimit are substituted for missing,
	// malformed, or non-positive page/limit parameters.
	DefaultPage  = 1
	DefaultLimit = 25

	// IdentityField is always included in a projection, whatever the
	// caller selects.
	IdentityField = "_id"

	defaultSort = "-created_at"
)

// comparison operators recognized in a bracketed key position, mapped
// to the store's operator sigils.
var operators = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
	"in":  "$in",
}

// Options is the translated form of a list request's query string.
type Options struct {
	Filter     bson.M
	Projection bson.M
	Sort       []string
	Page       int
	Limit      int
}

// Parse partitions the given parameters into reserved and filter
// parameters and translates each group. It never fails: malformed
// control parameters fall back to their defaults, and unrecognized
// operator keywords pass through untranslated.
func Parse(vals url.Values) Options {
	opts := Options{
		Filter: bson.M{},
		Sort:   []string{defaultSort},
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	for key, values := range vals {
		if len(values) == 0 {
			continue
		}
		value := values[0]

		switch key {
		case selectParam:
			opts.Projection = parseProjection(value)
		case sortParam:
			if sort := parseSort(value); len(sort) > 0 {
				opts.Sort = sort
			}
		case pageParam:
			opts.Page = parsePositiveInt(value, DefaultPage)
		case limitParam:
			opts.Limit = parsePositiveInt(value, DefaultLimit)
		default:
			field, op := splitOperator(key)
			addFilter(opts.Filter, field, op, value)
		}
	}

	return opts
}

// Skip returns the number of documents the current window starts after.
func (o Options) Skip() int {
	return (o.Page - 1) * o.Limit
}

// Query returns the db query for the current page of results.
func (o Options) Query() db.Q {
	q := db.Query(o.Filter).
		Sort(o.Sort).
		Skip(o.Skip()).
		Limit(o.Limit)
	if len(o.Projection) > 0 {
		q = q.Project(o.Projection)
	}
	return q
}

// CountQuery returns a query over the same predicate without the
// pagination window, so that a count reflects the full matching set.
func (o Options) CountQuery() db.Q {
	return db.Query(o.Filter)
}

// splitOperator breaks a "field[op]" key into its field and operator
// parts. A bare key returns an empty operator. Only the bracketed key
// position is ever interpreted as an operator, so literal values equal
// to an operator keyword are never rewritten.
func splitOperator(key string) (string, string) {
	open := strings.Index(key, "[")
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}

func addFilter(filter bson.M, field, op, value string) {
	if field == "" {
		return
	}

	if op == "" {
		filter[field] = coerce(value)
		return
	}

	sigil, recognized := operators[op]
	if !recognized {
		// pass the unrecognized keyword through untranslated; it
		// behaves as an exact match on the embedded document
		mergeOperator(filter, field, op, coerce(value))
		return
	}

	if sigil == "$in" {
		mergeOperator(filter, field, sigil, coerceList(value))
		return
	}
	mergeOperator(filter, field, sigil, coerce(value))
}

// mergeOperator folds another operator clause into the field's
// predicate, so that cost[gte]=10&cost[lte]=20 yields a single range
// condition.
func mergeOperator(filter bson.M, field, op string, value any) {
	clause, ok := filter[field].(bson.M)
	if !ok {
		clause = bson.M{}
		filter[field] = clause
	}
	clause[op] = value
}

// coerce interprets numeric and boolean literals as typed values so
// comparisons against stored numbers behave numerically rather than
// lexically.
func coerce(value string) any {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

func coerceList(value string) []any {
	parts := strings.Split(value, ",")
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, coerce(p))
	}
	return out
}

func parseProjection(value string) bson.M {
	projection := bson.M{IdentityField: 1}
	for _, field := range strings.Split(value, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		projection[field] = 1
	}
	return projection
}

func parseSort(value string) []string {
	sort := []string{}
	for _, field := range strings.Split(value, ",") {
		field = strings.TrimSpace(field)
		if field == "" || field == "-" {
			continue
		}
		sort = append(sort, field)
	}
	return sort
}

// parsePositiveInt parses a strictly positive integer, substituting
// the fallback for anything malformed, zero, or negative.
func parsePositiveInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
