package db

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Q holds all the information necessary to execute a find against a
// collection: a filter predicate, a field projection, a sort order, and
// a skip/limit window.
type Q struct {
	filter     any
	projection any
	sort       []string
	skip       int
	limit      int
}

// Query returns a db.Q with the given filter applied.
func Query(filter any) Q {
	return Q{filter: filter}
}

// Filter returns a copy of the query with a new filter.
func (q Q) Filter(filter any) Q {
	q.filter = filter
	return q
}

// Project returns a copy of the query with a field projection applied.
func (q Q) Project(projection any) Q {
	q.projection = projection
	return q
}

// WithFields modifies the query to project on only the given fields.
func (q Q) WithFields(fields ...string) Q {
	projection := map[string]int{}
	for _, f := range fields {
		projection[f] = 1
	}
	q.projection = projection
	return q
}

// WithoutFields modifies the query to exclude the given fields.
func (q Q) WithoutFields(fields ...string) Q {
	projection := map[string]int{}
	for _, f := range fields {
		projection[f] = 0
	}
	q.projection = projection
	return q
}

// Sort returns a copy of the query with the sort order applied. Each
// entry names a field, with a '-' prefix denoting a descending sort on
// that field.
func (q Q) Sort(sort []string) Q {
	q.sort = sort
	return q
}

// Skip returns a copy of the query that skips the first n results.
func (q Q) Skip(skip int) Q {
	q.skip = skip
	return q
}

// Limit returns a copy of the query that returns at most n results.
func (q Q) Limit(limit int) Q {
	q.limit = limit
	return q
}

// GetFilter exposes the query's filter predicate.
func (q Q) GetFilter() any { return q.filter }

// GetSort exposes the query's sort order.
func (q Q) GetSort() []string { return q.sort }

// GetSkip exposes the query's skip offset.
func (q Q) GetSkip() int { return q.skip }

// GetLimit exposes the query's result limit.
func (q Q) GetLimit() int { return q.limit }

func (q Q) sortSpec() bson.D {
	spec := bson.D{}
	for _, field := range q.sort {
		direction := 1
		if strings.HasPrefix(field, "-") {
			direction = -1
			field = strings.TrimPrefix(field, "-")
		}
		if field == "" {
			continue
		}
		spec = append(spec, bson.E{Key: field, Value: direction})
	}
	return spec
}

func (q Q) filterOrEmpty() any {
	if q.filter == nil {
		return bson.M{}
	}
	return q.filter
}
