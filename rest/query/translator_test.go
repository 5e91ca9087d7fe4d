package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseFilters(t *testing.T) {
	for _, test := range []struct {
		name     string
		query    string
		expected bson.M
	}{
		{
			name:     "equality on a literal",
			query:    "city=Boston",
			expected: bson.M{"city": "Boston"},
		},
		{
			name:     "numeric literals compare as numbers",
			query:    "average_cost[gte]=1000",
			expected: bson.M{"average_cost": bson.M{"$gte": int64(1000)}},
		},
		{
			name:     "float literal",
			query:    "average_rating[gt]=7.5",
			expected: bson.M{"average_rating": bson.M{"$gt": 7.5}},
		},
		{
			name:     "boolean literal",
			query:    "housing=true",
			expected: bson.M{"housing": true},
		},
		{
			name:  "range clauses on one field merge",
			query: "tuition[gte]=1000&tuition[lte]=5000",
			expected: bson.M{"tuition": bson.M{
				"$gte": int64(1000),
				"$lte": int64(5000),
			}},
		},
		{
			name:  "in splits on comma",
			query: "careers[in]=Web Development,Data Science",
			expected: bson.M{"careers": bson.M{
				"$in": []any{"Web Development", "Data Science"},
			}},
		},
		{
			name:     "unrecognized operator passes through untranslated",
			query:    "name[regex]=camp",
			expected: bson.M{"name": bson.M{"regex": "camp"}},
		},
		{
			name:     "literal value equal to an operator keyword is untouched",
			query:    "description=gte",
			expected: bson.M{"description": "gte"},
		},
		{
			name:     "reserved keys are removed from the filter set",
			query:    "select=name&sort=name&page=2&limit=5&city=Boston",
			expected: bson.M{"city": "Boston"},
		},
		{
			name:     "no filters",
			query:    "page=3",
			expected: bson.M{},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			vals, err := url.ParseQuery(test.query)
			require.NoError(t, err)

			opts := Parse(vals)
			assert.Equal(t, test.expected, opts.Filter)
		})
	}
}

func TestParseProjection(t *testing.T) {
	vals, err := url.ParseQuery("select=name,description")
	require.NoError(t, err)

	opts := Parse(vals)
	assert.Equal(t, bson.M{"name": 1, "description": 1, IdentityField: 1}, opts.Projection)

	t.Run("AbsentSelectLeavesProjectionEmpty", func(t *testing.T) {
		opts := Parse(url.Values{})
		assert.Nil(t, opts.Projection)
	})

	t.Run("EmptyTokensAreSkipped", func(t *testing.T) {
		vals, err := url.ParseQuery("select=name,,description,")
		require.NoError(t, err)
		opts := Parse(vals)
		assert.Equal(t, bson.M{"name": 1, "description": 1, IdentityField: 1}, opts.Projection)
	})
}

func TestParseSort(t *testing.T) {
	for _, test := range []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "descending prefix maps per field",
			query:    "sort=-created_at,name",
			expected: []string{"-created_at", "name"},
		},
		{
			name:     "default sorts by creation time descending",
			query:    "",
			expected: []string{defaultSort},
		},
		{
			name:     "empty sort value falls back to the default",
			query:    "sort=",
			expected: []string{defaultSort},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			vals, err := url.ParseQuery(test.query)
			require.NoError(t, err)

			opts := Parse(vals)
			assert.Equal(t, test.expected, opts.Sort)
		})
	}
}

func TestParsePagination(t *testing.T) {
	for _, test := range []struct {
		name          string
		query         string
		expectedPage  int
		expectedLimit int
		expectedSkip  int
	}{
		{
			name:          "defaults",
			query:         "",
			expectedPage:  1,
			expectedLimit: 25,
			expectedSkip:  0,
		},
		{
			name:          "explicit window",
			query:         "page=3&limit=10",
			expectedPage:  3,
			expectedLimit: 10,
			expectedSkip:  20,
		},
		{
			name:          "non-numeric page falls back",
			query:         "page=abc",
			expectedPage:  1,
			expectedLimit: 25,
			expectedSkip:  0,
		},
		{
			name:          "negative limit falls back",
			query:         "limit=-5",
			expectedPage:  1,
			expectedLimit: 25,
			expectedSkip:  0,
		},
		{
			name:          "zero page falls back",
			query:         "page=0&limit=0",
			expectedPage:  1,
			expectedLimit: 25,
			expectedSkip:  0,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			vals, err := url.ParseQuery(test.query)
			require.NoError(t, err)

			opts := Parse(vals)
			assert.Equal(t, test.expectedPage, opts.Page)
			assert.Equal(t, test.expectedLimit, opts.Limit)
			assert.Equal(t, test.expectedSkip, opts.Skip())
		})
	}
}

func TestSplitOperator(t *testing.T) {
	for _, test := range []struct {
		key   string
		field string
		op    string
	}{
		{key: "cost[gte]", field: "cost", op: "gte"},
		{key: "cost", field: "cost", op: ""},
		{key: "[gte]", field: "[gte]", op: ""},
		{key: "cost[gte", field: "cost[gte", op: ""},
		{key: "location.city[in]", field: "location.city", op: "in"},
	} {
		field, op := splitOperator(test.key)
		assert.Equal(t, test.field, field, test.key)
		assert.Equal(t, test.op, op, test.key)
	}
}

func TestPaginationEnvelope(t *testing.T) {
	t.Run("NextPresentIffMoreResultsFollow", func(t *testing.T) {
		p := NewPagination(1, 25, 26)
		require.NotNil(t, p.Next)
		assert.Equal(t, Page{Page: 2, Limit: 25}, *p.Next)
		assert.Nil(t, p.Prev)

		p = NewPagination(1, 25, 25)
		assert.Nil(t, p.Next)
	})

	t.Run("PrevPresentIffPastFirstPage", func(t *testing.T) {
		p := NewPagination(2, 10, 15)
		require.NotNil(t, p.Prev)
		assert.Equal(t, Page{Page: 1, Limit: 10}, *p.Prev)
		assert.Nil(t, p.Next)
	})

	t.Run("MiddleWindowHasBoth", func(t *testing.T) {
		p := NewPagination(2, 10, 50)
		require.NotNil(t, p.Next)
		require.NotNil(t, p.Prev)
		assert.Equal(t, Page{Page: 3, Limit: 10}, *p.Next)
		assert.Equal(t, Page{Page: 1, Limit: 10}, *p.Prev)
		assert.Equal(t, 50, p.Total)
		assert.Equal(t, 2, p.CurrentPage)
	})

	t.Run("EmptyResultSet", func(t *testing.T) {
		p := NewPagination(1, 25, 0)
		assert.Nil(t, p.Next)
		assert.Nil(t, p.Prev)
		assert.Zero(t, p.Total)
	})
}
