package bootcamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSetSlug(t *testing.T) {
	b := Bootcamp{Name: "Devworks Bootcamp"}
	b.SetSlug()
	assert.Equal(t, "devworks-bootcamp", b.Slug)

	b.Name = "ModernTech  Bootcamp!"
	b.SetSlug()
	assert.Equal(t, "moderntech-bootcamp", b.Slug)
}

func TestNewGeoPoint(t *testing.T) {
	p := NewGeoPoint(-71.104, 42.350)
	assert.Equal(t, "Point", p.Type)
	assert.Equal(t, []float64{-71.104, 42.350}, p.Coordinates)
}

func TestWithinRadius(t *testing.T) {
	q := WithinRadius(-71.104, 42.350, 3963.0)

	filter, ok := q.GetFilter().(bson.M)
	require.True(t, ok)
	clause, ok := filter[LocationKey].(bson.M)
	require.True(t, ok)
	within, ok := clause["$geoWithin"].(bson.M)
	require.True(t, ok)
	sphere, ok := within["$centerSphere"].([]any)
	require.True(t, ok)
	require.Len(t, sphere, 2)

	assert.Equal(t, []float64{-71.104, 42.350}, sphere[0])
	// a distance equal to the Earth's radius is exactly one radian
	assert.InDelta(t, 1.0, sphere[1], 1e-9)
}
