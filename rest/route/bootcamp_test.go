package route

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campdir/campdir/thirdparty"
	"github.com/evergreen-ci/gimlet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadiusHandlerParse(t *testing.T) {
	ctx := context.Background()

	makeRequest := func(zipcode, distance string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/bootcamps/radius/"+zipcode+"/"+distance, nil)
		return gimlet.SetURLVars(r, map[string]string{"zipcode": zipcode, "distance": distance})
	}

	t.Run("ValidInput", func(t *testing.T) {
		h := &bootcampRadiusHandler{}
		require.NoError(t, h.Parse(ctx, makeRequest("02114", "25")))
		assert.Equal(t, "02114", h.zipcode)
		assert.Equal(t, 25.0, h.distance)
	})

	t.Run("MalformedDistance", func(t *testing.T) {
		h := &bootcampRadiusHandler{}
		assert.Error(t, h.Parse(ctx, makeRequest("02114", "nearby")))
	})

	t.Run("NegativeDistance", func(t *testing.T) {
		h := &bootcampRadiusHandler{}
		assert.Error(t, h.Parse(ctx, makeRequest("02114", "-5")))
	})
}

func TestBootcampPostParse(t *testing.T) {
	ctx := context.Background()

	makeRequest := func(body string) *http.Request {
		return httptest.NewRequest(http.MethodPost, "/bootcamps", bytes.NewBufferString(body))
	}

	t.Run("ValidBody", func(t *testing.T) {
		h := &bootcampPostHandler{}
		body := `{"name": "Devworks", "description": "intense", "address": "233 Bay State Rd, Boston MA"}`
		require.NoError(t, h.Parse(ctx, makeRequest(body)))
	})

	t.Run("MissingName", func(t *testing.T) {
		h := &bootcampPostHandler{}
		assert.Error(t, h.Parse(ctx, makeRequest(`{"address": "233 Bay State Rd"}`)))
	})

	t.Run("MissingAddress", func(t *testing.T) {
		h := &bootcampPostHandler{}
		assert.Error(t, h.Parse(ctx, makeRequest(`{"name": "Devworks"}`)))
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		h := &bootcampPostHandler{}
		assert.Error(t, h.Parse(ctx, makeRequest(`{"name": `)))
	})
}

func TestGeoPointFromLocation(t *testing.T) {
	point := geoPointFromLocation(&thirdparty.Location{
		Latitude:  42.35,
		Longitude: -71.1,
		City:      "Boston",
		State:     "MA",
		Zipcode:   "02215",
	})

	assert.Equal(t, "Point", point.Type)
	require.Len(t, point.Coordinates, 2)
	assert.Equal(t, -71.1, point.Coordinates[0])
	assert.Equal(t, 42.35, point.Coordinates[1])
	assert.Equal(t, "Boston", point.City)
}
