package route

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evergreen-ci/gimlet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoursePostParse(t *testing.T) {
	ctx := context.Background()

	makeRequest := func(body string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/bootcamps/b123/courses", bytes.NewBufferString(body))
		return gimlet.SetURLVars(r, map[string]string{"bootcamp_id": "b123"})
	}

	t.Run("ValidBody", func(t *testing.T) {
		h := &coursePostHandler{}
		body := `{"title": "Full Stack Web Dev", "weeks": 12, "tuition": 10000, "minimum_skill": "beginner"}`
		require.NoError(t, h.Parse(ctx, makeRequest(body)))
		assert.Equal(t, "b123", h.bootcampID)
	})

	t.Run("MissingTitle", func(t *testing.T) {
		h := &coursePostHandler{}
		assert.Error(t, h.Parse(ctx, makeRequest(`{"weeks": 12}`)))
	})
}

func TestCourseListParsePicksUpNestedBootcamp(t *testing.T) {
	h := &courseGetAllHandler{}
	r := httptest.NewRequest(http.MethodGet, "/bootcamps/b123/courses?tuition[lte]=5000", nil)
	r = gimlet.SetURLVars(r, map[string]string{"bootcamp_id": "b123"})
	require.NoError(t, h.Parse(context.Background(), r))

	assert.Equal(t, "b123", h.bootcampID)
	assert.Contains(t, h.opts.Filter, "tuition")
}
