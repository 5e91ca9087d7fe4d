package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	r := Review{Title: "Learned a ton", Rating: 8}
	assert.NoError(t, r.Validate())

	r.Rating = 0
	assert.Error(t, r.Validate())

	r.Rating = 11
	assert.Error(t, r.Validate())

	r.Rating = 10
	r.Title = ""
	assert.Error(t, r.Validate())
}
