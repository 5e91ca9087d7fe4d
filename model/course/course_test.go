package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSkill(t *testing.T) {
	assert.True(t, ValidSkill(SkillBeginner))
	assert.True(t, ValidSkill(SkillIntermediate))
	assert.True(t, ValidSkill(SkillAdvanced))
	assert.False(t, ValidSkill("expert"))
	assert.False(t, ValidSkill(""))
}
