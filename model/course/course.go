package course

import "time"

// Course is the database representation of a course offered by a
// bootcamp. Ownership follows the parent bootcamp's owner.
type Course struct {
	Id                   string    `bson:"_id"`
	Title                string    `bson:"title"`
	Description          string    `bson:"description"`
	Weeks                int       `bson:"weeks"`
	Tuition              float64   `bson:"tuition"`
	MinimumSkill         string    `bson:"minimum_skill"`
	ScholarshipAvailable bool      `bson:"scholarship_available"`
	BootcampId           string    `bson:"bootcamp_id"`
	OwnerId              string    `bson:"owner_id"`
	CreatedAt            time.Time `bson:"created_at"`
}

// skill levels accepted for MinimumSkill.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// ValidSkill reports whether the given minimum skill level is recognized.
func ValidSkill(skill string) bool {
	switch skill {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}
