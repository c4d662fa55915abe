package course

import (
	"time"

	"gorm.io/gorm"
)

// LectureProgress records that a learner finished a lecture. Existence
// of a row means completed; marking again refreshes CompletedAt via
// upsert, it never duplicates.
type LectureProgress struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lecture"`
	LectureID   uint      `json:"lecture_id" gorm:"not null;uniqueIndex:idx_user_lecture"`
	ModuleID    uint      `json:"module_id" gorm:"index;not null"`
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	CompletedAt time.Time `json:"completed_at"`
}
