package course

import "gorm.io/gorm"

// Module represents a section/module within a course. OrderIndex values
// are unique within the course but may have gaps after deletions; only
// the relative order is meaningful.
type Module struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsDeleted   bool   `gorm:"default:false" json:"-"`
}
