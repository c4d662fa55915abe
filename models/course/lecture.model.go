package course

import "gorm.io/gorm"

// Lecture represents a single video lecture inside a module.
type Lecture struct {
	gorm.Model
	ModuleID   uint   `json:"module_id" gorm:"index;not null"`
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	VideoURL   string `json:"video_url"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false" json:"-"`
}
