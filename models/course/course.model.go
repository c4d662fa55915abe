package course

import "gorm.io/gorm"

// Course represents a learning course owned by an instructor
type Course struct {
	gorm.Model
	InstructorID uint   `json:"instructor_id" gorm:"index;not null"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Price        int64  `json:"price" gorm:"default:0"` // minor units, 0 = free
	Currency     string `json:"currency" gorm:"default:'INR'"`
	ThumbnailURL string `json:"thumbnail_url"`
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	IsDeleted    bool   `gorm:"default:false" json:"-"`
}
