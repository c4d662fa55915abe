package repository

import (
	"errors"

	"gorm.io/gorm"

	courseModels "lms/models/course"
)

// Enrollments persists (user, course) enrollments. The composite unique
// index in the model is the only mutual-exclusion primitive; Create
// surfaces violations as apperrors.ErrDuplicateKey.
type Enrollments struct {
	db *gorm.DB
}

func NewEnrollments(db *gorm.DB) *Enrollments {
	return &Enrollments{db: db}
}

func (r *Enrollments) Create(e *courseModels.Enrollment) error {
	return translateDuplicate(r.db.Create(e).Error)
}

func (r *Enrollments) ByUserAndCourse(userID, courseID uint) (*courseModels.Enrollment, error) {
	var e courseModels.Enrollment
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Enrollments) ListByUser(userID uint) ([]courseModels.Enrollment, error) {
	var enrollments []courseModels.Enrollment
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&enrollments).Error
	return enrollments, err
}
