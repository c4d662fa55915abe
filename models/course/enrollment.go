package course

import "gorm.io/gorm"

// EnrollmentStatus is the payment-side state of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "PENDING"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentFailed    EnrollmentStatus = "FAILED"
)

// Enrollment grants a learner access to a course. The composite unique
// index is the mutual-exclusion primitive for concurrent payment
// callbacks: check-then-insert at the application level is racy.
type Enrollment struct {
	gorm.Model
	UserID     uint             `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course"`
	CourseID   uint             `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course"`
	AmountPaid int64            `json:"amount_paid" gorm:"default:0"`
	Status     EnrollmentStatus `json:"status" gorm:"default:'PENDING'"`
}
