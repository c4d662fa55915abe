package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of account roles. Authorization checkpoints
// switch exhaustively over it instead of comparing raw strings.
type Role string

const (
	RoleLearner    Role = "LEARNER"
	RoleInstructor Role = "INSTRUCTOR"
	RoleAdmin      Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleLearner, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// AccountStatus is the instructor approval state.
type AccountStatus string

const (
	StatusPending  AccountStatus = "PENDING"
	StatusApproved AccountStatus = "APPROVED"
	StatusRejected AccountStatus = "REJECTED"
	StatusBlocked  AccountStatus = "BLOCKED"
)

type User struct {
	gorm.Model
	Name     string `gorm:"default:''" json:"name"`
	Email    string `gorm:"unique;not null" json:"email"`
	Role     Role   `gorm:"default:'LEARNER'" json:"role"`
	Password string `gorm:"not null" json:"-"`

	// Instructor lifecycle. IsVerified is set when the email OTP is
	// consumed; AccountStatus only matters for instructors.
	IsVerified    bool          `gorm:"default:false" json:"is_verified"`
	AccountStatus AccountStatus `gorm:"default:'PENDING'" json:"account_status"`

	// Single-slot refresh token. Issuing a new one overwrites the old,
	// which makes refresh tokens single-use per account.
	RefreshToken string `gorm:"default:''" json:"-"`

	// Single-use password reset grant issued after a reset OTP verifies.
	ResetGrant          string     `gorm:"default:''" json:"-"`
	ResetGrantExpiresAt *time.Time `json:"-"`

	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `gorm:"default:false" json:"-"`
}
