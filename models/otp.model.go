package models

import (
	"time"

	"gorm.io/gorm"
)

// OTPPurpose distinguishes registration codes from password reset codes.
type OTPPurpose string

const (
	PurposeRegistration  OTPPurpose = "REGISTRATION"
	PurposePasswordReset OTPPurpose = "PASSWORD_RESET"
)

// OTP is the single live one-time code for an (email, purpose) pair.
// A new request for the same pair replaces the old row.
type OTP struct {
	gorm.Model
	Email     string     `gorm:"size:100;not null;uniqueIndex:idx_email_purpose" json:"email"`
	Purpose   OTPPurpose `gorm:"size:30;not null;uniqueIndex:idx_email_purpose" json:"purpose"`
	Code      string     `gorm:"size:6;not null" json:"code"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
}
