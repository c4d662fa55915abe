package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lms/models"
)

// OTPs stores the single live code per (email, purpose). Rows are hard
// deleted: the unique index does the superseding, a lingering
// soft-deleted row would fight it.
type OTPs struct {
	db *gorm.DB
}

func NewOTPs(db *gorm.DB) *OTPs {
	return &OTPs{db: db}
}

// Upsert inserts the code or replaces the live one for the same
// (email, purpose). Last write wins, which is what makes two
// concurrent requests leave exactly one live code.
func (r *OTPs) Upsert(record *models.OTP) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}, {Name: "purpose"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "updated_at"}),
	}).Create(record).Error
}

func (r *OTPs) Find(email string, purpose models.OTPPurpose) (*models.OTP, error) {
	var record models.OTP
	err := r.db.Where("email = ? AND purpose = ?", email, purpose).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *OTPs) Delete(email string, purpose models.OTPPurpose) error {
	return r.db.Unscoped().Where("email = ? AND purpose = ?", email, purpose).Delete(&models.OTP{}).Error
}

// PurgeExpired removes codes past their TTL. Expiry is enforced at
// verification time regardless; this is hygiene for the cron job.
func (r *OTPs) PurgeExpired(now time.Time) (int64, error) {
	res := r.db.Unscoped().Where("expires_at < ?", now).Delete(&models.OTP{})
	return res.RowsAffected, res.Error
}
