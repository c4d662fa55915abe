package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"lms/models"
)

// Accounts is the gorm-backed account store. It serves the token
// service, the OTP workflow, the instructor lifecycle and the auth
// controllers through their narrow interfaces.
type Accounts struct {
	db *gorm.DB
}

func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{db: db}
}

func (r *Accounts) ByID(userID uint) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Accounts) ByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Accounts) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ? AND is_deleted = ?", email, false).Count(&count).Error
	return count > 0, err
}

func (r *Accounts) Create(user *models.User) error {
	return translateDuplicate(r.db.Create(user).Error)
}

func (r *Accounts) RoleByUser(userID uint) (models.Role, error) {
	var user models.User
	if err := r.db.Select("role").Where("id = ?", userID).First(&user).Error; err != nil {
		return "", err
	}
	return user.Role, nil
}

func (r *Accounts) RefreshTokenByUser(userID uint) (string, error) {
	var user models.User
	if err := r.db.Select("refresh_token").Where("id = ?", userID).First(&user).Error; err != nil {
		return "", err
	}
	return user.RefreshToken, nil
}

func (r *Accounts) SaveRefreshToken(userID uint, token string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("refresh_token", token).Error
}

func (r *Accounts) SetRoleAndStatus(userID uint, role models.Role, status models.AccountStatus) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"role": role, "account_status": status}).Error
}

func (r *Accounts) SetStatus(userID uint, status models.AccountStatus) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("account_status", status).Error
}

func (r *Accounts) ListByStatus(role models.Role, status models.AccountStatus) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ? AND account_status = ? AND is_deleted = ?", role, status, false).
		Order("created_at asc").Find(&users).Error
	return users, err
}

func (r *Accounts) SetLastLogin(userID uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("last_login", at).Error
}

func (r *Accounts) UpdatePassword(userID uint, hashed string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("password", hashed).Error
}

func (r *Accounts) GrantPasswordReset(email, grant string, expiresAt time.Time) error {
	return r.db.Model(&models.User{}).Where("email = ?", email).
		Updates(map[string]interface{}{"reset_grant": grant, "reset_grant_expires_at": expiresAt}).Error
}

// ConsumeResetGrant clears the grant if it matches and is still live,
// returning the account it belonged to. The clear makes the grant good
// for exactly one password change.
func (r *Accounts) ConsumeResetGrant(email, grant string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ? AND reset_grant = ? AND reset_grant_expires_at > ? AND is_deleted = ?",
		email, grant, now, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"reset_grant": "", "reset_grant_expires_at": nil}).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
