// Package repository holds the gorm-backed implementations of the
// narrow store interfaces each service declares.
package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"lms/apperrors"
)

// translateDuplicate maps driver-level unique constraint violations to
// apperrors.ErrDuplicateKey. gorm's TranslateError covers postgres and
// sqlite; the string checks are a fallback for drivers without it.
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Wrap(apperrors.ErrDuplicateKey, err)
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed") {
		return apperrors.Wrap(apperrors.ErrDuplicateKey, err)
	}
	return err
}
