package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/google/uuid"

	"lms/apperrors"
	"lms/models"
	"lms/services/token"
)

var (
	ErrInvalidEmailFormat         = apperrors.New(apperrors.KindValidation, "InvalidEmailFormat", "Invalid email!")
	ErrAccountAlreadyExists       = apperrors.New(apperrors.KindConflict, "AccountAlreadyExists", "Email is already registered!")
	ErrNotificationDeliveryFailed = apperrors.New(apperrors.KindExternal, "NotificationDeliveryFailed", "Failed to send OTP email. Please retry.")
	ErrCodeNotFound               = apperrors.New(apperrors.KindNotFound, "CodeNotFound", "No OTP pending for this email!")
	ErrCodeMismatch               = apperrors.New(apperrors.KindValidation, "CodeMismatch", "Invalid OTP!")
	ErrCodeExpired                = apperrors.New(apperrors.KindValidation, "CodeExpired", "OTP has expired!")
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const resetGrantTTL = 15 * time.Minute

// CodeStore persists at most one live code per (email, purpose).
// Upsert replaces the previous row, which gives the last-write-wins
// semantics two concurrent requests rely on.
type CodeStore interface {
	Upsert(record *models.OTP) error
	Find(email string, purpose models.OTPPurpose) (*models.OTP, error)
	Delete(email string, purpose models.OTPPurpose) error
}

// AccountStore is the slice of account persistence the workflow needs.
type AccountStore interface {
	EmailExists(email string) (bool, error)
	GrantPasswordReset(email, grant string, expiresAt time.Time) error
}

// Mailer dispatches the code to the user.
type Mailer interface {
	Send(to, subject, body string) error
}

// Workflow drives the registration / password-reset OTP state machine.
type Workflow struct {
	codes    CodeStore
	accounts AccountStore
	mailer   Mailer
	clock    token.Clock
	ttl      time.Duration
}

func NewWorkflow(codes CodeStore, accounts AccountStore, mailer Mailer, clock token.Clock, ttl time.Duration) *Workflow {
	return &Workflow{codes: codes, accounts: accounts, mailer: mailer, clock: clock, ttl: ttl}
}

// RequestCode validates the email, persists a fresh code replacing any
// prior live one, and mails it. A mail failure is reported but the code
// stays live: a resend can recover without invalidating anything.
func (w *Workflow) RequestCode(email string, purpose models.OTPPurpose) error {
	if !emailRe.MatchString(email) {
		return ErrInvalidEmailFormat
	}

	if purpose == models.PurposeRegistration {
		exists, err := w.accounts.EmailExists(email)
		if err != nil {
			return err
		}
		if exists {
			return ErrAccountAlreadyExists
		}
	}

	return w.issue(email, purpose)
}

// Resend regenerates the code unconditionally. Existence rules are not
// re-checked; the first RequestCode already enforced them.
func (w *Workflow) Resend(email string, purpose models.OTPPurpose) error {
	if !emailRe.MatchString(email) {
		return ErrInvalidEmailFormat
	}
	return w.issue(email, purpose)
}

func (w *Workflow) issue(email string, purpose models.OTPPurpose) error {
	code, err := generateCode()
	if err != nil {
		return err
	}

	record := &models.OTP{
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: w.clock.Now().Add(w.ttl),
	}
	if err := w.codes.Upsert(record); err != nil {
		return err
	}

	subject := "Your verification code"
	if purpose == models.PurposePasswordReset {
		subject = "Your password reset code"
	}
	if err := w.mailer.Send(email, subject, codeEmailBody(code)); err != nil {
		return apperrors.Wrap(ErrNotificationDeliveryFailed, err)
	}

	return nil
}

// VerifyCode consumes the live code for (email, purpose). On success for
// the reset purpose it returns a single-use grant authorizing exactly
// one password change; for registration the grant is empty and the
// caller creates the account.
func (w *Workflow) VerifyCode(email, code string, purpose models.OTPPurpose) (string, error) {
	record, err := w.codes.Find(email, purpose)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", ErrCodeNotFound
	}

	if record.Code != code {
		return "", ErrCodeMismatch
	}

	if w.clock.Now().After(record.ExpiresAt) {
		return "", ErrCodeExpired
	}

	// Single use: the code is gone whether or not the caller's follow-up
	// write succeeds.
	if err := w.codes.Delete(email, purpose); err != nil {
		return "", err
	}

	if purpose == models.PurposePasswordReset {
		grant := uuid.NewString()
		expiresAt := w.clock.Now().Add(resetGrantTTL)
		if err := w.accounts.GrantPasswordReset(email, grant, expiresAt); err != nil {
			return "", err
		}
		return grant, nil
	}

	return "", nil
}

// generateCode produces a fixed-length 6-digit numeric code.
func generateCode() (string, error) {
	code := ""
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code += fmt.Sprintf("%d", n.Int64())
	}
	return code, nil
}

func codeEmailBody(code string) string {
	return fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<p style="font-size: 16px; color: #555555; text-align: center;">Your One Time Password (OTP) is:</p>
					<h1 style="text-align: center; color: #4CAF50; font-size: 40px; margin: 20px 0;">%s</h1>
					<p style="font-size: 14px; color: #999999; text-align: center;">Do not share this OTP with anyone.</p>
				</div>
			</body>
		</html>
	`, code)
}
