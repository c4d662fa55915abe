package otp

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/models"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type codeKey struct {
	email   string
	purpose models.OTPPurpose
}

type fakeCodes struct {
	records map[codeKey]*models.OTP
}

func newFakeCodes() *fakeCodes {
	return &fakeCodes{records: make(map[codeKey]*models.OTP)}
}

func (f *fakeCodes) Upsert(record *models.OTP) error {
	cp := *record
	f.records[codeKey{record.Email, record.Purpose}] = &cp
	return nil
}

func (f *fakeCodes) Find(email string, purpose models.OTPPurpose) (*models.OTP, error) {
	rec, ok := f.records[codeKey{email, purpose}]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeCodes) Delete(email string, purpose models.OTPPurpose) error {
	delete(f.records, codeKey{email, purpose})
	return nil
}

type fakeAccounts struct {
	existing map[string]bool
	grants   map[string]string
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{existing: make(map[string]bool), grants: make(map[string]string)}
}

func (f *fakeAccounts) EmailExists(email string) (bool, error) {
	return f.existing[email], nil
}

func (f *fakeAccounts) GrantPasswordReset(email, grant string, expiresAt time.Time) error {
	f.grants[email] = grant
	return nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func newTestWorkflow(codes *fakeCodes, accounts *fakeAccounts, mailer *fakeMailer, clock *fakeClock) *Workflow {
	return NewWorkflow(codes, accounts, mailer, clock, 5*time.Minute)
}

func TestRequestCodeRoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codes := newFakeCodes()
	mailer := &fakeMailer{}
	w := newTestWorkflow(codes, newFakeAccounts(), mailer, clock)

	require.NoError(t, w.RequestCode("user@example.com", models.PurposeRegistration))
	require.Len(t, mailer.sent, 1)

	rec, err := codes.Find("user@example.com", models.PurposeRegistration)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Len(t, rec.Code, 6)

	grant, err := w.VerifyCode("user@example.com", rec.Code, models.PurposeRegistration)
	require.NoError(t, err)
	assert.Empty(t, grant)
}

func TestRequestCodeRejectsInvalidEmail(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	w := newTestWorkflow(newFakeCodes(), newFakeAccounts(), &fakeMailer{}, clock)

	err := w.RequestCode("not-an-email", models.PurposeRegistration)
	assert.ErrorIs(t, err, ErrInvalidEmailFormat)
}

func TestRequestCodeRejectsExistingAccount(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	accounts := newFakeAccounts()
	accounts.existing["taken@example.com"] = true
	w := newTestWorkflow(newFakeCodes(), accounts, &fakeMailer{}, clock)

	err := w.RequestCode("taken@example.com", models.PurposeRegistration)
	assert.ErrorIs(t, err, ErrAccountAlreadyExists)
}

func TestMailFailureKeepsCodeLive(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codes := newFakeCodes()
	mailer := &fakeMailer{err: errors.New("smtp down")}
	w := newTestWorkflow(codes, newFakeAccounts(), mailer, clock)

	err := w.RequestCode("user@example.com", models.PurposeRegistration)
	assert.ErrorIs(t, err, ErrNotificationDeliveryFailed)

	rec, findErr := codes.Find("user@example.com", models.PurposeRegistration)
	require.NoError(t, findErr)
	assert.NotNil(t, rec, "code should survive a delivery failure")
}

func TestResendReplacesCode(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codes := newFakeCodes()
	w := newTestWorkflow(codes, newFakeAccounts(), &fakeMailer{}, clock)

	require.NoError(t, w.RequestCode("user@example.com", models.PurposeRegistration))
	first, _ := codes.Find("user@example.com", models.PurposeRegistration)

	require.NoError(t, w.Resend("user@example.com", models.PurposeRegistration))
	second, _ := codes.Find("user@example.com", models.PurposeRegistration)

	// The old code no longer verifies once replaced (unless the 1-in-a-
	// million collision happens; compare records, not just codes).
	if first.Code != second.Code {
		_, err := w.VerifyCode("user@example.com", first.Code, models.PurposeRegistration)
		assert.ErrorIs(t, err, ErrCodeMismatch)
	}

	_, err := w.VerifyCode("user@example.com", second.Code, models.PurposeRegistration)
	assert.NoError(t, err)
}

func TestVerifyCodeSingleUse(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codes := newFakeCodes()
	w := newTestWorkflow(codes, newFakeAccounts(), &fakeMailer{}, clock)

	require.NoError(t, w.RequestCode("user@example.com", models.PurposeRegistration))
	rec, _ := codes.Find("user@example.com", models.PurposeRegistration)

	_, err := w.VerifyCode("user@example.com", rec.Code, models.PurposeRegistration)
	require.NoError(t, err)

	_, err = w.VerifyCode("user@example.com", rec.Code, models.PurposeRegistration)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestVerifyCodeMismatch(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codes := newFakeCodes()
	w := newTestWorkflow(codes, newFakeAccounts(), &fakeMailer{}, clock)

	require.NoError(t, w.RequestCode("user@example.com", models.PurposeRegistration))

	_, err := w.VerifyCode("user@example.com", "000000x", models.PurposeRegistration)
	assert.ErrorIs(t, err, ErrCodeMismatch)

	// A mismatch must not consume the live code.
	rec, _ := codes.Find("user@example.com", models.PurposeRegistration)
	assert.NotNil(t, rec)
}

func TestVerifyCodeExpired(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codes := newFakeCodes()
	w := newTestWorkflow(codes, newFakeAccounts(), &fakeMailer{}, clock)

	require.NoError(t, w.RequestCode("user@example.com", models.PurposeRegistration))
	rec, _ := codes.Find("user@example.com", models.PurposeRegistration)

	clock.now = clock.now.Add(6 * time.Minute)

	_, err := w.VerifyCode("user@example.com", rec.Code, models.PurposeRegistration)
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestVerifyResetCodeIssuesGrant(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codes := newFakeCodes()
	accounts := newFakeAccounts()
	w := newTestWorkflow(codes, accounts, &fakeMailer{}, clock)

	require.NoError(t, w.RequestCode("user@example.com", models.PurposePasswordReset))
	rec, _ := codes.Find("user@example.com", models.PurposePasswordReset)

	grant, err := w.VerifyCode("user@example.com", rec.Code, models.PurposePasswordReset)
	require.NoError(t, err)
	assert.NotEmpty(t, grant)
	assert.Equal(t, grant, accounts.grants["user@example.com"])

	// The code is consumed even though a grant now exists.
	left, _ := codes.Find("user@example.com", models.PurposePasswordReset)
	assert.Nil(t, left)
}

func TestPurposesAreIndependent(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codes := newFakeCodes()
	w := newTestWorkflow(codes, newFakeAccounts(), &fakeMailer{}, clock)

	require.NoError(t, w.RequestCode("user@example.com", models.PurposePasswordReset))
	resetRec, _ := codes.Find("user@example.com", models.PurposePasswordReset)

	_, err := w.VerifyCode("user@example.com", resetRec.Code, models.PurposeRegistration)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}
