package token

import (
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

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeAccounts struct {
	roles  map[uint]models.Role
	tokens map[uint]string
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		roles:  make(map[uint]models.Role),
		tokens: make(map[uint]string),
	}
}

func (f *fakeAccounts) RoleByUser(userID uint) (models.Role, error) {
	return f.roles[userID], nil
}

func (f *fakeAccounts) RefreshTokenByUser(userID uint) (string, error) {
	return f.tokens[userID], nil
}

func (f *fakeAccounts) SaveRefreshToken(userID uint, token string) error {
	f.tokens[userID] = token
	return nil
}

func newTestService(accounts AccountStore, clock Clock) *Service {
	return NewService("test-secret", time.Hour, 24*time.Hour, accounts, clock)
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc := newTestService(newFakeAccounts(), clock)

	signed, err := svc.IssueAccessToken(42, models.RoleInstructor)
	require.NoError(t, err)

	claims, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleInstructor, claims.Role)
}

func TestVerifyExpiredToken(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc := newTestService(newFakeAccounts(), clock)

	signed, err := svc.IssueAccessToken(1, models.RoleLearner)
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc := newTestService(newFakeAccounts(), clock)
	other := NewService("other-secret", time.Hour, 24*time.Hour, newFakeAccounts(), clock)

	signed, err := other.IssueAccessToken(1, models.RoleLearner)
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestIssueRefreshTokenPersists(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	accounts := newFakeAccounts()
	accounts.roles[7] = models.RoleLearner
	svc := newTestService(accounts, clock)

	signed, err := svc.IssueRefreshToken(7)
	require.NoError(t, err)
	assert.Equal(t, signed, accounts.tokens[7])
}

func TestRotateReplacesStoredToken(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	accounts := newFakeAccounts()
	accounts.roles[7] = models.RoleLearner
	svc := newTestService(accounts, clock)

	old, err := svc.IssueRefreshToken(7)
	require.NoError(t, err)

	// jti is random, so the new token differs even at the same instant.
	access, refresh, err := svc.Rotate(old)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEqual(t, old, refresh)
	assert.Equal(t, refresh, accounts.tokens[7])

	claims, err := svc.Verify(access)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, models.RoleLearner, claims.Role)
}

func TestRotateRejectsSupersededToken(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	accounts := newFakeAccounts()
	accounts.roles[7] = models.RoleLearner
	svc := newTestService(accounts, clock)

	old, err := svc.IssueRefreshToken(7)
	require.NoError(t, err)

	_, current, err := svc.Rotate(old)
	require.NoError(t, err)

	// Replaying the superseded token fails and leaves the slot untouched.
	_, _, err = svc.Rotate(old)
	assert.ErrorIs(t, err, ErrTokenMismatch)
	assert.Equal(t, current, accounts.tokens[7])
}

func TestRotateRejectsExpiredRefreshToken(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	accounts := newFakeAccounts()
	accounts.roles[7] = models.RoleLearner
	svc := newTestService(accounts, clock)

	old, err := svc.IssueRefreshToken(7)
	require.NoError(t, err)

	clock.Advance(25 * time.Hour)

	_, _, err = svc.Rotate(old)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
