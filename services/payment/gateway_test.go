package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/apperrors"
	courseModels "lms/models/course"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeProvider struct {
	lastAmount   int64
	lastCurrency string
	lastReceipt  string
}

func (p *fakeProvider) CreateOrder(amount int64, currency, receipt string) (*Order, error) {
	p.lastAmount = amount
	p.lastCurrency = currency
	p.lastReceipt = receipt
	return &Order{ID: "order_test123", Amount: amount, Currency: currency}, nil
}

type fakeCourses struct {
	courses map[uint]*courseModels.Course
}

func (f *fakeCourses) CourseByID(id uint) (*courseModels.Course, error) {
	return f.courses[id], nil
}

type enrollKey struct{ user, course uint }

type fakeEnrollments struct {
	records map[enrollKey]*courseModels.Enrollment
}

func newFakeEnrollments() *fakeEnrollments {
	return &fakeEnrollments{records: make(map[enrollKey]*courseModels.Enrollment)}
}

func (f *fakeEnrollments) Create(e *courseModels.Enrollment) error {
	key := enrollKey{e.UserID, e.CourseID}
	if _, ok := f.records[key]; ok {
		return apperrors.ErrDuplicateKey
	}
	cp := *e
	f.records[key] = &cp
	return nil
}

func (f *fakeEnrollments) ByUserAndCourse(userID, courseID uint) (*courseModels.Enrollment, error) {
	e, ok := f.records[enrollKey{userID, courseID}]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEnrollments) ListByUser(userID uint) ([]courseModels.Enrollment, error) {
	var out []courseModels.Enrollment
	for _, e := range f.records {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func paidCourse(id uint, price int64) *courseModels.Course {
	c := &courseModels.Course{Price: price, Currency: "INR"}
	c.ID = id
	return c
}

func newTestGateway(courses *fakeCourses, enrollments *fakeEnrollments) (*Gateway, *fakeProvider) {
	provider := &fakeProvider{}
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	return NewGateway(provider, courses, enrollments, "test-secret", clock), provider
}

func TestCreateOrderUsesCoursePrice(t *testing.T) {
	courses := &fakeCourses{courses: map[uint]*courseModels.Course{1: paidCourse(1, 49900)}}
	g, provider := newTestGateway(courses, newFakeEnrollments())

	order, err := g.CreateOrder(1)
	require.NoError(t, err)
	assert.Equal(t, int64(49900), order.Amount)
	assert.Equal(t, int64(49900), provider.lastAmount)
	assert.Equal(t, "INR", provider.lastCurrency)
}

func TestCreateOrderUnknownCourse(t *testing.T) {
	g, _ := newTestGateway(&fakeCourses{courses: map[uint]*courseModels.Course{}}, newFakeEnrollments())

	_, err := g.CreateOrder(404)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCreateOrderFreeCourse(t *testing.T) {
	courses := &fakeCourses{courses: map[uint]*courseModels.Course{1: paidCourse(1, 0)}}
	g, _ := newTestGateway(courses, newFakeEnrollments())

	_, err := g.CreateOrder(1)
	assert.ErrorIs(t, err, ErrCourseIsFree)
}

func TestReceiptFormat(t *testing.T) {
	courses := &fakeCourses{courses: map[uint]*courseModels.Course{1: paidCourse(1, 100)}}
	g, provider := newTestGateway(courses, newFakeEnrollments())

	_, err := g.CreateOrder(1)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(provider.lastReceipt, "rcpt_1_"))
	assert.LessOrEqual(t, len(provider.lastReceipt), 40)
}

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPayment(t *testing.T) {
	g, _ := newTestGateway(&fakeCourses{}, newFakeEnrollments())

	good := sign("test-secret", "order_1", "pay_1")
	assert.NoError(t, g.VerifyPayment("order_1", "pay_1", good))
}

func TestVerifyPaymentRejectsTampering(t *testing.T) {
	g, _ := newTestGateway(&fakeCourses{}, newFakeEnrollments())

	good := sign("test-secret", "order_1", "pay_1")

	// Flip one hex character.
	tampered := []byte(good)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}
	assert.ErrorIs(t, g.VerifyPayment("order_1", "pay_1", string(tampered)), ErrInvalidSignature)

	// Signature over different ids does not transfer.
	assert.ErrorIs(t, g.VerifyPayment("order_2", "pay_1", good), ErrInvalidSignature)
	assert.ErrorIs(t, g.VerifyPayment("order_1", "pay_2", good), ErrInvalidSignature)

	// Wrong secret.
	foreign := sign("other-secret", "order_1", "pay_1")
	assert.ErrorIs(t, g.VerifyPayment("order_1", "pay_1", foreign), ErrInvalidSignature)
}

func TestConfirmEnrollment(t *testing.T) {
	enrollments := newFakeEnrollments()
	g, _ := newTestGateway(&fakeCourses{}, enrollments)

	e, err := g.ConfirmEnrollment(5, 1, 49900)
	require.NoError(t, err)
	assert.Equal(t, courseModels.EnrollmentCompleted, e.Status)
	assert.Equal(t, int64(49900), e.AmountPaid)
}

func TestConfirmEnrollmentIdempotent(t *testing.T) {
	enrollments := newFakeEnrollments()
	g, _ := newTestGateway(&fakeCourses{}, enrollments)

	first, err := g.ConfirmEnrollment(5, 1, 49900)
	require.NoError(t, err)

	// A retry after the duplicate-key outcome returns the existing record.
	second, err := g.ConfirmEnrollment(5, 1, 49900)
	require.NoError(t, err)
	assert.Equal(t, first.UserID, second.UserID)
	assert.Equal(t, first.CourseID, second.CourseID)
	assert.Len(t, enrollments.records, 1)
}
