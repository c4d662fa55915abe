package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"lms/apperrors"
	courseModels "lms/models/course"
	"lms/services/token"
)

var (
	ErrCourseNotFound   = apperrors.New(apperrors.KindNotFound, "CourseNotFound", "Course not found!")
	ErrCourseIsFree     = apperrors.New(apperrors.KindConflict, "CourseIsFree", "Course is free; no payment order needed!")
	ErrInvalidSignature = apperrors.New(apperrors.KindAuthorization, "InvalidSignature", "Payment signature verification failed!")
)

// receiptMaxLen is the payment provider's receipt length limit.
const receiptMaxLen = 40

// Order is the provider-side order. Nothing is persisted locally; an
// abandoned checkout leaves no record.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Provider creates orders with the external payment service. Signature
// verification is computed locally, never delegated.
type Provider interface {
	CreateOrder(amount int64, currency, receipt string) (*Order, error)
}

// CourseStore is the read surface the gateway needs.
type CourseStore interface {
	CourseByID(id uint) (*courseModels.Course, error)
}

// EnrollmentStore persists enrollments under the (user, course) unique
// constraint. Create must surface constraint violations as
// apperrors.ErrDuplicateKey.
type EnrollmentStore interface {
	Create(e *courseModels.Enrollment) error
	ByUserAndCourse(userID, courseID uint) (*courseModels.Enrollment, error)
	ListByUser(userID uint) ([]courseModels.Enrollment, error)
}

// Gateway handles order creation, signature verification and idempotent
// enrollment confirmation.
type Gateway struct {
	provider    Provider
	courses     CourseStore
	enrollments EnrollmentStore
	secret      []byte
	clock       token.Clock
}

func NewGateway(provider Provider, courses CourseStore, enrollments EnrollmentStore, secret string, clock token.Clock) *Gateway {
	return &Gateway{
		provider:    provider,
		courses:     courses,
		enrollments: enrollments,
		secret:      []byte(secret),
		clock:       clock,
	}
}

// CreateOrder requests a provider order for the course's price. The
// amount comes from the course record, not the client.
func (g *Gateway) CreateOrder(courseID uint) (*Order, error) {
	course, err := g.courses.CourseByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	if course.Price == 0 {
		return nil, ErrCourseIsFree
	}

	receipt := g.buildReceipt(courseID)
	return g.provider.CreateOrder(course.Price, course.Currency, receipt)
}

// buildReceipt derives a receipt id from the course id and the current
// time, truncated to the provider's 40-character limit.
func (g *Gateway) buildReceipt(courseID uint) string {
	id := fmt.Sprintf("%d", courseID)
	if len(id) > 20 {
		id = id[:20]
	}
	receipt := fmt.Sprintf("rcpt_%s_%d", id, g.clock.Now().UnixMilli())
	if len(receipt) > receiptMaxLen {
		receipt = receipt[:receiptMaxLen]
	}
	return receipt
}

// VerifyPayment recomputes the HMAC-SHA256 of "orderId|paymentId" and
// compares it to the supplied signature in constant time. A mismatch
// must never create an enrollment.
func (g *Gateway) VerifyPayment(orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

// ConfirmEnrollment records a completed enrollment after a verified
// payment. It is idempotent under the (student, course) uniqueness
// invariant: a duplicate-key outcome (client retry, concurrent payment
// callback) returns the existing record instead of an error.
func (g *Gateway) ConfirmEnrollment(studentID, courseID uint, amount int64) (*courseModels.Enrollment, error) {
	enrollment := &courseModels.Enrollment{
		UserID:     studentID,
		CourseID:   courseID,
		AmountPaid: amount,
		Status:     courseModels.EnrollmentCompleted,
	}

	err := g.enrollments.Create(enrollment)
	if err == nil {
		return enrollment, nil
	}
	if !errors.Is(err, apperrors.ErrDuplicateKey) {
		return nil, err
	}

	existing, err := g.enrollments.ByUserAndCourse(studentID, courseID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		// Lost a race with a delete; treat as a fresh failure.
		return nil, apperrors.ErrDuplicateKey
	}
	return existing, nil
}

// Enrollments lists a learner's enrollments.
func (g *Gateway) Enrollments(userID uint) ([]courseModels.Enrollment, error) {
	return g.enrollments.ListByUser(userID)
}
