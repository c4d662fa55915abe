package instructor

import (
	"lms/apperrors"
	"lms/models"
)

var (
	ErrAccountNotFound       = apperrors.New(apperrors.KindNotFound, "AccountNotFound", "Account not found!")
	ErrNotAnInstructor       = apperrors.New(apperrors.KindAuthorization, "NotAnInstructor", "Account is not an instructor!")
	ErrInstructorNotVerified = apperrors.New(apperrors.KindAuthorization, "InstructorNotVerified", "Instructor email is not verified!")
	ErrInstructorNotApproved = apperrors.New(apperrors.KindAuthorization, "InstructorNotApproved", "Instructor is not approved!")
	ErrInvalidTransition     = apperrors.New(apperrors.KindConflict, "InvalidStatusTransition", "Status transition not allowed!")
	ErrAlreadyInstructor     = apperrors.New(apperrors.KindConflict, "AlreadyInstructor", "Account is already an instructor!")
)

// AccountStore is the slice of account persistence the lifecycle needs.
type AccountStore interface {
	ByID(userID uint) (*models.User, error)
	SetRoleAndStatus(userID uint, role models.Role, status models.AccountStatus) error
	SetStatus(userID uint, status models.AccountStatus) error
	ListByStatus(role models.Role, status models.AccountStatus) ([]models.User, error)
}

// Lifecycle owns the instructor approval state machine:
// pending -> approved | rejected, approved <-> blocked.
type Lifecycle struct {
	accounts AccountStore
}

func NewLifecycle(accounts AccountStore) *Lifecycle {
	return &Lifecycle{accounts: accounts}
}

// Apply converts a learner account into a pending instructor.
func (l *Lifecycle) Apply(userID uint) error {
	user, err := l.accounts.ByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrAccountNotFound
	}
	if user.Role == models.RoleInstructor {
		return ErrAlreadyInstructor
	}
	if user.Role != models.RoleLearner {
		return ErrInvalidTransition
	}
	return l.accounts.SetRoleAndStatus(userID, models.RoleInstructor, models.StatusPending)
}

// Approve moves a pending instructor to approved.
func (l *Lifecycle) Approve(userID uint) error {
	return l.transition(userID, models.StatusApproved, models.StatusPending)
}

// Reject moves a pending instructor to rejected. Rejected is terminal
// for authoring; re-application is out of scope.
func (l *Lifecycle) Reject(userID uint) error {
	return l.transition(userID, models.StatusRejected, models.StatusPending)
}

// Block suspends an approved instructor.
func (l *Lifecycle) Block(userID uint) error {
	return l.transition(userID, models.StatusBlocked, models.StatusApproved)
}

// Unblock restores a blocked instructor to approved.
func (l *Lifecycle) Unblock(userID uint) error {
	return l.transition(userID, models.StatusApproved, models.StatusBlocked)
}

func (l *Lifecycle) transition(userID uint, target models.AccountStatus, allowedFrom models.AccountStatus) error {
	user, err := l.accounts.ByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrAccountNotFound
	}
	if user.Role != models.RoleInstructor {
		return ErrNotAnInstructor
	}
	if user.AccountStatus != allowedFrom {
		return ErrInvalidTransition
	}
	return l.accounts.SetStatus(userID, target)
}

// ListPending returns instructors awaiting an admin decision.
func (l *Lifecycle) ListPending() ([]models.User, error) {
	return l.accounts.ListByStatus(models.RoleInstructor, models.StatusPending)
}

// Authorize gates authoring operations. Checks run in a fixed order:
// account exists, email verified, status approved.
func (l *Lifecycle) Authorize(userID uint) error {
	user, err := l.accounts.ByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrAccountNotFound
	}
	if user.Role != models.RoleInstructor {
		return ErrNotAnInstructor
	}
	if !user.IsVerified {
		return ErrInstructorNotVerified
	}
	if user.AccountStatus != models.StatusApproved {
		return ErrInstructorNotApproved
	}
	return nil
}
