package services

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors surfaced by the service layer. Handlers map them to HTTP
// statuses; nothing below the handler layer knows about status codes.
var (
	// ErrNoAvailableCopy is the capacity-rule rejection: every copy of the book
	// is out on an open loan.
	ErrNoAvailableCopy = errors.New("no available copies for this book")

	// ErrLoanAlreadyReturned is returned when a return is attempted on a loan
	// whose return date is already set.
	ErrLoanAlreadyReturned = errors.New("book loan already returned")

	// ErrInvalidDueDate is returned when a due date does not fall after the loan date.
	ErrInvalidDueDate = errors.New("due date must be after loan date")

	ErrUserNotFound       = errors.New("user not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrBookNotFound       = errors.New("book not found")
	ErrLoanNotFound       = errors.New("book loan not found")
	ErrAuthorNotFound     = errors.New("author not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrPostNotFound       = errors.New("feature post not found")

	// ErrEmailTaken is returned when registering with an email that already has an account.
	ErrEmailTaken = errors.New("email address already taken")

	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("the provided credentials are incorrect")

	// ErrInvalidRole is returned when a request names a role outside the enumeration.
	ErrInvalidRole = errors.New("invalid role")

	// ErrNotStudent is returned when a student-only operation targets a non-student user.
	ErrNotStudent = errors.New("user is not a student")

	// ErrPostForbidden is returned when a feature post is modified by someone
	// other than its author.
	ErrPostForbidden = errors.New("only the author may modify this post")
)

// TxRunner abstracts gorm's transaction entry point so workflow logic can be
// exercised in tests without a database. *gorm.DB satisfies it.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Listing defaults shared by every paginated endpoint.
const (
	defaultPerPage = 15
	defaultPage    = 1
)

func normalizePaging(page, perPage int) (int, int, int) {
	if page < 1 {
		page = defaultPage
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	offset := (page - 1) * perPage
	return page, perPage, offset
}
