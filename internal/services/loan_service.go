package services

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"campuslibrary/internal/clock"
	"campuslibrary/internal/models"
	"campuslibrary/internal/repositories"
)

// LoanService owns the book-loan workflow: the capacity rule at creation and
// update time, the return transition, and the derived availability count.
//
// A loan moves NoLoan → Open → Returned. A book may carry many open loans at
// once, never more than its total copies.
type LoanService interface {
	// AvailableCopies derives total_copies − open-loan count for a book.
	AvailableCopies(bookID uint) (int, error)

	CreateLoan(userID, bookID uint, dueDate time.Time) (*models.BookLoan, error)
	UpdateLoan(loanID, userID, bookID uint, dueDate time.Time, returnDate *time.Time) (*models.BookLoan, error)
	GetLoan(loanID uint) (*models.BookLoan, error)
	ReturnBook(loanID uint) (*models.BookLoan, error)
	CheckEligibleForReturn(loanID uint) (bool, error)
	DeleteLoan(loanID uint) error
	ListLoans(search, status string, page, perPage int) (models.Page, error)
	ActiveLoansForBook(bookID uint) ([]models.BookLoan, error)
}

type loanService struct {
	db       TxRunner
	clock    clock.Clock
	userRepo repositories.UserRepository
	bookRepo repositories.BookRepository
	loanRepo repositories.BookLoanRepository
}

func NewLoanService(
	db TxRunner,
	clk clock.Clock,
	userRepo repositories.UserRepository,
	bookRepo repositories.BookRepository,
	loanRepo repositories.BookLoanRepository,
) LoanService {
	return &loanService{
		db:       db,
		clock:    clk,
		userRepo: userRepo,
		bookRepo: bookRepo,
		loanRepo: loanRepo,
	}
}

func (s *loanService) AvailableCopies(bookID uint) (int, error) {
	book, err := s.bookRepo.GetByID(nil, bookID)
	if err != nil {
		if isNotFound(err) {
			return 0, ErrBookNotFound
		}
		return 0, err
	}
	open, err := s.loanRepo.CountOpenByBook(nil, bookID, 0)
	if err != nil {
		return 0, err
	}
	available := book.TotalCopies - int(open)
	if available < 0 {
		available = 0
	}
	return available, nil
}

// CreateLoan implements the transactional loan-creation flow.
//
// The book row is locked (SELECT ... FOR UPDATE) before the open-loan count is
// taken, so two concurrent creations for the same book cannot both pass the
// capacity check and overshoot total_copies.
func (s *loanService) CreateLoan(userID, bookID uint, dueDate time.Time) (*models.BookLoan, error) {
	now := s.clock.Now()
	if !dueDate.After(now) {
		return nil, ErrInvalidDueDate
	}

	var loan *models.BookLoan
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.GetByID(tx, userID); err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}

		book, err := s.bookRepo.GetByIDForUpdate(tx, bookID)
		if err != nil {
			if isNotFound(err) {
				return ErrBookNotFound
			}
			return err
		}

		open, err := s.loanRepo.CountOpenByBook(tx, bookID, 0)
		if err != nil {
			return err
		}
		if int(open) >= book.TotalCopies {
			logrus.WithFields(logrus.Fields{
				"book_id":      bookID,
				"user_id":      userID,
				"open_loans":   open,
				"total_copies": book.TotalCopies,
			}).Warn("CreateLoan: capacity exceeded")
			return ErrNoAvailableCopy
		}

		loan = &models.BookLoan{
			UserID:   userID,
			BookID:   bookID,
			LoanDate: now,
			DueDate:  dueDate,
		}
		if err := s.loanRepo.Create(tx, loan); err != nil {
			logrus.WithError(err).WithField("book_id", bookID).Error("CreateLoan: insert failed")
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"loan_id": loan.ID,
		"user_id": userID,
		"book_id": bookID,
		"due":     dueDate.Format("2006-01-02"),
	}).Info("CreateLoan: loan created")
	return loan, nil
}

// UpdateLoan re-validates the capacity rule against the current open-loan
// count, excluding the loan being updated so an update that keeps the same
// book is not rejected by its own open loan.
func (s *loanService) UpdateLoan(loanID, userID, bookID uint, dueDate time.Time, returnDate *time.Time) (*models.BookLoan, error) {
	var loan *models.BookLoan
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		loan, err = s.loanRepo.GetByIDForUpdate(tx, loanID)
		if err != nil {
			if isNotFound(err) {
				return ErrLoanNotFound
			}
			return err
		}

		if _, err := s.userRepo.GetByID(tx, userID); err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}

		book, err := s.bookRepo.GetByIDForUpdate(tx, bookID)
		if err != nil {
			if isNotFound(err) {
				return ErrBookNotFound
			}
			return err
		}

		if !dueDate.After(loan.LoanDate) {
			return ErrInvalidDueDate
		}

		// Only an open loan occupies a copy after this update.
		if returnDate == nil {
			open, err := s.loanRepo.CountOpenByBook(tx, bookID, loanID)
			if err != nil {
				return err
			}
			if int(open) >= book.TotalCopies {
				logrus.WithFields(logrus.Fields{
					"loan_id":      loanID,
					"book_id":      bookID,
					"open_loans":   open,
					"total_copies": book.TotalCopies,
				}).Warn("UpdateLoan: capacity exceeded")
				return ErrNoAvailableCopy
			}
		}

		loan.UserID = userID
		loan.BookID = bookID
		loan.DueDate = dueDate
		loan.ActualReturnDate = returnDate
		if err := s.loanRepo.Update(tx, loan); err != nil {
			logrus.WithError(err).WithField("loan_id", loanID).Error("UpdateLoan: save failed")
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("loan_id", loan.ID).Info("UpdateLoan: loan updated")
	return loan, nil
}

func (s *loanService) GetLoan(loanID uint) (*models.BookLoan, error) {
	loan, err := s.loanRepo.GetByID(nil, loanID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// ReturnBook transitions Open → Returned. The loan row is locked so a
// concurrent double return cannot both pass the open check; the second caller
// gets ErrLoanAlreadyReturned.
func (s *loanService) ReturnBook(loanID uint) (*models.BookLoan, error) {
	var loan *models.BookLoan
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		loan, err = s.loanRepo.GetByIDForUpdate(tx, loanID)
		if err != nil {
			if isNotFound(err) {
				return ErrLoanNotFound
			}
			return err
		}
		if !loan.Open() {
			logrus.WithFields(logrus.Fields{
				"loan_id":     loanID,
				"returned_at": loan.ActualReturnDate,
			}).Warn("ReturnBook: loan already returned")
			return ErrLoanAlreadyReturned
		}

		now := s.clock.Now()
		loan.ActualReturnDate = &now
		if err := s.loanRepo.Update(tx, loan); err != nil {
			logrus.WithError(err).WithField("loan_id", loanID).Error("ReturnBook: save failed")
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"loan_id": loan.ID,
		"book_id": loan.BookID,
	}).Info("ReturnBook: loan closed")
	return loan, nil
}

func (s *loanService) CheckEligibleForReturn(loanID uint) (bool, error) {
	loan, err := s.loanRepo.GetByID(nil, loanID)
	if err != nil {
		if isNotFound(err) {
			return false, ErrLoanNotFound
		}
		return false, err
	}
	return loan.Open(), nil
}

// DeleteLoan is the administrative hard delete; it does not require the loan
// to be returned first.
func (s *loanService) DeleteLoan(loanID uint) error {
	if _, err := s.loanRepo.GetByID(nil, loanID); err != nil {
		if isNotFound(err) {
			return ErrLoanNotFound
		}
		return err
	}
	if err := s.loanRepo.Delete(nil, loanID); err != nil {
		return err
	}
	logrus.WithField("loan_id", loanID).Info("DeleteLoan: loan removed")
	return nil
}

func (s *loanService) ListLoans(search, status string, page, perPage int) (models.Page, error) {
	page, perPage, offset := normalizePaging(page, perPage)
	loans, total, err := s.loanRepo.List(nil, search, status, s.clock.Now(), perPage, offset)
	if err != nil {
		return models.Page{}, err
	}
	return models.NewPage(loans, page, perPage, total), nil
}

func (s *loanService) ActiveLoansForBook(bookID uint) ([]models.BookLoan, error) {
	if _, err := s.bookRepo.GetByID(nil, bookID); err != nil {
		if isNotFound(err) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	loans, err := s.loanRepo.ListOpenByBook(nil, bookID)
	if err != nil {
		return nil, err
	}
	if loans == nil {
		loans = []models.BookLoan{}
	}
	return loans, nil
}
