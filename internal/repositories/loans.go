package repositories

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campuslibrary/internal/models"
)

// Status filters accepted by BookLoanRepository.List.
const (
	LoanStatusActive  = "active"
	LoanStatusOverdue = "overdue"
)

type BookLoanRepository interface {
	Create(db *gorm.DB, loan *models.BookLoan) error
	GetByID(db *gorm.DB, id uint) (*models.BookLoan, error)
	GetByIDForUpdate(db *gorm.DB, id uint) (*models.BookLoan, error)
	Update(db *gorm.DB, loan *models.BookLoan) error
	Delete(db *gorm.DB, id uint) error
	List(db *gorm.DB, search, status string, now time.Time, limit, offset int) ([]models.BookLoan, int64, error)
	ListOpenByBook(db *gorm.DB, bookID uint) ([]models.BookLoan, error)
	// CountOpenByBook counts unreturned loans for a book. excludeLoanID, when
	// non-zero, leaves that loan out of the count so a capacity re-check during
	// an update does not count the loan being updated against itself.
	CountOpenByBook(db *gorm.DB, bookID, excludeLoanID uint) (int64, error)
	CountByUser(db *gorm.DB, userID uint) (int64, error)
	CountOpenByUser(db *gorm.DB, userID uint) (int64, error)
	Count(db *gorm.DB) (int64, error)
}

type bookLoanRepository struct {
	db *gorm.DB
}

func NewBookLoanRepository(db *gorm.DB) BookLoanRepository {
	return &bookLoanRepository{db: db}
}

func (r *bookLoanRepository) Create(db *gorm.DB, loan *models.BookLoan) error {
	if db == nil {
		db = r.db
	}
	return db.Create(loan).Error
}

func (r *bookLoanRepository) GetByID(db *gorm.DB, id uint) (*models.BookLoan, error) {
	if db == nil {
		db = r.db
	}
	var loan models.BookLoan
	err := db.Preload("User").Preload("Book").First(&loan, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *bookLoanRepository) GetByIDForUpdate(db *gorm.DB, id uint) (*models.BookLoan, error) {
	if db == nil {
		db = r.db
	}
	var loan models.BookLoan
	err := db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&loan, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *bookLoanRepository) Update(db *gorm.DB, loan *models.BookLoan) error {
	if db == nil {
		db = r.db
	}
	return db.Save(loan).Error
}

func (r *bookLoanRepository) Delete(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.BookLoan{}, "id = ?", id).Error
}

func (r *bookLoanRepository) List(db *gorm.DB, search, status string, now time.Time, limit, offset int) ([]models.BookLoan, int64, error) {
	if db == nil {
		db = r.db
	}
	query := db.Model(&models.BookLoan{}).
		Joins("JOIN users ON users.id = book_loans.user_id").
		Joins("JOIN books ON books.id = book_loans.book_id")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"users.first_name ILIKE ? OR users.last_name ILIKE ? OR users.id_number ILIKE ? OR books.title ILIKE ?",
			like, like, like, like,
		)
	}
	switch status {
	case LoanStatusOverdue:
		query = query.Where("book_loans.actual_return_date IS NULL AND book_loans.due_date < ?", now)
	case LoanStatusActive:
		query = query.Where("book_loans.actual_return_date IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var loans []models.BookLoan
	err := query.
		Preload("User").Preload("Book").
		Limit(limit).Offset(offset).Order("book_loans.id DESC").
		Find(&loans).Error
	if err != nil {
		return nil, 0, err
	}
	return loans, total, nil
}

func (r *bookLoanRepository) ListOpenByBook(db *gorm.DB, bookID uint) ([]models.BookLoan, error) {
	if db == nil {
		db = r.db
	}
	var loans []models.BookLoan
	err := db.
		Where("book_id = ? AND actual_return_date IS NULL", bookID).
		Preload("User").
		Order("due_date").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *bookLoanRepository) CountOpenByBook(db *gorm.DB, bookID, excludeLoanID uint) (int64, error) {
	if db == nil {
		db = r.db
	}
	query := db.Model(&models.BookLoan{}).
		Where("book_id = ? AND actual_return_date IS NULL", bookID)
	if excludeLoanID != 0 {
		query = query.Where("id <> ?", excludeLoanID)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *bookLoanRepository) CountByUser(db *gorm.DB, userID uint) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.BookLoan{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *bookLoanRepository) CountOpenByUser(db *gorm.DB, userID uint) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.BookLoan{}).
		Where("user_id = ? AND actual_return_date IS NULL", userID).
		Count(&count).Error
	return count, err
}

func (r *bookLoanRepository) Count(db *gorm.DB) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.BookLoan{}).Count(&count).Error
	return count, err
}
