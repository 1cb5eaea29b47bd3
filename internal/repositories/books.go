package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campuslibrary/internal/models"
)

type BookRepository interface {
	Create(db *gorm.DB, book *models.Book) error
	GetByID(db *gorm.DB, id uint) (*models.Book, error)
	// GetByIDForUpdate locks the book row so the capacity check and the loan
	// insert that follows it cannot interleave with a concurrent loan creation.
	GetByIDForUpdate(db *gorm.DB, id uint) (*models.Book, error)
	Update(db *gorm.DB, book *models.Book) error
	Delete(db *gorm.DB, id uint) error
	List(db *gorm.DB, search string, limit, offset int) ([]models.Book, int64, error)
	// ListForSubjects returns books attached to at least one subject matching the
	// given department and year level, with author/category/subjects preloaded.
	ListForSubjects(db *gorm.DB, department string, yearLevel int) ([]models.Book, error)
	Count(db *gorm.DB) (int64, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(db *gorm.DB, book *models.Book) error {
	if db == nil {
		db = r.db
	}
	return db.Create(book).Error
}

func (r *bookRepository) GetByID(db *gorm.DB, id uint) (*models.Book, error) {
	if db == nil {
		db = r.db
	}
	var book models.Book
	err := db.Preload("Author").Preload("Category").First(&book, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) GetByIDForUpdate(db *gorm.DB, id uint) (*models.Book, error) {
	if db == nil {
		db = r.db
	}
	var book models.Book
	err := db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&book, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) Update(db *gorm.DB, book *models.Book) error {
	if db == nil {
		db = r.db
	}
	return db.Save(book).Error
}

func (r *bookRepository) Delete(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.Book{}, "id = ?", id).Error
}

func (r *bookRepository) List(db *gorm.DB, search string, limit, offset int) ([]models.Book, int64, error) {
	if db == nil {
		db = r.db
	}
	query := db.Model(&models.Book{}).
		Joins("LEFT JOIN authors ON authors.id = books.author_id").
		Joins("LEFT JOIN categories ON categories.id = books.category_id")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"books.title ILIKE ? OR books.isbn ILIKE ? OR authors.name ILIKE ? OR categories.name ILIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var books []models.Book
	err := query.
		Preload("Author").Preload("Category").
		Limit(limit).Offset(offset).Order("books.id").
		Find(&books).Error
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *bookRepository) ListForSubjects(db *gorm.DB, department string, yearLevel int) ([]models.Book, error) {
	if db == nil {
		db = r.db
	}
	var books []models.Book
	err := db.Model(&models.Book{}).
		Joins("JOIN book_subject ON book_subject.book_id = books.id").
		Joins("JOIN subjects ON subjects.id = book_subject.subject_id").
		Where("subjects.department = ? AND subjects.year_level = ?", department, yearLevel).
		Group("books.id").
		Preload("Author").Preload("Category").Preload("Subjects").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) Count(db *gorm.DB) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.Book{}).Count(&count).Error
	return count, err
}
