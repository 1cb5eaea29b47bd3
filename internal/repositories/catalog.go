package repositories

import (
	"gorm.io/gorm"

	"campuslibrary/internal/models"
)

type AuthorRepository interface {
	Create(db *gorm.DB, author *models.Author) error
	GetByID(db *gorm.DB, id uint) (*models.Author, error)
	Update(db *gorm.DB, author *models.Author) error
	Delete(db *gorm.DB, id uint) error
	List(db *gorm.DB, search string, limit, offset int) ([]models.Author, int64, error)
	Count(db *gorm.DB) (int64, error)
}

type CategoryRepository interface {
	Create(db *gorm.DB, category *models.Category) error
	GetByID(db *gorm.DB, id uint) (*models.Category, error)
	Update(db *gorm.DB, category *models.Category) error
	Delete(db *gorm.DB, id uint) error
	List(db *gorm.DB, search string, limit, offset int) ([]models.Category, int64, error)
	Count(db *gorm.DB) (int64, error)
}

type SubjectRepository interface {
	Create(db *gorm.DB, subject *models.Subject) error
	GetByID(db *gorm.DB, id uint) (*models.Subject, error)
	Update(db *gorm.DB, subject *models.Subject) error
	Delete(db *gorm.DB, id uint) error
	List(db *gorm.DB, search string, limit, offset int) ([]models.Subject, int64, error)
}

type authorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(db *gorm.DB, author *models.Author) error {
	if db == nil {
		db = r.db
	}
	return db.Create(author).Error
}

func (r *authorRepository) GetByID(db *gorm.DB, id uint) (*models.Author, error) {
	if db == nil {
		db = r.db
	}
	var author models.Author
	if err := db.First(&author, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *authorRepository) Update(db *gorm.DB, author *models.Author) error {
	if db == nil {
		db = r.db
	}
	return db.Save(author).Error
}

func (r *authorRepository) Delete(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.Author{}, "id = ?", id).Error
}

func (r *authorRepository) List(db *gorm.DB, search string, limit, offset int) ([]models.Author, int64, error) {
	if db == nil {
		db = r.db
	}
	query := db.Model(&models.Author{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var authors []models.Author
	if err := query.Limit(limit).Offset(offset).Order("id").Find(&authors).Error; err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}

func (r *authorRepository) Count(db *gorm.DB) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.Author{}).Count(&count).Error
	return count, err
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(db *gorm.DB, category *models.Category) error {
	if db == nil {
		db = r.db
	}
	return db.Create(category).Error
}

func (r *categoryRepository) GetByID(db *gorm.DB, id uint) (*models.Category, error) {
	if db == nil {
		db = r.db
	}
	var category models.Category
	if err := db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Update(db *gorm.DB, category *models.Category) error {
	if db == nil {
		db = r.db
	}
	return db.Save(category).Error
}

func (r *categoryRepository) Delete(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) List(db *gorm.DB, search string, limit, offset int) ([]models.Category, int64, error) {
	if db == nil {
		db = r.db
	}
	query := db.Model(&models.Category{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var categories []models.Category
	if err := query.Limit(limit).Offset(offset).Order("id").Find(&categories).Error; err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *categoryRepository) Count(db *gorm.DB) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.Category{}).Count(&count).Error
	return count, err
}

type subjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(db *gorm.DB, subject *models.Subject) error {
	if db == nil {
		db = r.db
	}
	return db.Create(subject).Error
}

func (r *subjectRepository) GetByID(db *gorm.DB, id uint) (*models.Subject, error) {
	if db == nil {
		db = r.db
	}
	var subject models.Subject
	if err := db.First(&subject, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) Update(db *gorm.DB, subject *models.Subject) error {
	if db == nil {
		db = r.db
	}
	return db.Save(subject).Error
}

func (r *subjectRepository) Delete(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.Subject{}, "id = ?", id).Error
}

func (r *subjectRepository) List(db *gorm.DB, search string, limit, offset int) ([]models.Subject, int64, error) {
	if db == nil {
		db = r.db
	}
	query := db.Model(&models.Subject{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR department ILIKE ?", like, like)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var subjects []models.Subject
	if err := query.Limit(limit).Offset(offset).Order("id").Find(&subjects).Error; err != nil {
		return nil, 0, err
	}
	return subjects, total, nil
}
