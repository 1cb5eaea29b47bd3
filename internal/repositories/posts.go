package repositories

import (
	"gorm.io/gorm"

	"campuslibrary/internal/models"
)

type FeaturePostRepository interface {
	Create(db *gorm.DB, post *models.FeaturePost) error
	GetByID(db *gorm.DB, id uint) (*models.FeaturePost, error)
	Update(db *gorm.DB, post *models.FeaturePost) error
	Delete(db *gorm.DB, id uint) error
	ListLatestFirst(db *gorm.DB) ([]models.FeaturePost, error)
	Latest(db *gorm.DB) (*models.FeaturePost, error)
	Count(db *gorm.DB) (int64, error)
}

type featurePostRepository struct {
	db *gorm.DB
}

func NewFeaturePostRepository(db *gorm.DB) FeaturePostRepository {
	return &featurePostRepository{db: db}
}

func (r *featurePostRepository) Create(db *gorm.DB, post *models.FeaturePost) error {
	if db == nil {
		db = r.db
	}
	return db.Create(post).Error
}

func (r *featurePostRepository) GetByID(db *gorm.DB, id uint) (*models.FeaturePost, error) {
	if db == nil {
		db = r.db
	}
	var post models.FeaturePost
	if err := db.Preload("Author").First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *featurePostRepository) Update(db *gorm.DB, post *models.FeaturePost) error {
	if db == nil {
		db = r.db
	}
	return db.Save(post).Error
}

func (r *featurePostRepository) Delete(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.FeaturePost{}, "id = ?", id).Error
}

func (r *featurePostRepository) ListLatestFirst(db *gorm.DB) ([]models.FeaturePost, error) {
	if db == nil {
		db = r.db
	}
	var posts []models.FeaturePost
	err := db.Preload("Author").Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *featurePostRepository) Latest(db *gorm.DB) (*models.FeaturePost, error) {
	if db == nil {
		db = r.db
	}
	var post models.FeaturePost
	err := db.Preload("Author").Order("created_at DESC").First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *featurePostRepository) Count(db *gorm.DB) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.FeaturePost{}).Count(&count).Error
	return count, err
}
