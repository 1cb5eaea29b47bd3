package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campuslibrary/internal/models"
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	GetByID(db *gorm.DB, id uint) (*models.User, error)
	// GetByIDForUpdate locks the user row (SELECT ... FOR UPDATE) so per-user
	// state transitions (attendance check-in/out) serialize.
	GetByIDForUpdate(db *gorm.DB, id uint) (*models.User, error)
	GetByEmail(db *gorm.DB, email string) (*models.User, error)
	GetStudentByIDNumber(db *gorm.DB, idNumber string) (*models.User, error)
	Update(db *gorm.DB, user *models.User) error
	Delete(db *gorm.DB, id uint) error
	ListStudents(db *gorm.DB, search string, limit, offset int) ([]models.User, int64, error)
	CountByRole(db *gorm.DB, role models.UserRole) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if db == nil {
		db = r.db
	}
	return db.Create(user).Error
}

func (r *userRepository) GetByID(db *gorm.DB, id uint) (*models.User, error) {
	if db == nil {
		db = r.db
	}
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByIDForUpdate(db *gorm.DB, id uint) (*models.User, error) {
	if db == nil {
		db = r.db
	}
	var user models.User
	err := db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(db *gorm.DB, email string) (*models.User, error) {
	if db == nil {
		db = r.db
	}
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetStudentByIDNumber(db *gorm.DB, idNumber string) (*models.User, error) {
	if db == nil {
		db = r.db
	}
	var user models.User
	err := db.
		Where("id_number = ? AND role = ?", idNumber, models.UserRoleStudent).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(db *gorm.DB, user *models.User) error {
	if db == nil {
		db = r.db
	}
	return db.Save(user).Error
}

func (r *userRepository) Delete(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.User{}, "id = ?", id).Error
}

func (r *userRepository) ListStudents(db *gorm.DB, search string, limit, offset int) ([]models.User, int64, error) {
	if db == nil {
		db = r.db
	}
	query := db.Model(&models.User{}).Where("role = ?", models.UserRoleStudent)
	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR id_number ILIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	if err := query.Limit(limit).Offset(offset).Order("id").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) CountByRole(db *gorm.DB, role models.UserRole) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
