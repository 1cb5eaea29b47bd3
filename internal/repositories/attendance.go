package repositories

import (
	"time"

	"gorm.io/gorm"

	"campuslibrary/internal/models"
)

type AttendanceRepository interface {
	Create(db *gorm.DB, record *models.Attendance) error
	GetByID(db *gorm.DB, id uint) (*models.Attendance, error)
	Update(db *gorm.DB, record *models.Attendance) error
	Delete(db *gorm.DB, id uint) error
	List(db *gorm.DB, search string, from, to *time.Time, limit, offset int) ([]models.Attendance, int64, error)
	// LatestForUserOn returns the most recent record (by check_in) for the user
	// on the given calendar date, or gorm.ErrRecordNotFound.
	LatestForUserOn(db *gorm.DB, userID uint, date time.Time) (*models.Attendance, error)
	Count(db *gorm.DB) (int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(db *gorm.DB, record *models.Attendance) error {
	if db == nil {
		db = r.db
	}
	return db.Create(record).Error
}

func (r *attendanceRepository) GetByID(db *gorm.DB, id uint) (*models.Attendance, error) {
	if db == nil {
		db = r.db
	}
	var record models.Attendance
	err := db.Preload("User").First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepository) Update(db *gorm.DB, record *models.Attendance) error {
	if db == nil {
		db = r.db
	}
	return db.Save(record).Error
}

func (r *attendanceRepository) Delete(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.Attendance{}, "id = ?", id).Error
}

func (r *attendanceRepository) List(db *gorm.DB, search string, from, to *time.Time, limit, offset int) ([]models.Attendance, int64, error) {
	if db == nil {
		db = r.db
	}
	query := db.Model(&models.Attendance{}).
		Joins("JOIN users ON users.id = attendance.user_id")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("users.first_name ILIKE ? OR users.last_name ILIKE ?", like, like)
	}
	if from != nil && to != nil {
		query = query.Where("attendance.date BETWEEN ? AND ?", from, to)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []models.Attendance
	err := query.
		Preload("User").
		Limit(limit).Offset(offset).Order("attendance.id DESC").
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *attendanceRepository) LatestForUserOn(db *gorm.DB, userID uint, date time.Time) (*models.Attendance, error) {
	if db == nil {
		db = r.db
	}
	var record models.Attendance
	err := db.
		Where("user_id = ? AND date = ?", userID, date.Format("2006-01-02")).
		Order("check_in DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepository) Count(db *gorm.DB) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.Attendance{}).Count(&count).Error
	return count, err
}
