package services

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"campuslibrary/internal/clock"
	"campuslibrary/internal/models"
	"campuslibrary/internal/repositories"
)

// Kiosk statuses reported by CheckStudent.
const (
	StatusReadyForCheckin  = "ready_for_checkin"
	StatusReadyForCheckout = "ready_for_checkout"
)

// CheckStudentResult is the kiosk response for an id-number scan.
type CheckStudentResult struct {
	Student *models.User `json:"student"`
	Status  string       `json:"status"`
	Message string       `json:"message"`
	// Attendance is the record closed by this scan, when the scan performed a check-out.
	Attendance *models.Attendance `json:"attendance,omitempty"`
	// LastAttendance is the most recent closed record, when the student is ready
	// for a fresh check-in.
	LastAttendance *models.Attendance `json:"last_attendance,omitempty"`
}

// AttendanceService runs the per-day check-in/out cycle: a user alternates
// between an open record (checked in) and a closed one, any number of times a
// day, decided purely from the latest record of the current date.
type AttendanceService interface {
	// CheckInOut either opens a new record (returned bool true) or closes the
	// latest open one (false).
	CheckInOut(userID uint, notes string) (*models.Attendance, bool, error)

	// CheckStudent resolves a student by id number and reports their cycle
	// state. A scan that finds an open record CLOSES it as a side effect.
	CheckStudent(idNumber string) (*CheckStudentResult, error)

	CreateAttendance(userID uint, date, checkIn time.Time, checkOut *time.Time, notes string) (*models.Attendance, error)
	GetAttendance(id uint) (*models.Attendance, error)
	UpdateAttendance(id uint, date, checkIn time.Time, checkOut *time.Time, notes string) (*models.Attendance, error)
	DeleteAttendance(id uint) error
	ListAttendance(search string, from, to *time.Time, page, perPage int) (models.Page, error)
}

type attendanceService struct {
	db       TxRunner
	clock    clock.Clock
	userRepo repositories.UserRepository
	attRepo  repositories.AttendanceRepository
}

func NewAttendanceService(
	db TxRunner,
	clk clock.Clock,
	userRepo repositories.UserRepository,
	attRepo repositories.AttendanceRepository,
) AttendanceService {
	return &attendanceService{
		db:       db,
		clock:    clk,
		userRepo: userRepo,
		attRepo:  attRepo,
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CheckInOut locks the user row for the duration of the transaction so two
// simultaneous scans for the same user cannot both take the check-in branch.
func (s *attendanceService) CheckInOut(userID uint, notes string) (*models.Attendance, bool, error) {
	now := s.clock.Now()
	today := dateOnly(now)

	var record *models.Attendance
	var checkedIn bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.GetByIDForUpdate(tx, userID); err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}

		latest, err := s.attRepo.LatestForUserOn(tx, userID, today)
		if err != nil && !isNotFound(err) {
			return err
		}

		if latest == nil || latest.CheckOut != nil {
			record = &models.Attendance{
				UserID:  userID,
				Date:    today,
				CheckIn: now,
				Notes:   notes,
			}
			checkedIn = true
			return s.attRepo.Create(tx, record)
		}

		latest.CheckOut = &now
		record = latest
		checkedIn = false
		return s.attRepo.Update(tx, latest)
	})
	if err != nil {
		return nil, false, err
	}

	action := "check-out"
	if checkedIn {
		action = "check-in"
	}
	logrus.WithFields(logrus.Fields{
		"user_id":       userID,
		"attendance_id": record.ID,
		"action":        action,
	}).Info("CheckInOut: transition applied")
	return record, checkedIn, nil
}

func (s *attendanceService) CheckStudent(idNumber string) (*CheckStudentResult, error) {
	now := s.clock.Now()
	today := dateOnly(now)

	var result *CheckStudentResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		student, err := s.userRepo.GetStudentByIDNumber(tx, idNumber)
		if err != nil {
			if isNotFound(err) {
				return ErrStudentNotFound
			}
			return err
		}
		// Same per-user serialization as CheckInOut.
		if _, err := s.userRepo.GetByIDForUpdate(tx, student.ID); err != nil {
			return err
		}

		latest, err := s.attRepo.LatestForUserOn(tx, student.ID, today)
		if err != nil && !isNotFound(err) {
			return err
		}

		switch {
		case latest == nil:
			result = &CheckStudentResult{
				Student: student,
				Status:  StatusReadyForCheckin,
				Message: "No check-in for today",
			}
		case latest.CheckOut == nil:
			// The scan itself performs the check-out.
			latest.CheckOut = &now
			if err := s.attRepo.Update(tx, latest); err != nil {
				return err
			}
			result = &CheckStudentResult{
				Student:    student,
				Status:     StatusReadyForCheckout,
				Message:    "Check-out successful",
				Attendance: latest,
			}
		default:
			result = &CheckStudentResult{
				Student:        student,
				Status:         StatusReadyForCheckin,
				Message:        "Ready for new check-in",
				LastAttendance: latest,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"id_number": idNumber,
		"status":    result.Status,
	}).Info("CheckStudent: scan handled")
	return result, nil
}

func (s *attendanceService) CreateAttendance(userID uint, date, checkIn time.Time, checkOut *time.Time, notes string) (*models.Attendance, error) {
	if _, err := s.userRepo.GetByID(nil, userID); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	record := &models.Attendance{
		UserID:   userID,
		Date:     dateOnly(date),
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Notes:    notes,
	}
	if err := s.attRepo.Create(nil, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *attendanceService) GetAttendance(id uint) (*models.Attendance, error) {
	record, err := s.attRepo.GetByID(nil, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *attendanceService) UpdateAttendance(id uint, date, checkIn time.Time, checkOut *time.Time, notes string) (*models.Attendance, error) {
	record, err := s.attRepo.GetByID(nil, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}
	record.Date = dateOnly(date)
	record.CheckIn = checkIn
	record.CheckOut = checkOut
	record.Notes = notes
	if err := s.attRepo.Update(nil, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *attendanceService) DeleteAttendance(id uint) error {
	if _, err := s.attRepo.GetByID(nil, id); err != nil {
		if isNotFound(err) {
			return ErrAttendanceNotFound
		}
		return err
	}
	return s.attRepo.Delete(nil, id)
}

func (s *attendanceService) ListAttendance(search string, from, to *time.Time, page, perPage int) (models.Page, error) {
	page, perPage, offset := normalizePaging(page, perPage)
	records, total, err := s.attRepo.List(nil, search, from, to, perPage, offset)
	if err != nil {
		return models.Page{}, err
	}
	return models.NewPage(records, page, perPage, total), nil
}
