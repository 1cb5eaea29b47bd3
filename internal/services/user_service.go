package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"campuslibrary/internal/auth"
	"campuslibrary/internal/models"
	"campuslibrary/internal/repositories"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email          string
	Password       string
	FirstName      string
	MiddleName     string
	LastName       string
	IDNumber       string
	Course         string
	YearLevel      string
	Gender         string
	ContactNumber  string
	ProfilePicture string
	Birthday       *time.Time
	Role           string
}

// UpdateUserInput carries the updatable profile fields; nil pointers leave the
// field untouched.
type UpdateUserInput struct {
	FirstName      *string
	MiddleName     *string
	LastName       *string
	ContactNumber  *string
	Password       *string
	ProfilePicture *string
}

type UserService interface {
	// Register creates the account and issues a session token.
	Register(ctx context.Context, input RegisterInput) (*models.User, string, error)
	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	// Logout revokes the presented token.
	Logout(ctx context.Context, token string) error

	GetUser(id uint) (*models.User, error)
	UpdateUser(id uint, input UpdateUserInput) (*models.User, error)
	DeleteUser(id uint) error
	ListStudents(search string, page, perPage int) (models.Page, error)
}

type userService struct {
	userRepo repositories.UserRepository
	sessions *auth.Store
}

func NewUserService(userRepo repositories.UserRepository, sessions *auth.Store) UserService {
	return &userService{userRepo: userRepo, sessions: sessions}
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (*models.User, string, error) {
	if _, err := s.userRepo.GetByEmail(nil, input.Email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !isNotFound(err) {
		return nil, "", err
	}

	role := models.UserRole(input.Role)
	if input.Role == "" {
		role = models.UserRoleStudent
	}
	if !role.Valid() {
		return nil, "", ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Role:           role,
		FirstName:      input.FirstName,
		MiddleName:     input.MiddleName,
		LastName:       input.LastName,
		Email:          input.Email,
		Password:       string(hash),
		IDNumber:       input.IDNumber,
		Course:         input.Course,
		YearLevel:      input.YearLevel,
		Gender:         input.Gender,
		ContactNumber:  input.ContactNumber,
		ProfilePicture: input.ProfilePicture,
		Birthday:       input.Birthday,
	}
	if err := s.userRepo.Create(nil, user); err != nil {
		logrus.WithError(err).Error("Register: insert failed")
		return nil, "", err
	}

	token, err := s.sessions.Issue(ctx, user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("Register: account created")
	return user, token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(nil, email)
	if err != nil {
		if isNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logrus.WithField("email", email).Warn("Login: bad credentials")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(ctx, user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	logrus.WithField("user_id", user.ID).Info("Login: session issued")
	return user, token, nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

func (s *userService) GetUser(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(nil, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(id uint, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.MiddleName != nil {
		user.MiddleName = *input.MiddleName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.ContactNumber != nil {
		user.ContactNumber = *input.ContactNumber
	}
	if input.ProfilePicture != nil {
		user.ProfilePicture = *input.ProfilePicture
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := s.userRepo.Update(nil, user); err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("UpdateUser: save failed")
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(id uint) error {
	if _, err := s.GetUser(id); err != nil {
		return err
	}
	return s.userRepo.Delete(nil, id)
}

func (s *userService) ListStudents(search string, page, perPage int) (models.Page, error) {
	page, perPage, offset := normalizePaging(page, perPage)
	if search == "all" {
		search = ""
	}
	users, total, err := s.userRepo.ListStudents(nil, search, perPage, offset)
	if err != nil {
		return models.Page{}, err
	}
	return models.NewPage(users, page, perPage, total), nil
}
