package services

import (
	"strings"

	"github.com/sirupsen/logrus"

	"campuslibrary/internal/models"
	"campuslibrary/internal/repositories"
)

// BookInput carries the writable fields of a book.
type BookInput struct {
	Title           string
	AuthorID        uint
	CategoryID      uint
	ISBN            *string
	Description     string
	PublicationYear *int
	Publisher       string
	Language        string
	BookPrice       *float64
	TotalCopies     int
	Image           string
	SubjectIDs      []uint
}

type BookService interface {
	CreateBook(input BookInput) (*models.Book, error)
	GetBook(id uint) (*models.BookWithAvailability, error)
	UpdateBook(id uint, input BookInput) (*models.Book, error)
	DeleteBook(id uint) error
	// ListBooks returns a page of books decorated with their derived
	// available-copy counts.
	ListBooks(search string, page, perPage int) (models.Page, error)
	// RecommendedForStudent returns books whose subjects match the student's
	// course and year level and that still have at least one available copy.
	RecommendedForStudent(userID uint) ([]models.BookWithAvailability, error)
}

type bookService struct {
	bookRepo     repositories.BookRepository
	authorRepo   repositories.AuthorRepository
	categoryRepo repositories.CategoryRepository
	subjectRepo  repositories.SubjectRepository
	loanRepo     repositories.BookLoanRepository
	userRepo     repositories.UserRepository
}

func NewBookService(
	bookRepo repositories.BookRepository,
	authorRepo repositories.AuthorRepository,
	categoryRepo repositories.CategoryRepository,
	subjectRepo repositories.SubjectRepository,
	loanRepo repositories.BookLoanRepository,
	userRepo repositories.UserRepository,
) BookService {
	return &bookService{
		bookRepo:     bookRepo,
		authorRepo:   authorRepo,
		categoryRepo: categoryRepo,
		subjectRepo:  subjectRepo,
		loanRepo:     loanRepo,
		userRepo:     userRepo,
	}
}

func (s *bookService) resolveSubjects(ids []uint) ([]models.Subject, error) {
	subjects := make([]models.Subject, 0, len(ids))
	for _, id := range ids {
		subject, err := s.subjectRepo.GetByID(nil, id)
		if err != nil {
			if isNotFound(err) {
				return nil, ErrSubjectNotFound
			}
			return nil, err
		}
		subjects = append(subjects, *subject)
	}
	return subjects, nil
}

func (s *bookService) validateRefs(input BookInput) error {
	if _, err := s.authorRepo.GetByID(nil, input.AuthorID); err != nil {
		if isNotFound(err) {
			return ErrAuthorNotFound
		}
		return err
	}
	if _, err := s.categoryRepo.GetByID(nil, input.CategoryID); err != nil {
		if isNotFound(err) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *bookService) CreateBook(input BookInput) (*models.Book, error) {
	if err := s.validateRefs(input); err != nil {
		return nil, err
	}
	subjects, err := s.resolveSubjects(input.SubjectIDs)
	if err != nil {
		return nil, err
	}

	if input.TotalCopies < 1 {
		input.TotalCopies = 1
	}
	book := &models.Book{
		Title:           input.Title,
		AuthorID:        input.AuthorID,
		CategoryID:      input.CategoryID,
		ISBN:            input.ISBN,
		Description:     input.Description,
		PublicationYear: input.PublicationYear,
		Publisher:       input.Publisher,
		Language:        input.Language,
		BookPrice:       input.BookPrice,
		TotalCopies:     input.TotalCopies,
		Image:           input.Image,
		Subjects:        subjects,
	}
	if err := s.bookRepo.Create(nil, book); err != nil {
		logrus.WithError(err).Error("CreateBook: insert failed")
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"book_id": book.ID, "title": book.Title}).Info("CreateBook: book created")
	return book, nil
}

func (s *bookService) GetBook(id uint) (*models.BookWithAvailability, error) {
	book, err := s.bookRepo.GetByID(nil, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return s.withAvailability(*book)
}

func (s *bookService) UpdateBook(id uint, input BookInput) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(nil, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	if err := s.validateRefs(input); err != nil {
		return nil, err
	}
	subjects, err := s.resolveSubjects(input.SubjectIDs)
	if err != nil {
		return nil, err
	}

	book.Title = input.Title
	book.AuthorID = input.AuthorID
	book.CategoryID = input.CategoryID
	book.ISBN = input.ISBN
	book.Description = input.Description
	book.PublicationYear = input.PublicationYear
	book.Publisher = input.Publisher
	book.Language = input.Language
	book.BookPrice = input.BookPrice
	if input.TotalCopies >= 1 {
		book.TotalCopies = input.TotalCopies
	}
	book.Image = input.Image
	if len(subjects) > 0 {
		book.Subjects = subjects
	}
	book.Author = nil
	book.Category = nil
	if err := s.bookRepo.Update(nil, book); err != nil {
		logrus.WithError(err).WithField("book_id", id).Error("UpdateBook: save failed")
		return nil, err
	}
	return book, nil
}

func (s *bookService) DeleteBook(id uint) error {
	if _, err := s.bookRepo.GetByID(nil, id); err != nil {
		if isNotFound(err) {
			return ErrBookNotFound
		}
		return err
	}
	if err := s.bookRepo.Delete(nil, id); err != nil {
		return err
	}
	logrus.WithField("book_id", id).Info("DeleteBook: book removed")
	return nil
}

func (s *bookService) ListBooks(search string, page, perPage int) (models.Page, error) {
	page, perPage, offset := normalizePaging(page, perPage)
	books, total, err := s.bookRepo.List(nil, search, perPage, offset)
	if err != nil {
		return models.Page{}, err
	}
	items := make([]models.BookWithAvailability, 0, len(books))
	for _, book := range books {
		item, err := s.withAvailability(book)
		if err != nil {
			return models.Page{}, err
		}
		items = append(items, *item)
	}
	return models.NewPage(items, page, perPage, total), nil
}

func (s *bookService) RecommendedForStudent(userID uint) ([]models.BookWithAvailability, error) {
	user, err := s.userRepo.GetByID(nil, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Role != models.UserRoleStudent {
		return nil, ErrNotStudent
	}

	books, err := s.bookRepo.ListForSubjects(nil, user.Course, numericYearLevel(user.YearLevel))
	if err != nil {
		return nil, err
	}

	recommended := make([]models.BookWithAvailability, 0, len(books))
	for _, book := range books {
		item, err := s.withAvailability(book)
		if err != nil {
			return nil, err
		}
		if item.AvailableCopies > 0 {
			recommended = append(recommended, *item)
		}
	}
	return recommended, nil
}

func (s *bookService) withAvailability(book models.Book) (*models.BookWithAvailability, error) {
	open, err := s.loanRepo.CountOpenByBook(nil, book.ID, 0)
	if err != nil {
		return nil, err
	}
	available := book.TotalCopies - int(open)
	if available < 0 {
		available = 0
	}
	return &models.BookWithAvailability{Book: book, AvailableCopies: available}, nil
}

// numericYearLevel strips non-digits from a free-form year level such as
// "3rd Year" and returns the numeric part.
func numericYearLevel(yearLevel string) int {
	var b strings.Builder
	for _, r := range yearLevel {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n := 0
	for _, r := range b.String() {
		n = n*10 + int(r-'0')
	}
	return n
}
