package services

import (
	"campuslibrary/internal/models"
	"campuslibrary/internal/repositories"
)

// StatCard is one tile on a dashboard.
type StatCard struct {
	Title   string `json:"title"`
	Count   int64  `json:"count"`
	Link    string `json:"link"`
	BgColor string `json:"bgColor"`
}

type StatsService interface {
	AdminStats() ([]StatCard, error)
	StudentStats(userID uint) ([]StatCard, error)
}

type statsService struct {
	userRepo     repositories.UserRepository
	attRepo      repositories.AttendanceRepository
	bookRepo     repositories.BookRepository
	authorRepo   repositories.AuthorRepository
	categoryRepo repositories.CategoryRepository
	loanRepo     repositories.BookLoanRepository
	postRepo     repositories.FeaturePostRepository
}

func NewStatsService(
	userRepo repositories.UserRepository,
	attRepo repositories.AttendanceRepository,
	bookRepo repositories.BookRepository,
	authorRepo repositories.AuthorRepository,
	categoryRepo repositories.CategoryRepository,
	loanRepo repositories.BookLoanRepository,
	postRepo repositories.FeaturePostRepository,
) StatsService {
	return &statsService{
		userRepo:     userRepo,
		attRepo:      attRepo,
		bookRepo:     bookRepo,
		authorRepo:   authorRepo,
		categoryRepo: categoryRepo,
		loanRepo:     loanRepo,
		postRepo:     postRepo,
	}
}

func (s *statsService) AdminStats() ([]StatCard, error) {
	students, err := s.userRepo.CountByRole(nil, models.UserRoleStudent)
	if err != nil {
		return nil, err
	}
	attendance, err := s.attRepo.Count(nil)
	if err != nil {
		return nil, err
	}
	books, err := s.bookRepo.Count(nil)
	if err != nil {
		return nil, err
	}
	authors, err := s.authorRepo.Count(nil)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.Count(nil)
	if err != nil {
		return nil, err
	}
	loans, err := s.loanRepo.Count(nil)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.Count(nil)
	if err != nil {
		return nil, err
	}

	return []StatCard{
		{Title: "Students", Count: students, Link: "/admin/students", BgColor: "#3f51b5"},
		{Title: "Attendance", Count: attendance, Link: "/admin/attendance", BgColor: "#f50057"},
		{Title: "Books", Count: books, Link: "/admin/books", BgColor: "#ff9800"},
		{Title: "Authors", Count: authors, Link: "/admin/authors", BgColor: "#009688"},
		{Title: "Post", Count: posts, Link: "/admin/post", BgColor: "#9c27b0"},
		{Title: "Issued Books", Count: loans, Link: "/admin/bookloans", BgColor: "#4caf50"},
		{Title: "Category", Count: categories, Link: "/admin/categories", BgColor: "#1976D2"},
	}, nil
}

func (s *statsService) StudentStats(userID uint) ([]StatCard, error) {
	issued, err := s.loanRepo.CountByUser(nil, userID)
	if err != nil {
		return nil, err
	}
	pending, err := s.loanRepo.CountOpenByUser(nil, userID)
	if err != nil {
		return nil, err
	}

	return []StatCard{
		{Title: "Issued Books", Count: issued, Link: "/student/issued-books", BgColor: "#4caf50"},
		{Title: "Pending Returns", Count: pending, Link: "/student/issued-books", BgColor: "#f44336"},
	}, nil
}
