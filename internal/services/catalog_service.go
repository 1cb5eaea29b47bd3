package services

import (
	"campuslibrary/internal/models"
	"campuslibrary/internal/repositories"
)

// CatalogService covers the simple reference entities: authors, categories and
// subjects. Plain CRUD plus the uniform list contract; no workflow logic.
type CatalogService interface {
	CreateAuthor(name, bio string) (*models.Author, error)
	GetAuthor(id uint) (*models.Author, error)
	UpdateAuthor(id uint, name, bio string) (*models.Author, error)
	DeleteAuthor(id uint) error
	ListAuthors(search string, page, perPage int) (models.Page, error)

	CreateCategory(name, description string) (*models.Category, error)
	GetCategory(id uint) (*models.Category, error)
	UpdateCategory(id uint, name, description string) (*models.Category, error)
	DeleteCategory(id uint) error
	ListCategories(search string, page, perPage int) (models.Page, error)

	CreateSubject(name, department string, yearLevel int) (*models.Subject, error)
	GetSubject(id uint) (*models.Subject, error)
	UpdateSubject(id uint, name, department string, yearLevel int) (*models.Subject, error)
	DeleteSubject(id uint) error
	ListSubjects(search string, page, perPage int) (models.Page, error)
}

type catalogService struct {
	authorRepo   repositories.AuthorRepository
	categoryRepo repositories.CategoryRepository
	subjectRepo  repositories.SubjectRepository
}

func NewCatalogService(
	authorRepo repositories.AuthorRepository,
	categoryRepo repositories.CategoryRepository,
	subjectRepo repositories.SubjectRepository,
) CatalogService {
	return &catalogService{
		authorRepo:   authorRepo,
		categoryRepo: categoryRepo,
		subjectRepo:  subjectRepo,
	}
}

func (s *catalogService) CreateAuthor(name, bio string) (*models.Author, error) {
	author := &models.Author{Name: name, Bio: bio}
	if err := s.authorRepo.Create(nil, author); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *catalogService) GetAuthor(id uint) (*models.Author, error) {
	author, err := s.authorRepo.GetByID(nil, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}
	return author, nil
}

func (s *catalogService) UpdateAuthor(id uint, name, bio string) (*models.Author, error) {
	author, err := s.GetAuthor(id)
	if err != nil {
		return nil, err
	}
	author.Name = name
	author.Bio = bio
	if err := s.authorRepo.Update(nil, author); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *catalogService) DeleteAuthor(id uint) error {
	if _, err := s.GetAuthor(id); err != nil {
		return err
	}
	return s.authorRepo.Delete(nil, id)
}

func (s *catalogService) ListAuthors(search string, page, perPage int) (models.Page, error) {
	page, perPage, offset := normalizePaging(page, perPage)
	authors, total, err := s.authorRepo.List(nil, search, perPage, offset)
	if err != nil {
		return models.Page{}, err
	}
	return models.NewPage(authors, page, perPage, total), nil
}

func (s *catalogService) CreateCategory(name, description string) (*models.Category, error) {
	category := &models.Category{Name: name, Description: description}
	if err := s.categoryRepo.Create(nil, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) GetCategory(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(nil, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(id uint, name, description string) (*models.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	category.Description = description
	if err := s.categoryRepo.Update(nil, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(nil, id)
}

func (s *catalogService) ListCategories(search string, page, perPage int) (models.Page, error) {
	page, perPage, offset := normalizePaging(page, perPage)
	categories, total, err := s.categoryRepo.List(nil, search, perPage, offset)
	if err != nil {
		return models.Page{}, err
	}
	return models.NewPage(categories, page, perPage, total), nil
}

func (s *catalogService) CreateSubject(name, department string, yearLevel int) (*models.Subject, error) {
	subject := &models.Subject{Name: name, Department: department, YearLevel: yearLevel}
	if err := s.subjectRepo.Create(nil, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *catalogService) GetSubject(id uint) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetByID(nil, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

func (s *catalogService) UpdateSubject(id uint, name, department string, yearLevel int) (*models.Subject, error) {
	subject, err := s.GetSubject(id)
	if err != nil {
		return nil, err
	}
	subject.Name = name
	subject.Department = department
	subject.YearLevel = yearLevel
	if err := s.subjectRepo.Update(nil, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *catalogService) DeleteSubject(id uint) error {
	if _, err := s.GetSubject(id); err != nil {
		return err
	}
	return s.subjectRepo.Delete(nil, id)
}

func (s *catalogService) ListSubjects(search string, page, perPage int) (models.Page, error) {
	page, perPage, offset := normalizePaging(page, perPage)
	subjects, total, err := s.subjectRepo.List(nil, search, perPage, offset)
	if err != nil {
		return models.Page{}, err
	}
	return models.NewPage(subjects, page, perPage, total), nil
}
