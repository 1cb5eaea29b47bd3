package services

import (
	"database/sql"
	"sort"
	"time"

	"gorm.io/gorm"

	"campuslibrary/internal/models"
)

// fakeTx runs the transaction body directly; the fake repositories ignore the
// tx handle, so workflow logic is exercised without a database.
type fakeTx struct{}

func (fakeTx) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) add(user models.User) *models.User {
	if user.ID == 0 {
		user.ID = r.nextID
	}
	if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	stored := user
	r.users[stored.ID] = &stored
	return &stored
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ *gorm.DB, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByIDForUpdate(db *gorm.DB, id uint) (*models.User, error) {
	return r.GetByID(db, id)
}

func (r *fakeUserRepo) GetByEmail(_ *gorm.DB, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetStudentByIDNumber(_ *gorm.DB, idNumber string) (*models.User, error) {
	for _, user := range r.users {
		if user.IDNumber == idNumber && user.Role == models.UserRoleStudent {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ *gorm.DB, user *models.User) error {
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Delete(_ *gorm.DB, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ListStudents(_ *gorm.DB, _ string, limit, offset int) ([]models.User, int64, error) {
	var students []models.User
	for _, user := range r.users {
		if user.Role == models.UserRoleStudent {
			students = append(students, *user)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	total := int64(len(students))
	if offset > len(students) {
		offset = len(students)
	}
	end := offset + limit
	if end > len(students) {
		end = len(students)
	}
	return students[offset:end], total, nil
}

func (r *fakeUserRepo) CountByRole(_ *gorm.DB, role models.UserRole) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

type fakeBookRepo struct {
	books  map[uint]*models.Book
	nextID uint
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[uint]*models.Book), nextID: 1}
}

func (r *fakeBookRepo) add(book models.Book) *models.Book {
	if book.ID == 0 {
		book.ID = r.nextID
	}
	if book.ID >= r.nextID {
		r.nextID = book.ID + 1
	}
	stored := book
	r.books[stored.ID] = &stored
	return &stored
}

func (r *fakeBookRepo) Create(_ *gorm.DB, book *models.Book) error {
	book.ID = r.nextID
	r.nextID++
	stored := *book
	r.books[book.ID] = &stored
	return nil
}

func (r *fakeBookRepo) GetByID(_ *gorm.DB, id uint) (*models.Book, error) {
	book, ok := r.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *book
	return &copied, nil
}

func (r *fakeBookRepo) GetByIDForUpdate(db *gorm.DB, id uint) (*models.Book, error) {
	return r.GetByID(db, id)
}

func (r *fakeBookRepo) Update(_ *gorm.DB, book *models.Book) error {
	stored := *book
	r.books[book.ID] = &stored
	return nil
}

func (r *fakeBookRepo) Delete(_ *gorm.DB, id uint) error {
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) List(_ *gorm.DB, _ string, limit, offset int) ([]models.Book, int64, error) {
	var books []models.Book
	for _, book := range r.books {
		books = append(books, *book)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	total := int64(len(books))
	if offset > len(books) {
		offset = len(books)
	}
	end := offset + limit
	if end > len(books) {
		end = len(books)
	}
	return books[offset:end], total, nil
}

func (r *fakeBookRepo) ListForSubjects(_ *gorm.DB, department string, yearLevel int) ([]models.Book, error) {
	var matched []models.Book
	for _, book := range r.books {
		for _, subject := range book.Subjects {
			if subject.Department == department && subject.YearLevel == yearLevel {
				matched = append(matched, *book)
				break
			}
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (r *fakeBookRepo) Count(_ *gorm.DB) (int64, error) {
	return int64(len(r.books)), nil
}

type fakeLoanRepo struct {
	loans  map[uint]*models.BookLoan
	nextID uint
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{loans: make(map[uint]*models.BookLoan), nextID: 1}
}

func (r *fakeLoanRepo) add(loan models.BookLoan) *models.BookLoan {
	if loan.ID == 0 {
		loan.ID = r.nextID
	}
	if loan.ID >= r.nextID {
		r.nextID = loan.ID + 1
	}
	stored := loan
	r.loans[stored.ID] = &stored
	return &stored
}

func (r *fakeLoanRepo) Create(_ *gorm.DB, loan *models.BookLoan) error {
	loan.ID = r.nextID
	r.nextID++
	stored := *loan
	r.loans[loan.ID] = &stored
	return nil
}

func (r *fakeLoanRepo) GetByID(_ *gorm.DB, id uint) (*models.BookLoan, error) {
	loan, ok := r.loans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *loan
	return &copied, nil
}

func (r *fakeLoanRepo) GetByIDForUpdate(db *gorm.DB, id uint) (*models.BookLoan, error) {
	return r.GetByID(db, id)
}

func (r *fakeLoanRepo) Update(_ *gorm.DB, loan *models.BookLoan) error {
	stored := *loan
	r.loans[loan.ID] = &stored
	return nil
}

func (r *fakeLoanRepo) Delete(_ *gorm.DB, id uint) error {
	delete(r.loans, id)
	return nil
}

func (r *fakeLoanRepo) List(_ *gorm.DB, _ string, status string, now time.Time, limit, offset int) ([]models.BookLoan, int64, error) {
	var loans []models.BookLoan
	for _, loan := range r.loans {
		switch status {
		case "overdue":
			if loan.ActualReturnDate != nil || !loan.DueDate.Before(now) {
				continue
			}
		case "active":
			if loan.ActualReturnDate != nil {
				continue
			}
		}
		loans = append(loans, *loan)
	}
	sort.Slice(loans, func(i, j int) bool { return loans[i].ID > loans[j].ID })
	total := int64(len(loans))
	if offset > len(loans) {
		offset = len(loans)
	}
	end := offset + limit
	if end > len(loans) {
		end = len(loans)
	}
	return loans[offset:end], total, nil
}

func (r *fakeLoanRepo) ListOpenByBook(_ *gorm.DB, bookID uint) ([]models.BookLoan, error) {
	var loans []models.BookLoan
	for _, loan := range r.loans {
		if loan.BookID == bookID && loan.ActualReturnDate == nil {
			loans = append(loans, *loan)
		}
	}
	sort.Slice(loans, func(i, j int) bool { return loans[i].DueDate.Before(loans[j].DueDate) })
	return loans, nil
}

func (r *fakeLoanRepo) CountOpenByBook(_ *gorm.DB, bookID, excludeLoanID uint) (int64, error) {
	var count int64
	for _, loan := range r.loans {
		if loan.BookID == bookID && loan.ActualReturnDate == nil && loan.ID != excludeLoanID {
			count++
		}
	}
	return count, nil
}

func (r *fakeLoanRepo) CountByUser(_ *gorm.DB, userID uint) (int64, error) {
	var count int64
	for _, loan := range r.loans {
		if loan.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeLoanRepo) CountOpenByUser(_ *gorm.DB, userID uint) (int64, error) {
	var count int64
	for _, loan := range r.loans {
		if loan.UserID == userID && loan.ActualReturnDate == nil {
			count++
		}
	}
	return count, nil
}

func (r *fakeLoanRepo) Count(_ *gorm.DB) (int64, error) {
	return int64(len(r.loans)), nil
}

type fakeAttendanceRepo struct {
	records map[uint]*models.Attendance
	nextID  uint
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[uint]*models.Attendance), nextID: 1}
}

func (r *fakeAttendanceRepo) Create(_ *gorm.DB, record *models.Attendance) error {
	record.ID = r.nextID
	r.nextID++
	stored := *record
	r.records[record.ID] = &stored
	return nil
}

func (r *fakeAttendanceRepo) GetByID(_ *gorm.DB, id uint) (*models.Attendance, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *fakeAttendanceRepo) Update(_ *gorm.DB, record *models.Attendance) error {
	stored := *record
	r.records[record.ID] = &stored
	return nil
}

func (r *fakeAttendanceRepo) Delete(_ *gorm.DB, id uint) error {
	delete(r.records, id)
	return nil
}

func (r *fakeAttendanceRepo) List(_ *gorm.DB, _ string, _, _ *time.Time, limit, offset int) ([]models.Attendance, int64, error) {
	var records []models.Attendance
	for _, record := range r.records {
		records = append(records, *record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID > records[j].ID })
	total := int64(len(records))
	if offset > len(records) {
		offset = len(records)
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end], total, nil
}

func (r *fakeAttendanceRepo) LatestForUserOn(_ *gorm.DB, userID uint, date time.Time) (*models.Attendance, error) {
	var latest *models.Attendance
	for _, record := range r.records {
		if record.UserID != userID || !record.Date.Equal(date) {
			continue
		}
		if latest == nil || record.CheckIn.After(latest.CheckIn) {
			latest = record
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeAttendanceRepo) Count(_ *gorm.DB) (int64, error) {
	return int64(len(r.records)), nil
}

type fakeAuthorRepo struct {
	authors map[uint]*models.Author
	nextID  uint
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{authors: make(map[uint]*models.Author), nextID: 1}
}

func (r *fakeAuthorRepo) add(author models.Author) *models.Author {
	if author.ID == 0 {
		author.ID = r.nextID
	}
	if author.ID >= r.nextID {
		r.nextID = author.ID + 1
	}
	stored := author
	r.authors[stored.ID] = &stored
	return &stored
}

func (r *fakeAuthorRepo) Create(_ *gorm.DB, author *models.Author) error {
	author.ID = r.nextID
	r.nextID++
	stored := *author
	r.authors[author.ID] = &stored
	return nil
}

func (r *fakeAuthorRepo) GetByID(_ *gorm.DB, id uint) (*models.Author, error) {
	author, ok := r.authors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *author
	return &copied, nil
}

func (r *fakeAuthorRepo) Update(_ *gorm.DB, author *models.Author) error {
	stored := *author
	r.authors[author.ID] = &stored
	return nil
}

func (r *fakeAuthorRepo) Delete(_ *gorm.DB, id uint) error {
	delete(r.authors, id)
	return nil
}

func (r *fakeAuthorRepo) List(_ *gorm.DB, _ string, limit, offset int) ([]models.Author, int64, error) {
	var authors []models.Author
	for _, author := range r.authors {
		authors = append(authors, *author)
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].ID < authors[j].ID })
	total := int64(len(authors))
	if offset > len(authors) {
		offset = len(authors)
	}
	end := offset + limit
	if end > len(authors) {
		end = len(authors)
	}
	return authors[offset:end], total, nil
}

func (r *fakeAuthorRepo) Count(_ *gorm.DB) (int64, error) {
	return int64(len(r.authors)), nil
}

type fakeCategoryRepo struct {
	categories map[uint]*models.Category
	nextID     uint
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uint]*models.Category), nextID: 1}
}

func (r *fakeCategoryRepo) add(category models.Category) *models.Category {
	if category.ID == 0 {
		category.ID = r.nextID
	}
	if category.ID >= r.nextID {
		r.nextID = category.ID + 1
	}
	stored := category
	r.categories[stored.ID] = &stored
	return &stored
}

func (r *fakeCategoryRepo) Create(_ *gorm.DB, category *models.Category) error {
	category.ID = r.nextID
	r.nextID++
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ *gorm.DB, id uint) (*models.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *fakeCategoryRepo) Update(_ *gorm.DB, category *models.Category) error {
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoryRepo) Delete(_ *gorm.DB, id uint) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) List(_ *gorm.DB, _ string, limit, offset int) ([]models.Category, int64, error) {
	var categories []models.Category
	for _, category := range r.categories {
		categories = append(categories, *category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	total := int64(len(categories))
	if offset > len(categories) {
		offset = len(categories)
	}
	end := offset + limit
	if end > len(categories) {
		end = len(categories)
	}
	return categories[offset:end], total, nil
}

func (r *fakeCategoryRepo) Count(_ *gorm.DB) (int64, error) {
	return int64(len(r.categories)), nil
}

type fakeSubjectRepo struct {
	subjects map[uint]*models.Subject
	nextID   uint
}

func newFakeSubjectRepo() *fakeSubjectRepo {
	return &fakeSubjectRepo{subjects: make(map[uint]*models.Subject), nextID: 1}
}

func (r *fakeSubjectRepo) add(subject models.Subject) *models.Subject {
	if subject.ID == 0 {
		subject.ID = r.nextID
	}
	if subject.ID >= r.nextID {
		r.nextID = subject.ID + 1
	}
	stored := subject
	r.subjects[stored.ID] = &stored
	return &stored
}

func (r *fakeSubjectRepo) Create(_ *gorm.DB, subject *models.Subject) error {
	subject.ID = r.nextID
	r.nextID++
	stored := *subject
	r.subjects[subject.ID] = &stored
	return nil
}

func (r *fakeSubjectRepo) GetByID(_ *gorm.DB, id uint) (*models.Subject, error) {
	subject, ok := r.subjects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *subject
	return &copied, nil
}

func (r *fakeSubjectRepo) Update(_ *gorm.DB, subject *models.Subject) error {
	stored := *subject
	r.subjects[subject.ID] = &stored
	return nil
}

func (r *fakeSubjectRepo) Delete(_ *gorm.DB, id uint) error {
	delete(r.subjects, id)
	return nil
}

func (r *fakeSubjectRepo) List(_ *gorm.DB, _ string, limit, offset int) ([]models.Subject, int64, error) {
	var subjects []models.Subject
	for _, subject := range r.subjects {
		subjects = append(subjects, *subject)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	total := int64(len(subjects))
	if offset > len(subjects) {
		offset = len(subjects)
	}
	end := offset + limit
	if end > len(subjects) {
		end = len(subjects)
	}
	return subjects[offset:end], total, nil
}
