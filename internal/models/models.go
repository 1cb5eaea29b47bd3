package models

import (
	"time"
)

type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleStudent UserRole = "student"
)

// Valid reports whether the role is one of the known enumerated values.
func (r UserRole) Valid() bool {
	return r == UserRoleAdmin || r == UserRoleStudent
}

type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Role           UserRole   `gorm:"size:20;not null;default:'student';index" json:"role"`
	FirstName      string     `gorm:"size:255;not null" json:"first_name"`
	MiddleName     string     `gorm:"size:255" json:"middle_name"`
	LastName       string     `gorm:"size:255;not null" json:"last_name"`
	Email          string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password       string     `gorm:"size:255;not null" json:"-"`
	IDNumber       string     `gorm:"size:50;uniqueIndex" json:"id_number"`
	Course         string     `gorm:"size:255" json:"course"`
	YearLevel      string     `gorm:"size:50" json:"year_level"`
	Gender         string     `gorm:"size:50" json:"gender"`
	ContactNumber  string     `gorm:"size:50" json:"contact_number"`
	ProfilePicture string     `gorm:"size:255" json:"profile_picture"`
	Birthday       *time.Time `json:"birthday"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// FullName joins the name parts, skipping an empty middle name.
func (u User) FullName() string {
	if u.MiddleName == "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName + " " + u.MiddleName + " " + u.LastName
}

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Bio       string    `gorm:"type:text" json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Subject struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Department string    `gorm:"size:255;not null" json:"department"`
	YearLevel  int       `gorm:"not null" json:"year_level"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	AuthorID        uint      `gorm:"not null;index" json:"author_id"`
	Author          *Author   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"author,omitempty"`
	CategoryID      uint      `gorm:"not null;index" json:"category_id"`
	Category        *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category,omitempty"`
	ISBN            *string   `gorm:"size:13;uniqueIndex" json:"isbn"`
	Description     string    `gorm:"type:text" json:"description"`
	PublicationYear *int      `json:"publication_year"`
	Publisher       string    `gorm:"size:255" json:"publisher"`
	Language        string    `gorm:"size:50;default:'English'" json:"language"`
	BookPrice       *float64  `json:"book_price"`
	TotalCopies     int       `gorm:"not null;default:1" json:"total_copies"`
	Image           string    `gorm:"size:255" json:"image"`
	Subjects        []Subject `gorm:"many2many:book_subject;" json:"subjects,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BookLoan struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;index" json:"user_id"`
	User             *User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user,omitempty"`
	BookID           uint       `gorm:"not null;index" json:"book_id"`
	Book             *Book      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"book,omitempty"`
	LoanDate         time.Time  `gorm:"not null" json:"loan_date"`
	DueDate          time.Time  `gorm:"not null" json:"due_date"`
	ActualReturnDate *time.Time `gorm:"index" json:"actual_return_date"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Open reports whether the loan has not been returned yet.
func (l BookLoan) Open() bool {
	return l.ActualReturnDate == nil
}

type Attendance struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	User      *User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
	Date      time.Time  `gorm:"type:date;not null;index" json:"date"`
	CheckIn   time.Time  `gorm:"not null" json:"check_in"`
	CheckOut  *time.Time `json:"check_out"`
	Notes     string     `gorm:"size:255" json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Attendance) TableName() string { return "attendance" }

type FeaturePost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookWithAvailability decorates a book with its derived available-copy count
// (total copies minus open loans). The count is computed on read, never stored.
type BookWithAvailability struct {
	Book
	AvailableCopies int `json:"available_copies"`
}

// Page is the uniform pagination envelope returned by every listing endpoint.
type Page struct {
	Data        interface{} `json:"data"`
	CurrentPage int         `json:"current_page"`
	PerPage     int         `json:"per_page"`
	Total       int64       `json:"total"`
	LastPage    int         `json:"last_page"`
}

// NewPage builds the envelope, deriving last_page from total and per_page.
func NewPage(data interface{}, page, perPage int, total int64) Page {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return Page{
		Data:        data,
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}
