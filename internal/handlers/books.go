package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuslibrary/internal/services"
)

type BookHandler struct {
	svc   services.BookService
	loans services.LoanService
}

type bookRequest struct {
	Title           string   `json:"title" binding:"required,max=255"`
	AuthorID        uint     `json:"author_id" binding:"required"`
	CategoryID      uint     `json:"category_id" binding:"required"`
	ISBN            *string  `json:"isbn" binding:"omitempty,max=13"`
	Description     string   `json:"description"`
	PublicationYear *int     `json:"publication_year" binding:"omitempty,min=1000"`
	Publisher       string   `json:"publisher" binding:"max=255"`
	Language        string   `json:"language" binding:"max=50"`
	BookPrice       *float64 `json:"book_price" binding:"omitempty,min=0"`
	TotalCopies     int      `json:"total_copies" binding:"omitempty,min=1"`
	Image           string   `json:"image"`
	SubjectIDs      []uint   `json:"subject_ids"`
}

func (r bookRequest) toInput() services.BookInput {
	return services.BookInput{
		Title:           r.Title,
		AuthorID:        r.AuthorID,
		CategoryID:      r.CategoryID,
		ISBN:            r.ISBN,
		Description:     r.Description,
		PublicationYear: r.PublicationYear,
		Publisher:       r.Publisher,
		Language:        r.Language,
		BookPrice:       r.BookPrice,
		TotalCopies:     r.TotalCopies,
		Image:           r.Image,
		SubjectIDs:      r.SubjectIDs,
	}
}

func (h *BookHandler) index(c *gin.Context) {
	page, perPage := paging(c)
	result, err := h.svc.ListBooks(c.Query("search"), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookHandler) store(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	book, err := h.svc.CreateBook(req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (h *BookHandler) show(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	book, err := h.svc.GetBook(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	book, err := h.svc.UpdateBook(id, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) destroy(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteBook(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *BookHandler) activeLoans(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	loans, err := h.loans.ActiveLoansForBook(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": loans})
}

func (h *BookHandler) recommended(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthenticated"})
		return
	}
	books, err := h.svc.RecommendedForStudent(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": books})
}
