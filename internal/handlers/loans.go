package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuslibrary/internal/services"
)

type LoanHandler struct {
	svc services.LoanService
}

type loanRequest struct {
	UserID  uint   `json:"user_id" binding:"required"`
	BookID  uint   `json:"book_id" binding:"required"`
	DueDate string `json:"due_date" binding:"required"`
}

type loanUpdateRequest struct {
	UserID     uint   `json:"user_id" binding:"required"`
	BookID     uint   `json:"book_id" binding:"required"`
	DueDate    string `json:"due_date" binding:"required"`
	ReturnDate string `json:"return_date"`
}

func (h *LoanHandler) index(c *gin.Context) {
	page, perPage := paging(c)
	result, err := h.svc.ListLoans(c.Query("search"), c.Query("status"), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LoanHandler) store(c *gin.Context) {
	var req loanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		respondValidation(c, err)
		return
	}

	loan, err := h.svc.CreateLoan(req.UserID, req.BookID, dueDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, loan)
}

func (h *LoanHandler) show(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	loan, err := h.svc.GetLoan(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req loanUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		respondValidation(c, err)
		return
	}
	returnDate, err := parseDatePtr(req.ReturnDate)
	if err != nil {
		respondValidation(c, err)
		return
	}

	loan, err := h.svc.UpdateLoan(id, req.UserID, req.BookID, dueDate, returnDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) destroy(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteLoan(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *LoanHandler) returnBook(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	loan, err := h.svc.ReturnBook(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) returnEligibility(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	eligible, err := h.svc.CheckEligibleForReturn(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_eligible": eligible})
}
