package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuslibrary/internal/services"
)

type CatalogHandler struct {
	svc services.CatalogService
}

type authorRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	Bio  string `json:"bio"`
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

type subjectRequest struct {
	Name       string `json:"name" binding:"required,max=255"`
	Department string `json:"department" binding:"required,max=255"`
	YearLevel  int    `json:"year_level" binding:"required,min=1"`
}

func (h *CatalogHandler) listAuthors(c *gin.Context) {
	page, perPage := paging(c)
	result, err := h.svc.ListAuthors(c.Query("search"), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CatalogHandler) storeAuthor(c *gin.Context) {
	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	author, err := h.svc.CreateAuthor(req.Name, req.Bio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, author)
}

func (h *CatalogHandler) showAuthor(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	author, err := h.svc.GetAuthor(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, author)
}

func (h *CatalogHandler) updateAuthor(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	author, err := h.svc.UpdateAuthor(id, req.Name, req.Bio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, author)
}

func (h *CatalogHandler) destroyAuthor(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteAuthor(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *CatalogHandler) listCategories(c *gin.Context) {
	page, perPage := paging(c)
	result, err := h.svc.ListCategories(c.Query("search"), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CatalogHandler) storeCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	category, err := h.svc.CreateCategory(req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) showCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	category, err := h.svc.GetCategory(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) updateCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	category, err := h.svc.UpdateCategory(id, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) destroyCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteCategory(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *CatalogHandler) listSubjects(c *gin.Context) {
	page, perPage := paging(c)
	result, err := h.svc.ListSubjects(c.Query("search"), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CatalogHandler) storeSubject(c *gin.Context) {
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	subject, err := h.svc.CreateSubject(req.Name, req.Department, req.YearLevel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subject)
}

func (h *CatalogHandler) showSubject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	subject, err := h.svc.GetSubject(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subject)
}

func (h *CatalogHandler) updateSubject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	subject, err := h.svc.UpdateSubject(id, req.Name, req.Department, req.YearLevel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subject)
}

func (h *CatalogHandler) destroySubject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteSubject(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
