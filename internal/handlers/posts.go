package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuslibrary/internal/services"
)

type PostHandler struct {
	svc services.PostService
}

type postRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

func (h *PostHandler) index(c *gin.Context) {
	posts, err := h.svc.ListPosts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) latest(c *gin.Context) {
	post, err := h.svc.LatestPost()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) store(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	user := currentUser(c)

	post, err := h.svc.CreatePost(user.ID, req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Feature post created successfully",
		"feature_post": post,
	})
}

func (h *PostHandler) show(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	post, err := h.svc.GetPost(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	user := currentUser(c)

	post, err := h.svc.UpdatePost(id, user.ID, req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Feature post updated successfully",
		"feature_post": post,
	})
}

func (h *PostHandler) destroy(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	user := currentUser(c)

	if err := h.svc.DeletePost(id, user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feature post deleted successfully"})
}
