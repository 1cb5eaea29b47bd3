package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuslibrary/internal/services"
)

type StatsHandler struct {
	svc services.StatsService
}

func (h *StatsHandler) admin(c *gin.Context) {
	cards, err := h.svc.AdminStats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *StatsHandler) student(c *gin.Context) {
	user := currentUser(c)
	cards, err := h.svc.StudentStats(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}
