package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"campuslibrary/internal/models"
)

const dateLayout = "2006-01-02"

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(400, gin.H{"message": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// paging reads the row/page query parameters of the uniform list contract.
func paging(c *gin.Context) (page, perPage int) {
	perPage, _ = strconv.Atoi(c.DefaultQuery("row", "15"))
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	return page, perPage
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

func parseDatePtr(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// currentUser returns the user attached by the auth middleware.
func currentUser(c *gin.Context) *models.User {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
