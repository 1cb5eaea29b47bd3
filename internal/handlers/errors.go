package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campuslibrary/internal/services"
)

// respondError maps service sentinel errors to HTTP statuses. Anything
// unrecognized is a 500 with a generic message; the detail goes to the log.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrStudentNotFound),
		errors.Is(err, services.ErrBookNotFound),
		errors.Is(err, services.ErrLoanNotFound),
		errors.Is(err, services.ErrAuthorNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrSubjectNotFound),
		errors.Is(err, services.ErrAttendanceNotFound),
		errors.Is(err, services.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})

	case errors.Is(err, services.ErrNoAvailableCopy),
		errors.Is(err, services.ErrInvalidDueDate),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})

	case errors.Is(err, services.ErrLoanAlreadyReturned):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

	case errors.Is(err, services.ErrNotStudent),
		errors.Is(err, services.ErrPostForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})

	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": "Validation failed",
		"errors":  err.Error(),
	})
}
