package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dykeinvestments/estate-backend/internal/models"
)

// respondError maps domain errors onto HTTP responses. Validation problems
// surface their specific message; unknown ids are 404; anything else is an
// infrastructure failure reported generically with the cause logged.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case models.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
	case models.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
	default:
		logger.WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong. Please try again later.",
		})
	}
}
