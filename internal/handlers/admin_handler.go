package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dykeinvestments/estate-backend/internal/database"
	"github.com/dykeinvestments/estate-backend/internal/services"
)

// AdminHandler serves the dashboard overview endpoints
type AdminHandler struct {
	properties *services.PropertyService
	requests   *services.BuyerRequestService
	emailLogs  *database.EmailLogRepository
	logger     *logrus.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	properties *services.PropertyService,
	requests *services.BuyerRequestService,
	emailLogs *database.EmailLogRepository,
	logger *logrus.Logger,
) *AdminHandler {
	return &AdminHandler{
		properties: properties,
		requests:   requests,
		emailLogs:  emailLogs,
		logger:     logger,
	}
}

// Stats handles GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	propertyStats, err := h.properties.Stats()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	requestStats, err := h.requests.Stats()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"properties":     propertyStats,
		"buyer_requests": requestStats,
	})
}

// EmailLogs handles GET /api/v1/admin/email-logs
func (h *AdminHandler) EmailLogs(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "limit must be between 1 and 500",
			})
			return
		}
		limit = parsed
	}

	logs, err := h.emailLogs.ListRecent(limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"count":  len(logs),
		"logs":   logs,
	})
}
