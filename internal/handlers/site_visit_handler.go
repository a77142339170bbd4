package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dykeinvestments/estate-backend/internal/database"
	"github.com/dykeinvestments/estate-backend/internal/models"
)

// SiteVisitHandler handles HTTP requests for viewing appointments
type SiteVisitHandler struct {
	repo   *database.SiteVisitRepository
	logger *logrus.Logger
}

// NewSiteVisitHandler creates a new site visit handler
func NewSiteVisitHandler(repo *database.SiteVisitRepository, logger *logrus.Logger) *SiteVisitHandler {
	return &SiteVisitHandler{
		repo:   repo,
		logger: logger,
	}
}

// Create handles POST /api/v1/site-visits
func (h *SiteVisitHandler) Create(c *gin.Context) {
	var visit models.SiteVisit
	if err := c.ShouldBindJSON(&visit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request format",
		})
		return
	}

	created, err := h.repo.Create(&visit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"visit_id":    created.ID,
		"property_id": created.PropertyID,
	}).Info("Site visit booked")

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"visit":  created,
	})
}

// List handles GET /api/v1/admin/site-visits
func (h *SiteVisitHandler) List(c *gin.Context) {
	visits, err := h.repo.GetAll()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"count":  len(visits),
		"visits": visits,
	})
}

// UpdateStatus handles PUT /api/v1/admin/site-visits/:id/status
func (h *SiteVisitHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid site visit id",
		})
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request format",
		})
		return
	}

	if err := h.repo.UpdateStatus(id, req.Status); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Site visit status updated",
	})
}
