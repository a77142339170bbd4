package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dykeinvestments/estate-backend/internal/database"
	"github.com/dykeinvestments/estate-backend/internal/middleware"
	"github.com/dykeinvestments/estate-backend/internal/models"
	"github.com/dykeinvestments/estate-backend/internal/services"
)

// PropertyHandler handles HTTP requests for property listings
type PropertyHandler struct {
	service *services.PropertyService
	logger  *logrus.Logger
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(service *services.PropertyService, logger *logrus.Logger) *PropertyHandler {
	return &PropertyHandler{
		service: service,
		logger:  logger,
	}
}

// propertySubmission is the seller submission request body
type propertySubmission struct {
	models.Property
	ImageURLs []string `json:"image_urls"`
}

// Submit handles POST /api/v1/properties
func (h *PropertyHandler) Submit(c *gin.Context) {
	var req propertySubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request format",
		})
		return
	}

	created, err := h.service.Submit(c.Request.Context(), &req.Property, req.ImageURLs)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"property_id": created.ID,
		"type":        created.PropertyType,
		"district":    created.LocationDistrict,
	}).Info("Property submitted")

	c.JSON(http.StatusCreated, gin.H{
		"status":   "success",
		"property": created,
	})
}

// List handles GET /api/v1/properties with optional filter query params
func (h *PropertyHandler) List(c *gin.Context) {
	var filter models.PropertyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid filter parameters",
		})
		return
	}

	properties, err := h.service.ListApproved(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"count":      len(properties),
		"properties": properties,
	})
}

// Get handles GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid property id",
		})
		return
	}

	property, err := h.service.GetByID(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Property not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"property": property,
	})
}

// ListAll handles GET /api/v1/admin/properties
func (h *PropertyHandler) ListAll(c *gin.Context) {
	properties, err := h.service.ListAll()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"count":      len(properties),
		"properties": properties,
	})
}

// statusUpdateRequest is the admin status transition body
type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PUT /api/v1/admin/properties/:id/status. Approval
// records the authenticated admin as approver.
func (h *PropertyHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid property id",
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

	var approvedBy *uuid.UUID
	if claims, ok := middleware.GetClaims(c); ok {
		approvedBy = &claims.UserID
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status, approvedBy)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"property_id": id,
		"status":      req.Status,
	}).Info("Property status updated")

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"property": updated,
	})
}

// Update handles PUT /api/v1/admin/properties/:id
func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid property id",
		})
		return
	}

	var updates database.PropertyUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request format",
		})
		return
	}

	updated, err := h.service.UpdateDetails(c.Request.Context(), id, updates)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"property": updated,
	})
}

// Delete handles DELETE /api/v1/admin/properties/:id
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid property id",
		})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithField("property_id", id).Info("Property deleted")

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Property deleted",
	})
}
