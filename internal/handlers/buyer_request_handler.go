package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dykeinvestments/estate-backend/internal/models"
	"github.com/dykeinvestments/estate-backend/internal/services"
)

// BuyerRequestHandler handles HTTP requests for buyer requests and their
// property matches
type BuyerRequestHandler struct {
	service *services.BuyerRequestService
	matcher *services.MatchService
	logger  *logrus.Logger
}

// NewBuyerRequestHandler creates a new buyer request handler
func NewBuyerRequestHandler(service *services.BuyerRequestService, matcher *services.MatchService,
	logger *logrus.Logger) *BuyerRequestHandler {
	return &BuyerRequestHandler{
		service: service,
		matcher: matcher,
		logger:  logger,
	}
}

// Submit handles POST /api/v1/buyer-requests
func (h *BuyerRequestHandler) Submit(c *gin.Context) {
	var req models.BuyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request format",
		})
		return
	}

	created, err := h.service.Submit(&req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"request_id": created.ID,
		"type":       created.PropertyType,
	}).Info("Buyer request submitted")

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"request": created,
	})
}

// List handles GET /api/v1/admin/buyer-requests
func (h *BuyerRequestHandler) List(c *gin.Context) {
	requests, err := h.service.List()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"count":    len(requests),
		"requests": requests,
	})
}

// Get handles GET /api/v1/admin/buyer-requests/:id
func (h *BuyerRequestHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid buyer request id",
		})
		return
	}

	req, err := h.service.GetByID(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if req == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Buyer request not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"request": req,
	})
}

// UpdateStatus handles PUT /api/v1/admin/buyer-requests/:id/status
func (h *BuyerRequestHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid buyer request id",
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

	updated, err := h.service.UpdateStatus(id, req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"request": updated,
	})
}

// Matches handles GET /api/v1/admin/buyer-requests/:id/matches
func (h *BuyerRequestHandler) Matches(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid buyer request id",
		})
		return
	}

	matches, err := h.matcher.MatchForRequest(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"count":   len(matches),
		"matches": matches,
	})
}

// NotifyMatches handles POST /api/v1/admin/buyer-requests/:id/notify-matches
func (h *BuyerRequestHandler) NotifyMatches(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid buyer request id",
		})
		return
	}

	matches, err := h.matcher.NotifyMatches(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"request_id": id,
		"matches":    len(matches),
	}).Info("Match results sent to buyer")

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"count":   len(matches),
		"matches": matches,
	})
}
