package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/documents/adjustment"
	"bahikhata/internal/infrastructure/http/v1/dto"
)

// AdjustmentHandler handles stock adjustment requests.
type AdjustmentHandler struct {
	*BaseHandler
	service *adjustment.Service
}

// NewAdjustmentHandler creates a new adjustment handler.
func NewAdjustmentHandler(base *BaseHandler, service *adjustment.Service) *AdjustmentHandler {
	return &AdjustmentHandler{BaseHandler: base, service: service}
}

// Record handles POST /document/adjustments.
func (h *AdjustmentHandler) Record(c *gin.Context) {
	var req dto.RecordAdjustmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Record(c.Request.Context(), a); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

// List handles GET /document/adjustments.
func (h *AdjustmentHandler) List(c *gin.Context) {
	var dates dto.DateRangeQuery
	if !h.BindQuery(c, &dates) {
		return
	}

	filter := adjustment.ListFilter{
		DateFrom: dates.From,
		DateTo:   dates.To,
		Limit:    h.ParseIntQuery(c, "limit", 50),
		Offset:   h.ParseIntQuery(c, "offset", 0),
	}

	if productID := c.Query("productId"); productID != "" {
		parsed, err := id.Parse(productID)
		if err == nil {
			filter.ProductID = &parsed
		}
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": items})
}

// RegisterRoutes registers adjustment routes.
func (h *AdjustmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Record)
}
