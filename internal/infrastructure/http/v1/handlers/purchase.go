package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bahikhata/internal/domain/documents/purchase"
	"bahikhata/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler handles purchase event requests.
type PurchaseHandler struct {
	*BaseHandler
	service *purchase.Service
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(base *BaseHandler, service *purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{BaseHandler: base, service: service}
}

// Record handles POST /document/purchases.
func (h *PurchaseHandler) Record(c *gin.Context) {
	var req dto.RecordPurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Record(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// Get handles GET /document/purchases/:id.
func (h *PurchaseHandler) Get(c *gin.Context) {
	purchaseID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), purchaseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, p)
}

// List handles GET /document/purchases.
func (h *PurchaseHandler) List(c *gin.Context) {
	var dates dto.DateRangeQuery
	if !h.BindQuery(c, &dates) {
		return
	}

	filter := purchase.ListFilter{
		DateFrom: dates.From,
		DateTo:   dates.To,
		Limit:    h.ParseIntQuery(c, "limit", 50),
		Offset:   h.ParseIntQuery(c, "offset", 0),
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": items})
}

// RegisterRoutes registers purchase routes.
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Record)
	rg.GET("/:id", h.Get)
}
