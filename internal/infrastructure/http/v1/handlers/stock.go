package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bahikhata/internal/domain/registers/stock"
	"bahikhata/internal/domain/reports"
	"bahikhata/internal/infrastructure/export"
)

// StockHandler handles stock register queries.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
	reports *reports.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service, reportService *reports.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service, reports: reportService}
}

// GetStock handles GET /registers/stock/:productId.
func (h *StockHandler) GetStock(c *gin.Context) {
	productID, ok := h.ParseID(c, "productId")
	if !ok {
		return
	}

	qty, err := h.service.GetStock(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{
		"productId": productID,
		"quantity":  qty,
	})
}

// Snapshot handles GET /registers/stock.
func (h *StockHandler) Snapshot(c *gin.Context) {
	snapshot, err := h.reports.GetStockSnapshot(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, snapshot)
}

// DownloadCSV handles GET /registers/stock/export.
func (h *StockHandler) DownloadCSV(c *gin.Context) {
	snapshot, err := h.reports.GetStockSnapshot(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=stock.csv")
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)

	if err := export.WriteStockCSV(c.Writer, snapshot.Items); err != nil {
		h.Error(c, err)
	}
}

// RegisterRoutes registers stock register routes.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Snapshot)
	rg.GET("/export", h.DownloadCSV)
	rg.GET("/:productId", h.GetStock)
}
