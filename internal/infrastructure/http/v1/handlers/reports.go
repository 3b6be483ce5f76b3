package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bahikhata/internal/domain/documents/invoice"
	"bahikhata/internal/domain/documents/purchase"
	"bahikhata/internal/domain/reports"
	"bahikhata/internal/infrastructure/export"
	"bahikhata/internal/infrastructure/http/v1/dto"
)

// exportBatchLimit caps rows loaded per sheet for the workbook download.
const exportBatchLimit = 10_000

// ReportsHandler handles report requests.
type ReportsHandler struct {
	*BaseHandler
	service   *reports.Service
	purchases *purchase.Service
	invoices  *invoice.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(
	base *BaseHandler,
	service *reports.Service,
	purchases *purchase.Service,
	invoices *invoice.Service,
) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
		purchases:   purchases,
		invoices:    invoices,
	}
}

// GetSummary handles GET /reports/summary.
func (h *ReportsHandler) GetSummary(c *gin.Context) {
	var dates dto.DateRangeQuery
	if !h.BindQuery(c, &dates) {
		return
	}

	var from, to time.Time
	if dates.From != nil {
		from = *dates.From
	}
	if dates.To != nil {
		// Include the whole end day.
		to = dates.To.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	summary, err := h.service.GetSummary(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, summary)
}

// GetCustomerBalances handles GET /reports/customer-balances.
func (h *ReportsHandler) GetCustomerBalances(c *gin.Context) {
	items, err := h.service.GetCustomerBalances(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": items})
}

// DownloadWorkbook handles GET /reports/export.
// Writes an Excel workbook of purchases and invoices for the date range.
func (h *ReportsHandler) DownloadWorkbook(c *gin.Context) {
	ctx := c.Request.Context()

	var dates dto.DateRangeQuery
	if !h.BindQuery(c, &dates) {
		return
	}

	purchaseItems, err := h.purchases.List(ctx, purchase.ListFilter{
		DateFrom: dates.From,
		DateTo:   dates.To,
		Limit:    exportBatchLimit,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	invoiceItems, err := h.invoices.List(ctx, invoice.ListFilter{
		DateFrom: dates.From,
		DateTo:   dates.To,
		Limit:    exportBatchLimit,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := fmt.Sprintf("report-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)

	if err := export.WriteWorkbook(c.Writer, purchaseItems, invoiceItems); err != nil {
		h.Error(c, err)
	}
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/summary", h.GetSummary)
	rg.GET("/customer-balances", h.GetCustomerBalances)
	rg.GET("/export", h.DownloadWorkbook)
}
