package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/catalogs/customer"
	"bahikhata/internal/domain/catalogs/product"
	"bahikhata/internal/domain/documents/invoice"
	"bahikhata/internal/infrastructure/http/v1/dto"
	"bahikhata/internal/infrastructure/render/pdf"
)

// InvoiceHandler handles invoice requests.
type InvoiceHandler struct {
	*BaseHandler
	service   *invoice.Service
	products  *product.Service
	customers *customer.Service
	business  pdf.BusinessInfo
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(
	base *BaseHandler,
	service *invoice.Service,
	products *product.Service,
	customers *customer.Service,
	business pdf.BusinessInfo,
) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler: base,
		service:     service,
		products:    products,
		customers:   customers,
		business:    business,
	}
}

// Create handles POST /document/invoices.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	draft, err := req.ToDraft()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), draft)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Get handles GET /document/invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, inv)
}

// GetByNumber handles GET /document/invoices/by-number/:no.
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	inv, err := h.service.GetByNumber(c.Request.Context(), c.Param("no"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, inv)
}

// List handles GET /document/invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	var dates dto.DateRangeQuery
	if !h.BindQuery(c, &dates) {
		return
	}

	filter := invoice.ListFilter{
		DateFrom: dates.From,
		DateTo:   dates.To,
		Limit:    h.ParseIntQuery(c, "limit", 50),
		Offset:   h.ParseIntQuery(c, "offset", 0),
	}

	if customerID := c.Query("customerId"); customerID != "" {
		parsed, err := id.Parse(customerID)
		if err == nil {
			filter.CustomerID = &parsed
		}
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": items})
}

// DownloadPDF handles GET /document/invoices/:id/pdf.
// Renders the invoice from stored amounts; nothing is recomputed.
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	ctx := c.Request.Context()

	invoiceID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	inv, err := h.service.GetByID(ctx, invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	var cust *customer.Customer
	if inv.CustomerID != nil {
		cust, err = h.customers.GetByID(ctx, *inv.CustomerID)
		if err != nil {
			h.Error(c, err)
			return
		}
	}

	names := make(map[id.ID]string, len(inv.Lines))
	for _, line := range inv.Lines {
		if _, ok := names[line.ProductID]; ok {
			continue
		}
		p, err := h.products.GetByID(ctx, line.ProductID)
		if err != nil {
			// Product deleted after the sale; the line still renders with its id.
			continue
		}
		names[line.ProductID] = p.Name
	}

	data := pdf.BuildDocumentData(inv, cust, names, h.business)
	doc, err := pdf.Render(data)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", inv.InvoiceNo))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// RegisterRoutes registers invoice routes.
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/pdf", h.DownloadPDF)
	rg.GET("/by-number/:no", h.GetByNumber)
}
