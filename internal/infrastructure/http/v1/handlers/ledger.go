package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/documents/payment"
	"bahikhata/internal/domain/registers/ledger"
	"bahikhata/internal/infrastructure/http/v1/dto"
)

// LedgerHandler handles payment recording and derived balance queries.
type LedgerHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(base *BaseHandler, service *ledger.Service) *LedgerHandler {
	return &LedgerHandler{BaseHandler: base, service: service}
}

// RecordPayment handles POST /document/payments.
func (h *LedgerHandler) RecordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.ApplyPayment(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ListPayments handles GET /document/payments.
func (h *LedgerHandler) ListPayments(c *gin.Context) {
	var dates dto.DateRangeQuery
	if !h.BindQuery(c, &dates) {
		return
	}

	filter := payment.ListFilter{
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
	if invoiceID := c.Query("invoiceId"); invoiceID != "" {
		parsed, err := id.Parse(invoiceID)
		if err == nil {
			filter.InvoiceID = &parsed
		}
	}

	items, err := h.service.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": items})
}

// GetBalance handles GET /registers/ledger/balance/:customerId.
// An optional asOf query computes the balance at a historical point.
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	customerID, ok := h.ParseID(c, "customerId")
	if !ok {
		return
	}

	var asOf *time.Time
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err == nil {
			asOf = &parsed
		}
	}

	balance, err := h.service.GetBalance(c.Request.Context(), customerID, asOf)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, balance)
}

// GetInvoiceOutstanding handles GET /registers/ledger/invoice/:invoiceId.
func (h *LedgerHandler) GetInvoiceOutstanding(c *gin.Context) {
	invoiceID, ok := h.ParseID(c, "invoiceId")
	if !ok {
		return
	}

	outstanding, err := h.service.GetInvoiceOutstanding(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, outstanding)
}

// RegisterPaymentRoutes registers payment document routes.
func (h *LedgerHandler) RegisterPaymentRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListPayments)
	rg.POST("", h.RecordPayment)
}

// RegisterLedgerRoutes registers ledger register routes.
func (h *LedgerHandler) RegisterLedgerRoutes(rg *gin.RouterGroup) {
	rg.GET("/balance/:customerId", h.GetBalance)
	rg.GET("/invoice/:invoiceId", h.GetInvoiceOutstanding)
}
