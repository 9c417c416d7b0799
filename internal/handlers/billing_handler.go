package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/middleware"
	"github.com/medihire/medihire/internal/services"
)

type BillingHandler struct {
	Billing *services.BillingService
}

func NewBillingHandler(billing *services.BillingService) *BillingHandler {
	return &BillingHandler{Billing: billing}
}

// ListProducts is GET /billing/products.
func (h *BillingHandler) ListProducts(c *gin.Context) {
	products, err := h.Billing.ListProducts()
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": products})
}

// CreateOrder is POST /billing/orders.
func (h *BillingHandler) CreateOrder(c *gin.Context) {
	var req dtos.OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	order, err := h.Billing.CreateOrder(middleware.UserIDFrom(c), &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListOrders is GET /billing/orders.
func (h *BillingHandler) ListOrders(c *gin.Context) {
	var page dtos.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Billing.ListOrders(middleware.UserIDFrom(c), page)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListPayments is GET /billing/payments.
func (h *BillingHandler) ListPayments(c *gin.Context) {
	var page dtos.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Billing.ListPayments(middleware.UserIDFrom(c), page)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListEntitlements is GET /billing/entitlements.
func (h *BillingHandler) ListEntitlements(c *gin.Context) {
	ents, err := h.Billing.ListEntitlements(middleware.UserIDFrom(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": ents})
}

// RequestInvoice is POST /billing/invoices.
func (h *BillingHandler) RequestInvoice(c *gin.Context) {
	var req dtos.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	invoice, err := h.Billing.RequestInvoice(middleware.UserIDFrom(c), &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

// ListInvoices is GET /billing/invoices.
func (h *BillingHandler) ListInvoices(c *gin.Context) {
	var page dtos.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Billing.ListInvoices(middleware.UserIDFrom(c), page)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Webhook is POST /billing/webhook, called by the payment gateway
// without authentication. Business rejections come back 200 with
// ok=false so the gateway stops retrying.
func (h *BillingHandler) Webhook(c *gin.Context) {
	var req dtos.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	result, err := h.Billing.ProcessWebhook(&req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
