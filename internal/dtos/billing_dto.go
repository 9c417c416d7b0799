package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/medihire/medihire/internal/models"
)

type OrderCreateRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

type OrderRead struct {
	ID          uuid.UUID          `json:"id"`
	CompanyID   uuid.UUID          `json:"company_id"`
	ProductID   uuid.UUID          `json:"product_id"`
	ProductName string             `json:"product_name,omitempty"`
	Amount      int                `json:"amount"`
	Status      models.OrderStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// WebhookRequest is the payment-gateway callback payload. The endpoint is
// unauthenticated; failures are soft so the gateway stops retrying.
type WebhookRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
	PGTID   string    `json:"pg_tid" binding:"required"`
	Amount  int       `json:"amount"`
	Status  string    `json:"status" binding:"required,oneof=PAID FAILED CANCELLED"`
}

type WebhookResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type InvoiceRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}
