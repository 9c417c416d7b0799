package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentStatus string
type OrderStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentRefunded  PaymentStatus = "REFUNDED"

	OrderCreated         OrderStatus = "CREATED"
	OrderPaid            OrderStatus = "PAID"
	OrderCancelled       OrderStatus = "CANCELLED"
	OrderRefundRequested OrderStatus = "REFUND_REQUESTED"
	OrderRefunded        OrderStatus = "REFUNDED"
)

// Product types: BOOST is a time-boxed window, CREDIT a countable pool.
const (
	ProductBoost  = "BOOST"
	ProductCredit = "CREDIT"
)

type Product struct {
	Base

	Type       string         `gorm:"type:varchar(30);index;not null" json:"type"`
	Name       string         `gorm:"type:varchar(200);not null" json:"name"`
	Price      int            `gorm:"not null" json:"price"`
	Currency   string         `gorm:"type:varchar(3);default:'KRW'" json:"currency"`
	ConfigJSON datatypes.JSON `json:"config,omitempty"`
	Active     bool           `gorm:"default:true" json:"active"`
}

type Order struct {
	Base

	CompanyID uuid.UUID   `gorm:"type:uuid;index;not null" json:"company_id"`
	ProductID uuid.UUID   `gorm:"type:uuid;not null" json:"product_id"`
	Amount    int         `gorm:"not null" json:"amount"`
	Status    OrderStatus `gorm:"type:varchar(20);not null;default:'CREATED'" json:"status"`
}

type Payment struct {
	Base

	OrderID uuid.UUID     `gorm:"type:uuid;index;not null" json:"order_id"`
	PG      string        `gorm:"column:pg;type:varchar(30)" json:"pg,omitempty"`
	// Nullable so the many PENDING rows without a gateway tid don't collide.
	PGTID   *string       `gorm:"column:pg_tid;type:varchar(100);uniqueIndex" json:"pg_tid,omitempty"`
	Status  PaymentStatus `gorm:"type:varchar(20);index;not null;default:'PENDING'" json:"status"`
	PaidAt  *time.Time    `json:"paid_at,omitempty"`
}

type Entitlement struct {
	Base

	CompanyID uuid.UUID  `gorm:"type:uuid;index;not null" json:"company_id"`
	Type      string     `gorm:"type:varchar(30);index;not null" json:"type"`
	Balance   int        `gorm:"default:0" json:"balance"`
	StartAt   *time.Time `json:"start_at,omitempty"`
	EndAt     *time.Time `json:"end_at,omitempty"`
	OrderID   *uuid.UUID `gorm:"type:uuid" json:"order_id,omitempty"`
}

type Invoice struct {
	Base

	CompanyID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"company_id"`
	OrderID     uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"order_id"`
	Status      string     `gorm:"type:varchar(20);default:'REQUESTED'" json:"status"`
	RequestedAt time.Time  `gorm:"not null" json:"requested_at"`
	IssuedAt    *time.Time `json:"issued_at,omitempty"`
}
