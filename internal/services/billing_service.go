package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/models"
)

const (
	defaultBoostDays    = 7
	defaultCreditAmount = 10
)

type BillingService struct {
	DB *gorm.DB
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{DB: db}
}

func (s *BillingService) ListProducts() ([]models.Product, error) {
	var products []models.Product
	err := s.DB.Where("active = ?", true).Order("price ASC").Find(&products).Error
	return products, err
}

// CreateOrder snapshots the product price into the order so later price
// changes never alter what the gateway is expected to settle.
func (s *BillingService) CreateOrder(userID uuid.UUID, req *dtos.OrderCreateRequest) (*dtos.OrderRead, error) {
	var read *dtos.OrderRead
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		company, err := companyForUser(tx, userID)
		if err != nil {
			return err
		}

		var product models.Product
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("PRODUCT_NOT_FOUND", "product not found")
			}
			return err
		}
		if !product.Active {
			return apperr.Conflict("PRODUCT_INACTIVE", "product is no longer on sale")
		}

		order := models.Order{
			CompanyID: company.ID,
			ProductID: product.ID,
			Amount:    product.Price,
			Status:    models.OrderCreated,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		payment := models.Payment{OrderID: order.ID, Status: models.PaymentPending}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		read = &dtos.OrderRead{
			ID:          order.ID,
			CompanyID:   order.CompanyID,
			ProductID:   order.ProductID,
			ProductName: product.Name,
			Amount:      order.Amount,
			Status:      order.Status,
			CreatedAt:   order.CreatedAt,
			UpdatedAt:   order.UpdatedAt,
		}
		return nil
	})
	return read, err
}

func (s *BillingService) ListOrders(userID uuid.UUID, page dtos.PageQuery) (*dtos.ListResponse[dtos.OrderRead], error) {
	page.Clamp()

	company, err := companyForUser(s.DB, userID)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.DB.Model(&models.Order{}).Where("company_id = ?", company.ID).Count(&total).Error; err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := s.DB.Where("company_id = ?", company.ID).
		Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		productIDs = append(productIDs, o.ProductID)
	}
	nameByID := map[uuid.UUID]string{}
	if len(productIDs) > 0 {
		var products []models.Product
		if err := s.DB.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
			return nil, err
		}
		for _, p := range products {
			nameByID[p.ID] = p.Name
		}
	}

	items := make([]dtos.OrderRead, 0, len(orders))
	for _, o := range orders {
		items = append(items, dtos.OrderRead{
			ID:          o.ID,
			CompanyID:   o.CompanyID,
			ProductID:   o.ProductID,
			ProductName: nameByID[o.ProductID],
			Amount:      o.Amount,
			Status:      o.Status,
			CreatedAt:   o.CreatedAt,
			UpdatedAt:   o.UpdatedAt,
		})
	}
	return &dtos.ListResponse[dtos.OrderRead]{Items: items, Total: total}, nil
}

// errDuplicateDelivery rolls back a webhook transaction that lost the
// race on the pg_tid unique index.
var errDuplicateDelivery = errors.New("duplicate webhook delivery")

// ProcessWebhook settles a gateway callback. The pg_tid is the
// idempotency key: a replay of an already-settled transaction is
// acknowledged without touching state, with the unique index on pg_tid
// as the authoritative duplicate signal under concurrent deliveries.
// A success result is never downgraded by a later FAILED or CANCELLED
// delivery.
func (s *BillingService) ProcessWebhook(req *dtos.WebhookRequest) (*dtos.WebhookResult, error) {
	result := &dtos.WebhookResult{}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var settled int64
		if err := tx.Model(&models.Payment{}).
			Where("pg_tid = ? AND status <> ?", req.PGTID, models.PaymentPending).
			Count(&settled).Error; err != nil {
			return err
		}
		if settled > 0 {
			result.OK = true
			result.Message = "already processed"
			return nil
		}

		var order models.Order
		if err := tx.First(&order, "id = ?", req.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.OK = false
				result.Message = "order not found"
				return nil
			}
			return err
		}

		var payment models.Payment
		if err := tx.Where("order_id = ?", order.ID).
			Order("created_at DESC").
			First(&payment).Error; err != nil {
			return err
		}

		switch req.Status {
		case "PAID":
			if req.Amount != order.Amount {
				zap.L().Warn("webhook amount mismatch",
					zap.String("order_id", order.ID.String()),
					zap.Int("expected", order.Amount),
					zap.Int("got", req.Amount))
				result.OK = false
				result.Message = "amount mismatch"
				return nil
			}
			if order.Status == models.OrderPaid {
				result.OK = true
				result.Message = "already processed"
				return nil
			}

			now := time.Now().UTC()
			err := tx.Model(&payment).Updates(map[string]any{
				"status":  models.PaymentPaid,
				"pg_tid":  req.PGTID,
				"paid_at": now,
			}).Error
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicateDelivery
			}
			if err != nil {
				return err
			}
			if err := tx.Model(&order).Update("status", models.OrderPaid).Error; err != nil {
				return err
			}
			if err := s.grantEntitlement(tx, &order); err != nil {
				return err
			}
			result.OK = true
			result.Message = "paid"
			return nil

		default: // FAILED, CANCELLED
			if order.Status == models.OrderPaid {
				// A late failure callback for a settled order carries no signal.
				result.OK = true
				result.Message = "already processed"
				return nil
			}
			status := models.PaymentFailed
			if req.Status == "CANCELLED" {
				status = models.PaymentCancelled
			}
			err := tx.Model(&payment).Updates(map[string]any{
				"status": status,
				"pg_tid": req.PGTID,
			}).Error
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicateDelivery
			}
			if err != nil {
				return err
			}
			if err := tx.Model(&order).Update("status", models.OrderCancelled).Error; err != nil {
				return err
			}
			result.OK = true
			result.Message = "cancelled"
			return nil
		}
	})
	if errors.Is(err, errDuplicateDelivery) {
		return &dtos.WebhookResult{OK: true, Message: "already processed"}, nil
	}
	return result, err
}

// grantEntitlement turns a paid order into usable value: BOOST opens a
// dated window, CREDIT tops up the company's running balance.
func (s *BillingService) grantEntitlement(tx *gorm.DB, order *models.Order) error {
	var product models.Product
	if err := tx.First(&product, "id = ?", order.ProductID).Error; err != nil {
		return err
	}

	cfg := map[string]int{}
	if len(product.ConfigJSON) > 0 {
		if err := json.Unmarshal(product.ConfigJSON, &cfg); err != nil {
			return err
		}
	}

	switch product.Type {
	case models.ProductBoost:
		days := cfg["days"]
		if days <= 0 {
			days = defaultBoostDays
		}
		start := time.Now().UTC()
		end := start.AddDate(0, 0, days)
		ent := models.Entitlement{
			CompanyID: order.CompanyID,
			Type:      models.ProductBoost,
			StartAt:   &start,
			EndAt:     &end,
			OrderID:   &order.ID,
		}
		return tx.Create(&ent).Error

	case models.ProductCredit:
		credits := cfg["credits"]
		if credits <= 0 {
			credits = defaultCreditAmount
		}
		var ent models.Entitlement
		err := tx.Where("company_id = ? AND type = ?", order.CompanyID, models.ProductCredit).
			First(&ent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ent = models.Entitlement{
				CompanyID: order.CompanyID,
				Type:      models.ProductCredit,
				Balance:   credits,
				OrderID:   &order.ID,
			}
			return tx.Create(&ent).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&ent).
			UpdateColumn("balance", gorm.Expr("balance + ?", credits)).Error

	default:
		zap.L().Warn("unknown product type on paid order",
			zap.String("order_id", order.ID.String()),
			zap.String("product_type", product.Type))
		return nil
	}
}

// ListPayments returns the payment rows behind the company's orders.
func (s *BillingService) ListPayments(userID uuid.UUID, page dtos.PageQuery) (*dtos.ListResponse[models.Payment], error) {
	page.Clamp()

	company, err := companyForUser(s.DB, userID)
	if err != nil {
		return nil, err
	}

	base := s.DB.Model(&models.Payment{}).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.company_id = ?", company.ID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var payments []models.Payment
	if err := base.Select("payments.*").
		Order("payments.created_at DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return &dtos.ListResponse[models.Payment]{Items: payments, Total: total}, nil
}

func (s *BillingService) ListInvoices(userID uuid.UUID, page dtos.PageQuery) (*dtos.ListResponse[models.Invoice], error) {
	page.Clamp()

	company, err := companyForUser(s.DB, userID)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.DB.Model(&models.Invoice{}).Where("company_id = ?", company.ID).Count(&total).Error; err != nil {
		return nil, err
	}

	var invoices []models.Invoice
	if err := s.DB.Where("company_id = ?", company.ID).
		Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return &dtos.ListResponse[models.Invoice]{Items: invoices, Total: total}, nil
}

func (s *BillingService) ListEntitlements(userID uuid.UUID) ([]models.Entitlement, error) {
	company, err := companyForUser(s.DB, userID)
	if err != nil {
		return nil, err
	}
	var ents []models.Entitlement
	err = s.DB.Where("company_id = ?", company.ID).
		Order("created_at DESC").
		Find(&ents).Error
	return ents, err
}

// RequestInvoice files a tax-invoice request against a PAID order. One
// invoice per order.
func (s *BillingService) RequestInvoice(userID uuid.UUID, req *dtos.InvoiceRequest) (*models.Invoice, error) {
	var invoice *models.Invoice
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		company, err := companyForUser(tx, userID)
		if err != nil {
			return err
		}

		var order models.Order
		if err := tx.First(&order, "id = ?", req.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("NOT_FOUND", "order not found")
			}
			return err
		}
		if order.CompanyID != company.ID {
			return apperr.Forbidden("FORBIDDEN", "order belongs to another company")
		}
		if order.Status != models.OrderPaid {
			return apperr.Conflict("ORDER_NOT_PAID", "invoice requires a paid order")
		}

		var dup int64
		if err := tx.Model(&models.Invoice{}).Where("order_id = ?", order.ID).Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return apperr.Conflict("DUPLICATE_INVOICE", "invoice already requested for this order")
		}

		invoice = &models.Invoice{
			CompanyID:   company.ID,
			OrderID:     order.ID,
			Status:      "REQUESTED",
			RequestedAt: time.Now().UTC(),
		}
		return tx.Create(invoice).Error
	})
	return invoice, err
}
