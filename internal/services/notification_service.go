package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/models"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// Create inserts an in-app notification on the caller's transaction, so
// it commits or rolls back together with the triggering workflow.
func (s *NotificationService) Create(tx *gorm.DB, userID uuid.UUID, ntype string, payload map[string]any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	notif := models.Notification{
		UserID:      userID,
		Type:        ntype,
		Channel:     "IN_APP",
		PayloadJSON: raw,
		Status:      "UNREAD",
	}
	return tx.Create(&notif).Error
}

func (s *NotificationService) List(userID uuid.UUID, page dtos.PageQuery) (*dtos.NotificationListResponse, error) {
	page.Clamp()

	var unread int64
	if err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&unread).Error; err != nil {
		return nil, err
	}

	var items []models.Notification
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return &dtos.NotificationListResponse{Items: items, UnreadCount: unread}, nil
}

func (s *NotificationService) MarkRead(userID, notificationID uuid.UUID) error {
	var notif models.Notification
	if err := s.DB.First(&notif, "id = ?", notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("NOT_FOUND", "notification not found")
		}
		return err
	}
	if notif.UserID != userID {
		return apperr.Forbidden("FORBIDDEN", "not your notification")
	}
	if notif.ReadAt != nil {
		return nil
	}
	now := time.Now().UTC()
	return s.DB.Model(&notif).Updates(map[string]any{"read_at": now, "status": "READ"}).Error
}

// MarkAllRead flips every unread notification in one UPDATE and returns
// the affected row count.
func (s *NotificationService) MarkAllRead(userID uuid.UUID) (int64, error) {
	res := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Updates(map[string]any{"read_at": time.Now().UTC(), "status": "READ"})
	return res.RowsAffected, res.Error
}
