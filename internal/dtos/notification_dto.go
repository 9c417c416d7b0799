package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/medihire/medihire/internal/models"
)

type NotificationListResponse struct {
	Items       []models.Notification `json:"items"`
	UnreadCount int64                 `json:"unread_count"`
}

type FavoriteRead struct {
	ID           uuid.UUID  `json:"id"`
	JobPostID    uuid.UUID  `json:"job_post_id"`
	JobTitle     string     `json:"job_title"`
	CompanyName  string     `json:"company_name,omitempty"`
	LocationCode string     `json:"location_code,omitempty"`
	CloseAt      *time.Time `json:"close_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
