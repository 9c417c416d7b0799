package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification kinds written by the workflows.
const (
	NotifApplicationReceived = "APPLICATION_RECEIVED"
	NotifStatusChanged       = "STATUS_CHANGED"
	NotifScoutReceived       = "SCOUT_RECEIVED"
	NotifScoutResponded      = "SCOUT_RESPONDED"
)

type Notification struct {
	Base

	UserID      uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	Type        string         `gorm:"type:varchar(30);not null" json:"type"`
	Channel     string         `gorm:"type:varchar(20);not null;default:'IN_APP'" json:"channel"`
	PayloadJSON datatypes.JSON `json:"payload,omitempty"`
	Status      string         `gorm:"type:varchar(20);default:'UNREAD'" json:"status"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
}
