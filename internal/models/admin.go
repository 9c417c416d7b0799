package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "PENDING"
	ReportProcessed ReportStatus = "PROCESSED"
)

// Report target types and processing actions.
const (
	TargetJob          = "JOB"
	TargetUser         = "USER"
	TargetCompany      = "COMPANY"
	TargetVerification = "VERIFICATION"
	TargetReport       = "REPORT"

	ReportActionBlind   = "BLIND"
	ReportActionWarn    = "WARN"
	ReportActionDismiss = "DISMISS"
)

type Report struct {
	Base

	TargetType     string       `gorm:"type:varchar(30);not null" json:"target_type"`
	TargetID       uuid.UUID    `gorm:"type:uuid;not null" json:"target_id"`
	ReporterUserID *uuid.UUID   `gorm:"type:uuid" json:"reporter_user_id,omitempty"`
	ReasonCode     string       `gorm:"type:varchar(50);not null" json:"reason_code"`
	Detail         string       `gorm:"type:text" json:"detail,omitempty"`
	Status         ReportStatus `gorm:"type:varchar(20);index;default:'PENDING'" json:"status"`
}

// AdminLog is the append-only audit trail of admin-initiated mutations.
// Rows are never updated or deleted.
type AdminLog struct {
	Base

	AdminUserID uuid.UUID      `gorm:"type:uuid;index;not null" json:"admin_user_id"`
	Action      string         `gorm:"type:varchar(50);not null" json:"action"`
	TargetType  string         `gorm:"type:varchar(30)" json:"target_type,omitempty"`
	TargetID    *uuid.UUID     `gorm:"type:uuid" json:"target_id,omitempty"`
	MetaJSON    datatypes.JSON `json:"meta,omitempty"`
}
