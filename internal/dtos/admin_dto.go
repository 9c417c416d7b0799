package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/medihire/medihire/internal/models"
)

type ReportCreateRequest struct {
	TargetType string    `json:"target_type" binding:"required,oneof=JOB USER COMPANY"`
	TargetID   uuid.UUID `json:"target_id" binding:"required"`
	ReasonCode string    `json:"reason_code" binding:"required"`
	Detail     string    `json:"detail"`
}

type ReportProcessRequest struct {
	Action string `json:"action" binding:"required,oneof=BLIND WARN DISMISS"`
	Note   string `json:"note"`
}

type VerificationSubmitRequest struct {
	FileKey string `json:"file_key" binding:"required"`
}

type VerificationReviewRequest struct {
	Status       models.VerificationStatus `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	RejectReason string                    `json:"reject_reason"`
}

type VerificationRead struct {
	ID                uuid.UUID                 `json:"id"`
	CompanyID         uuid.UUID                 `json:"company_id"`
	CompanyName       string                    `json:"company_name,omitempty"`
	CompanyBusinessNo string                    `json:"company_business_no,omitempty"`
	Status            models.VerificationStatus `json:"status"`
	FileKey           string                    `json:"file_key,omitempty"`
	RejectReason      string                    `json:"reject_reason,omitempty"`
	ReviewedBy        *uuid.UUID                `json:"reviewed_by,omitempty"`
	CreatedAt         time.Time                 `json:"created_at"`
	UpdatedAt         time.Time                 `json:"updated_at"`
}

type UserStatusRequest struct {
	Status models.UserStatus `json:"status" binding:"required,oneof=ACTIVE SUSPENDED DELETED DORMANT"`
	Reason string            `json:"reason"`
}

type UserAdminFilter struct {
	Type    models.UserType   `form:"type"`
	Status  models.UserStatus `form:"status"`
	Keyword string            `form:"keyword"`
	PageQuery
}

type AdminDashboard struct {
	PendingVerifications int64 `json:"pending_verifications"`
	PendingReports       int64 `json:"pending_reports"`
	PublishedJobs        int64 `json:"published_jobs"`
	TotalUsers           int64 `json:"total_users"`
	TodayApplications    int64 `json:"today_applications"`
}

type JobModerationItem struct {
	ID          uuid.UUID            `json:"id"`
	CompanyName string               `json:"company_name,omitempty"`
	Title       string               `json:"title"`
	Status      models.JobPostStatus `json:"status"`
	PublishedAt *time.Time           `json:"published_at,omitempty"`
	ViewCount   int                  `json:"view_count"`
	ReportCount int64                `json:"report_count"`
}
