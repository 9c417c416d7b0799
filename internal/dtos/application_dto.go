package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/medihire/medihire/internal/models"
)

type ApplyRequest struct {
	ResumeID uuid.UUID `json:"resume_id" binding:"required"`
}

type ApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required,oneof=RECEIVED REVIEWING INTERVIEW OFFERED HIRED REJECTED ON_HOLD"`
	Note   string                   `json:"note"`
}

type ApplicationNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

type ApplicantFilter struct {
	JobPostID *uuid.UUID               `form:"job_post_id"`
	Status    models.ApplicationStatus `form:"status"`
	PageQuery
}

type ApplicationRead struct {
	ID              uuid.UUID                `json:"id"`
	JobPostID       uuid.UUID                `json:"job_post_id"`
	JobTitle        string                   `json:"job_title,omitempty"`
	CompanyName     string                   `json:"company_name,omitempty"`
	ApplicantUserID uuid.UUID                `json:"applicant_user_id"`
	ApplicantName   string                   `json:"applicant_name,omitempty"`
	ResumeID        *uuid.UUID               `json:"resume_id,omitempty"`
	Status          models.ApplicationStatus `json:"status"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

type ApplicationDetailRead struct {
	ApplicationRead
	StatusHistory []models.ApplicationStatusHistory `json:"status_history"`
	Notes         []models.ApplicationNote          `json:"notes"`
}
