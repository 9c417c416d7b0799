package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/medihire/medihire/internal/models"
)

type ScoutCreateRequest struct {
	ResumeID  uuid.UUID  `json:"resume_id" binding:"required"`
	JobPostID *uuid.UUID `json:"job_post_id"`
	Message   string     `json:"message"`
}

type ScoutRespondRequest struct {
	Status models.ScoutStatus `json:"status" binding:"required,oneof=ACCEPTED REJECTED HOLD"`
}

type ScoutFilter struct {
	Status models.ScoutStatus `form:"status"`
	PageQuery
}

type ScoutRead struct {
	ID          uuid.UUID          `json:"id"`
	CompanyID   uuid.UUID          `json:"company_id"`
	CompanyName string             `json:"company_name,omitempty"`
	UserID      uuid.UUID          `json:"user_id"`
	JobPostID   *uuid.UUID         `json:"job_post_id,omitempty"`
	JobTitle    string             `json:"job_title,omitempty"`
	Status      models.ScoutStatus `json:"status"`
	Message     string             `json:"message,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type TalentSearchQuery struct {
	Keyword       string `form:"keyword"`
	DesiredJob    string `form:"desired_job"`
	DesiredRegion string `form:"desired_region"`
	IsExperienced *bool  `form:"is_experienced"`
	PageQuery
}

// TalentSummary is an anonymized projection of a public resume.
type TalentSummary struct {
	ID             uuid.UUID `json:"id"`
	DesiredJob     string    `json:"desired_job,omitempty"`
	DesiredRegion  string    `json:"desired_region,omitempty"`
	IsExperienced  bool      `json:"is_experienced"`
	LicenseTypes   []string  `json:"license_types"`
	CareerCount    int       `json:"career_count"`
	SummaryPreview string    `json:"summary_preview,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
