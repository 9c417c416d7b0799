package dtos

import (
	"time"

	"github.com/medihire/medihire/internal/models"
)

type ResumeLicenseInput struct {
	LicenseType  string     `json:"license_type" binding:"required"`
	LicenseNoEnc string     `json:"license_no_enc"`
	IssuedAt     *time.Time `json:"issued_at"`
}

type ResumeCareerInput struct {
	OrgName     string     `json:"org_name" binding:"required"`
	Role        string     `json:"role"`
	Department  string     `json:"department"`
	StartAt     time.Time  `json:"start_at" binding:"required"`
	EndAt       *time.Time `json:"end_at"`
	Description string     `json:"description"`
}

type ResumeCreateRequest struct {
	Title             string                  `json:"title" binding:"required"`
	Visibility        models.ResumeVisibility `json:"visibility" binding:"omitempty,oneof=PUBLIC PRIVATE ONLY_APPLIED"`
	DesiredJob        string                  `json:"desired_job"`
	DesiredRegion     string                  `json:"desired_region"`
	DesiredShift      string                  `json:"desired_shift"`
	DesiredSalaryType string                  `json:"desired_salary_type"`
	DesiredSalaryMin  *int                    `json:"desired_salary_min"`
	Summary           string                  `json:"summary"`
	IsExperienced     bool                    `json:"is_experienced"`
	Licenses          []ResumeLicenseInput    `json:"licenses"`
	Careers           []ResumeCareerInput     `json:"careers"`
}

// ResumeUpdateRequest uses pointers so only supplied fields change;
// licenses/careers, when present, fully replace the stored collections.
type ResumeUpdateRequest struct {
	Title             *string               `json:"title"`
	DesiredJob        *string               `json:"desired_job"`
	DesiredRegion     *string               `json:"desired_region"`
	DesiredShift      *string               `json:"desired_shift"`
	DesiredSalaryType *string               `json:"desired_salary_type"`
	DesiredSalaryMin  *int                  `json:"desired_salary_min"`
	Summary           *string               `json:"summary"`
	IsExperienced     *bool                 `json:"is_experienced"`
	Licenses          *[]ResumeLicenseInput `json:"licenses"`
	Careers           *[]ResumeCareerInput  `json:"careers"`
}

type ResumeVisibilityRequest struct {
	Visibility models.ResumeVisibility `json:"visibility" binding:"required,oneof=PUBLIC PRIVATE ONLY_APPLIED"`
}
