package models

import (
	"time"

	"github.com/google/uuid"
)

type ResumeVisibility string

const (
	VisibilityPublic      ResumeVisibility = "PUBLIC"
	VisibilityPrivate     ResumeVisibility = "PRIVATE"
	VisibilityOnlyApplied ResumeVisibility = "ONLY_APPLIED"
)

type Resume struct {
	Base

	UserID            uuid.UUID        `gorm:"type:uuid;index;not null" json:"user_id"`
	Title             string           `gorm:"type:varchar(200);not null" json:"title"`
	Visibility        ResumeVisibility `gorm:"type:varchar(20);not null;default:'PRIVATE'" json:"visibility"`
	DesiredJob        string           `gorm:"type:varchar(50);index" json:"desired_job,omitempty"`
	DesiredRegion     string           `gorm:"type:varchar(10)" json:"desired_region,omitempty"`
	DesiredShift      string           `gorm:"type:varchar(20)" json:"desired_shift,omitempty"`
	DesiredSalaryType string           `gorm:"type:varchar(20)" json:"desired_salary_type,omitempty"`
	DesiredSalaryMin  *int             `json:"desired_salary_min,omitempty"`
	Summary           string           `gorm:"type:text" json:"summary,omitempty"`
	IsExperienced     bool             `gorm:"default:false" json:"is_experienced"`

	Licenses []ResumeLicense `gorm:"constraint:OnDelete:CASCADE" json:"licenses,omitempty"`
	Careers  []ResumeCareer  `gorm:"constraint:OnDelete:CASCADE" json:"careers,omitempty"`
}

type ResumeLicense struct {
	Base

	ResumeID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"resume_id"`
	LicenseType  string     `gorm:"type:varchar(100);not null" json:"license_type"`
	LicenseNoEnc string     `gorm:"type:varchar(500)" json:"-"`
	IssuedAt     *time.Time `json:"issued_at,omitempty"`
}

type ResumeCareer struct {
	Base

	ResumeID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"resume_id"`
	OrgName     string     `gorm:"type:varchar(200);not null" json:"org_name"`
	Role        string     `gorm:"type:varchar(100)" json:"role,omitempty"`
	Department  string     `gorm:"type:varchar(100)" json:"department,omitempty"`
	StartAt     time.Time  `gorm:"not null" json:"start_at"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
}
