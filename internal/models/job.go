package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type JobPostStatus string

const (
	JobDraft     JobPostStatus = "DRAFT"
	JobPublished JobPostStatus = "PUBLISHED"
	JobClosed    JobPostStatus = "CLOSED"
	JobBlinded   JobPostStatus = "BLINDED"
	JobExpired   JobPostStatus = "EXPIRED"
)

// Job post history actions.
const (
	JobActionCreate  = "CREATE"
	JobActionUpdate  = "UPDATE"
	JobActionPublish = "PUBLISH"
	JobActionClose   = "CLOSE"
	JobActionBlind   = "BLIND"
	JobActionUnblind = "UNBLIND"
)

type JobPost struct {
	Base

	CompanyID uuid.UUID     `gorm:"type:uuid;index;not null" json:"company_id"`
	Status    JobPostStatus `gorm:"type:varchar(20);index;not null;default:'DRAFT'" json:"status"`
	Title     string        `gorm:"type:varchar(300);not null" json:"title"`
	Body      string        `gorm:"type:text" json:"body,omitempty"`

	JobCategory    string `gorm:"type:varchar(50);index" json:"job_category,omitempty"`
	Department     string `gorm:"type:varchar(100)" json:"department,omitempty"`
	Specialty      string `gorm:"type:varchar(100)" json:"specialty,omitempty"`
	EmploymentType string `gorm:"type:varchar(20)" json:"employment_type,omitempty"`
	ShiftType      string `gorm:"type:varchar(20)" json:"shift_type,omitempty"`

	SalaryType string `gorm:"type:varchar(20)" json:"salary_type,omitempty"`
	SalaryMin  *int   `json:"salary_min,omitempty"`
	SalaryMax  *int   `json:"salary_max,omitempty"`

	LocationCode   string `gorm:"type:varchar(10);index" json:"location_code,omitempty"`
	LocationDetail string `gorm:"type:varchar(500)" json:"location_detail,omitempty"`

	ContactName    string `gorm:"type:varchar(50)" json:"contact_name,omitempty"`
	ContactVisible bool   `gorm:"default:false" json:"contact_visible"`

	PublishedAt *time.Time `json:"published_at,omitempty"`
	CloseAt     *time.Time `json:"close_at,omitempty"`

	ViewCount int `gorm:"default:0" json:"view_count"`

	Company Company `json:"company,omitempty"`
}

// JobPostHistory is append-only: one row per CREATE/UPDATE/PUBLISH/CLOSE/
// BLIND/UNBLIND action, never mutated afterwards.
type JobPostHistory struct {
	Base

	JobPostID uuid.UUID      `gorm:"type:uuid;index;not null" json:"job_post_id"`
	ChangedBy *uuid.UUID     `gorm:"type:uuid" json:"changed_by,omitempty"`
	Action    string         `gorm:"type:varchar(30);not null" json:"action"`
	DiffJSON  datatypes.JSON `json:"diff_json,omitempty"`
}
