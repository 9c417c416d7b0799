package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/medihire/medihire/internal/models"
)

type JobCreateRequest struct {
	Title          string     `json:"title" binding:"required"`
	Body           string     `json:"body"`
	JobCategory    string     `json:"job_category"`
	Department     string     `json:"department"`
	Specialty      string     `json:"specialty"`
	EmploymentType string     `json:"employment_type"`
	ShiftType      string     `json:"shift_type"`
	SalaryType     string     `json:"salary_type"`
	SalaryMin      *int       `json:"salary_min"`
	SalaryMax      *int       `json:"salary_max"`
	LocationCode   string     `json:"location_code"`
	LocationDetail string     `json:"location_detail"`
	ContactName    string     `json:"contact_name"`
	ContactVisible bool       `json:"contact_visible"`
	CloseAt        *time.Time `json:"close_at"`
}

// JobUpdateRequest: only supplied fields are diffed and applied.
type JobUpdateRequest struct {
	Title          *string    `json:"title"`
	Body           *string    `json:"body"`
	JobCategory    *string    `json:"job_category"`
	Department     *string    `json:"department"`
	Specialty      *string    `json:"specialty"`
	EmploymentType *string    `json:"employment_type"`
	ShiftType      *string    `json:"shift_type"`
	SalaryType     *string    `json:"salary_type"`
	SalaryMin      *int       `json:"salary_min"`
	SalaryMax      *int       `json:"salary_max"`
	LocationCode   *string    `json:"location_code"`
	LocationDetail *string    `json:"location_detail"`
	ContactName    *string    `json:"contact_name"`
	ContactVisible *bool      `json:"contact_visible"`
	CloseAt        *time.Time `json:"close_at"`
}

type JobSearchQuery struct {
	Keyword        string `form:"keyword"`
	LocationCode   string `form:"location_code"`
	JobCategory    string `form:"job_category"`
	ShiftType      string `form:"shift_type"`
	EmploymentType string `form:"employment_type"`
	SalaryMin      *int   `form:"salary_min"`
	Sort           string `form:"sort,default=LATEST"`
	PageQuery
}

type JobRead struct {
	models.JobPost
	CompanyName string `json:"company_name,omitempty"`
	CompanyType string `json:"company_type,omitempty"`
}

type JobListResponse struct {
	Items []JobRead `json:"items"`
	Page  int       `json:"page"`
	Size  int       `json:"size"`
	Total int64     `json:"total"`
}

type JobSitemapEntry struct {
	ID        uuid.UUID `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}
