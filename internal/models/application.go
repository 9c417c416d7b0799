package models

import "github.com/google/uuid"

type ApplicationStatus string

const (
	ApplicationReceived  ApplicationStatus = "RECEIVED"
	ApplicationReviewing ApplicationStatus = "REVIEWING"
	ApplicationInterview ApplicationStatus = "INTERVIEW"
	ApplicationOffered   ApplicationStatus = "OFFERED"
	ApplicationHired     ApplicationStatus = "HIRED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
	ApplicationOnHold    ApplicationStatus = "ON_HOLD"
)

// IsFinal reports whether no further status change is permitted.
func (s ApplicationStatus) IsFinal() bool {
	return s == ApplicationHired || s == ApplicationRejected
}

type Application struct {
	Base

	JobPostID       uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uq_applications_job_user" json:"job_post_id"`
	ApplicantUserID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uq_applications_job_user" json:"applicant_user_id"`
	ResumeID        *uuid.UUID        `gorm:"type:uuid" json:"resume_id,omitempty"`
	Status          ApplicationStatus `gorm:"type:varchar(20);index;not null;default:'RECEIVED'" json:"status"`

	StatusHistory []ApplicationStatusHistory `json:"status_history,omitempty"`
	Notes         []ApplicationNote          `json:"notes,omitempty"`
}

type ApplicationStatusHistory struct {
	Base

	ApplicationID uuid.UUID          `gorm:"type:uuid;index;not null" json:"application_id"`
	FromStatus    *ApplicationStatus `gorm:"type:varchar(30)" json:"from_status,omitempty"`
	ToStatus      ApplicationStatus  `gorm:"type:varchar(30);not null" json:"to_status"`
	ChangedBy     *uuid.UUID         `gorm:"type:uuid" json:"changed_by,omitempty"`
	Note          string             `gorm:"type:text" json:"note,omitempty"`
}

// ApplicationNote is company-authored and never exposed to the applicant.
type ApplicationNote struct {
	Base

	ApplicationID uuid.UUID `gorm:"type:uuid;index;not null" json:"application_id"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null" json:"company_id"`
	AuthorUserID  uuid.UUID `gorm:"type:uuid;not null" json:"author_user_id"`
	Note          string    `gorm:"type:text;not null" json:"note"`
}
