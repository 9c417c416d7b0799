package models

import "github.com/google/uuid"

type ScoutStatus string

const (
	ScoutSent     ScoutStatus = "SENT"
	ScoutViewed   ScoutStatus = "VIEWED"
	ScoutAccepted ScoutStatus = "ACCEPTED"
	ScoutRejected ScoutStatus = "REJECTED"
	ScoutHold     ScoutStatus = "HOLD"
)

// IsFinal reports whether the recipient has already responded.
func (s ScoutStatus) IsFinal() bool {
	return s == ScoutAccepted || s == ScoutRejected
}

type Favorite struct {
	Base

	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_favorites_user_job" json:"user_id"`
	JobPostID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_favorites_user_job" json:"job_post_id"`
}

// Scout is a company-initiated contact to the owner of a public resume.
type Scout struct {
	Base

	CompanyID uuid.UUID   `gorm:"type:uuid;index;not null" json:"company_id"`
	UserID    uuid.UUID   `gorm:"type:uuid;index;not null" json:"user_id"`
	JobPostID *uuid.UUID  `gorm:"type:uuid" json:"job_post_id,omitempty"`
	Status    ScoutStatus `gorm:"type:varchar(20);index;not null;default:'SENT'" json:"status"`
	Message   string      `gorm:"type:text" json:"message,omitempty"`
}
