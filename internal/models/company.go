package models

import "github.com/google/uuid"

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationApproved VerificationStatus = "APPROVED"
	VerificationRejected VerificationStatus = "REJECTED"
)

type Company struct {
	Base

	BusinessNo string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"business_no"`
	Name       string     `gorm:"type:varchar(200);not null" json:"name"`
	Type       string     `gorm:"type:varchar(50)" json:"type,omitempty"`
	Address    string     `gorm:"type:varchar(500)" json:"address,omitempty"`
	Status     UserStatus `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`

	// 'omitempty' prevents cycles when serializing Company -> Users -> Company.
	Users []CompanyUser `json:"users,omitempty"`
}

// CompanyUser is the membership bridge between users and companies.
type CompanyUser struct {
	Base

	CompanyID uuid.UUID `gorm:"type:uuid;index;not null" json:"company_id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Role      string    `gorm:"type:varchar(30);default:'OWNER'" json:"role"`
}

type CompanyVerification struct {
	Base

	CompanyID    uuid.UUID          `gorm:"type:uuid;index;not null" json:"company_id"`
	Status       VerificationStatus `gorm:"type:varchar(20);index;not null;default:'PENDING'" json:"status"`
	RejectReason string             `gorm:"type:text" json:"reject_reason,omitempty"`
	FileKey      string             `gorm:"type:varchar(500)" json:"file_key,omitempty"`
	ReviewedBy   *uuid.UUID         `gorm:"type:uuid" json:"reviewed_by,omitempty"`
}
