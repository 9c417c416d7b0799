package models

import "github.com/google/uuid"

type UserType string
type UserStatus string
type Role string

const (
	UserTypePerson  UserType = "PERSON"
	UserTypeCompany UserType = "COMPANY"

	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
	UserStatusDeleted   UserStatus = "DELETED"
	UserStatusDormant   UserStatus = "DORMANT"

	RoleGuest             Role = "GUEST"
	RolePerson            Role = "PERSON"
	RoleCompanyUnverified Role = "COMPANY_UNVERIFIED"
	RoleCompanyVerified   Role = "COMPANY_VERIFIED"
	RoleAdmin             Role = "ADMIN"
	RoleCS                Role = "CS"
	RoleSales             Role = "SALES"
)

type User struct {
	Base

	Type           UserType   `gorm:"type:varchar(20);not null" json:"type"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone          string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	PasswordHash   string     `gorm:"not null" json:"-"`
	Status         UserStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	Role           Role       `gorm:"type:varchar(30);not null;default:'PERSON'" json:"role"`
	AgreeTerms     bool       `gorm:"default:false" json:"agree_terms"`
	AgreeMarketing bool       `gorm:"default:false" json:"agree_marketing"`

	Profile *UserProfile `json:"profile,omitempty"`
}

type UserProfile struct {
	Base

	UserID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Name       string    `gorm:"type:varchar(50)" json:"name"`
	BirthYear  *int      `json:"birth_year,omitempty"`
	RegionCode string    `gorm:"type:varchar(10);index" json:"region_code,omitempty"`
}
