package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base holds the fields shared by every table: UUID primary key plus
// created/updated timestamps maintained by GORM.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the UUID so the key works the same on Postgres
// and on the sqlite test database.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// All returns every model in migration order.
func All() []any {
	return []any{
		&User{}, &UserProfile{},
		&Company{}, &CompanyUser{}, &CompanyVerification{},
		&Resume{}, &ResumeLicense{}, &ResumeCareer{},
		&JobPost{}, &JobPostHistory{},
		&Application{}, &ApplicationStatusHistory{}, &ApplicationNote{},
		&Favorite{}, &Scout{},
		&Notification{},
		&Product{}, &Order{}, &Payment{}, &Entitlement{}, &Invoice{},
		&Report{}, &AdminLog{},
	}
}
