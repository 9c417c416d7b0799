package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/medihire/medihire/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	// One in-memory database per test, shared across the pool's connections.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedPerson(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Type:         models.UserTypePerson,
		Email:        email,
		PasswordHash: "x",
		Status:       models.UserStatusActive,
		Role:         models.RolePerson,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.UserProfile{UserID: user.ID, Name: "Test Person"}).Error)
	return user
}

func seedCompany(t *testing.T, db *gorm.DB, email, businessNo string) (*models.User, *models.Company) {
	t.Helper()
	user := &models.User{
		Type:         models.UserTypeCompany,
		Email:        email,
		PasswordHash: "x",
		Status:       models.UserStatusActive,
		Role:         models.RoleCompanyUnverified,
	}
	require.NoError(t, db.Create(user).Error)
	company := &models.Company{BusinessNo: businessNo, Name: "Test Hospital", Status: models.UserStatusActive}
	require.NoError(t, db.Create(company).Error)
	require.NoError(t, db.Create(&models.CompanyUser{CompanyID: company.ID, UserID: user.ID, Role: "OWNER"}).Error)
	return user, company
}

func seedAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Type:         models.UserTypePerson,
		Email:        "admin@medihire.test",
		PasswordHash: "x",
		Status:       models.UserStatusActive,
		Role:         models.RoleAdmin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func approveCompany(t *testing.T, db *gorm.DB, companyID uuid.UUID) {
	t.Helper()
	v := &models.CompanyVerification{CompanyID: companyID, Status: models.VerificationApproved, FileKey: "f"}
	require.NoError(t, db.Create(v).Error)
}

func seedPublishedJob(t *testing.T, db *gorm.DB, companyID uuid.UUID, title string) *models.JobPost {
	t.Helper()
	now := time.Now().UTC()
	job := &models.JobPost{
		CompanyID:      companyID,
		Status:         models.JobPublished,
		Title:          title,
		JobCategory:    "NURSE",
		EmploymentType: "FULL_TIME",
		LocationCode:   "11",
		PublishedAt:    &now,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func seedResume(t *testing.T, db *gorm.DB, userID uuid.UUID, visibility models.ResumeVisibility) *models.Resume {
	t.Helper()
	resume := &models.Resume{
		UserID:     userID,
		Title:      "RN resume",
		Visibility: visibility,
		DesiredJob: "NURSE",
	}
	require.NoError(t, db.Create(resume).Error)
	return resume
}
