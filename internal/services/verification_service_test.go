package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/models"
)

func TestVerificationSubmitOncePending(t *testing.T) {
	db := testDB(t)
	svc := NewVerificationService(db)
	user, _ := seedCompany(t, db, "hr@h.com", "111")

	first, err := svc.Submit(user.ID, &dtos.VerificationSubmitRequest{FileKey: "doc-1"})
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPending, first.Status)

	_, err = svc.Submit(user.ID, &dtos.VerificationSubmitRequest{FileKey: "doc-2"})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DUPLICATE_PENDING", appErr.Code)
}

func TestVerificationApproveUpgradesRoles(t *testing.T) {
	db := testDB(t)
	svc := NewVerificationService(db)
	admin := seedAdmin(t, db)
	user, company := seedCompany(t, db, "hr@h.com", "111")

	// A second member of the same company, also unverified.
	second := &models.User{
		Type: models.UserTypeCompany, Email: "hr2@h.com", PasswordHash: "x",
		Status: models.UserStatusActive, Role: models.RoleCompanyUnverified,
	}
	require.NoError(t, db.Create(second).Error)
	require.NoError(t, db.Create(&models.CompanyUser{CompanyID: company.ID, UserID: second.ID, Role: "MEMBER"}).Error)

	// An unrelated company member stays untouched.
	otherUser, _ := seedCompany(t, db, "hr@other.com", "222")

	submitted, err := svc.Submit(user.ID, &dtos.VerificationSubmitRequest{FileKey: "doc-1"})
	require.NoError(t, err)

	reviewed, err := svc.Review(admin.ID, submitted.ID, &dtos.VerificationReviewRequest{
		Status: models.VerificationApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, models.VerificationApproved, reviewed.Status)

	for _, id := range []string{user.ID.String(), second.ID.String()} {
		var u models.User
		require.NoError(t, db.First(&u, "id = ?", id).Error)
		assert.Equal(t, models.RoleCompanyVerified, u.Role)
	}
	var other models.User
	require.NoError(t, db.First(&other, "id = ?", otherUser.ID).Error)
	assert.Equal(t, models.RoleCompanyUnverified, other.Role)

	// Decision lands in the audit trail.
	var logs []models.AdminLog
	require.NoError(t, db.Where("admin_user_id = ?", admin.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "VERIFICATION_APPROVED", logs[0].Action)
}

func TestVerificationReject(t *testing.T) {
	db := testDB(t)
	svc := NewVerificationService(db)
	admin := seedAdmin(t, db)
	user, _ := seedCompany(t, db, "hr@h.com", "111")

	submitted, err := svc.Submit(user.ID, &dtos.VerificationSubmitRequest{FileKey: "doc-1"})
	require.NoError(t, err)

	reviewed, err := svc.Review(admin.ID, submitted.ID, &dtos.VerificationReviewRequest{
		Status:       models.VerificationRejected,
		RejectReason: "document unreadable",
	})
	require.NoError(t, err)
	assert.Equal(t, "document unreadable", reviewed.RejectReason)

	// Role stays unverified, and the company may resubmit.
	var u models.User
	require.NoError(t, db.First(&u, "id = ?", user.ID).Error)
	assert.Equal(t, models.RoleCompanyUnverified, u.Role)

	_, err = svc.Submit(user.ID, &dtos.VerificationSubmitRequest{FileKey: "doc-2"})
	require.NoError(t, err)
}

func TestVerificationRejectWithoutReason(t *testing.T) {
	db := testDB(t)
	svc := NewVerificationService(db)
	admin := seedAdmin(t, db)
	user, _ := seedCompany(t, db, "hr@h.com", "111")

	submitted, err := svc.Submit(user.ID, &dtos.VerificationSubmitRequest{FileKey: "doc-1"})
	require.NoError(t, err)

	reviewed, err := svc.Review(admin.ID, submitted.ID, &dtos.VerificationReviewRequest{
		Status: models.VerificationRejected,
	})
	require.NoError(t, err)
	assert.Equal(t, models.VerificationRejected, reviewed.Status)
	assert.Empty(t, reviewed.RejectReason)

	var stored models.CompanyVerification
	require.NoError(t, db.First(&stored, "id = ?", submitted.ID).Error)
	assert.Empty(t, stored.RejectReason)
}

func TestVerificationReviewTwice(t *testing.T) {
	db := testDB(t)
	svc := NewVerificationService(db)
	admin := seedAdmin(t, db)
	user, _ := seedCompany(t, db, "hr@h.com", "111")

	submitted, err := svc.Submit(user.ID, &dtos.VerificationSubmitRequest{FileKey: "doc-1"})
	require.NoError(t, err)

	_, err = svc.Review(admin.ID, submitted.ID, &dtos.VerificationReviewRequest{Status: models.VerificationApproved})
	require.NoError(t, err)

	_, err = svc.Review(admin.ID, submitted.ID, &dtos.VerificationReviewRequest{Status: models.VerificationRejected})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ALREADY_PROCESSED", appErr.Code)
}

func TestVerificationSubmitAfterApproved(t *testing.T) {
	db := testDB(t)
	svc := NewVerificationService(db)
	user, company := seedCompany(t, db, "hr@h.com", "111")
	approveCompany(t, db, company.ID)

	_, err := svc.Submit(user.ID, &dtos.VerificationSubmitRequest{FileKey: "doc-1"})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ALREADY_APPROVED", appErr.Code)
}
