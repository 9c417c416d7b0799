package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/auth"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/models"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	tokens := auth.NewTokenIssuer("test-secret", 15*time.Minute, 14*24*time.Hour)
	return NewAuthService(testDB(t), tokens)
}

func TestSignupPerson(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Signup(&dtos.SignupRequest{
		Type:     models.UserTypePerson,
		Email:    "Nurse@Example.com",
		Password: "password1",
		Name:     "Kim",
	})
	require.NoError(t, err)
	assert.Equal(t, "nurse@example.com", resp.User.Email)
	assert.Equal(t, models.RolePerson, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	var profile models.UserProfile
	require.NoError(t, svc.DB.First(&profile, "user_id = ?", resp.User.ID).Error)
	assert.Equal(t, "Kim", profile.Name)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	req := &dtos.SignupRequest{Type: models.UserTypePerson, Email: "dup@example.com", Password: "password1"}
	_, err := svc.Signup(req)
	require.NoError(t, err)

	_, err = svc.Signup(req)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DUPLICATE_EMAIL", appErr.Code)
}

func TestSignupCompany(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Signup(&dtos.SignupRequest{
		Type:        models.UserTypeCompany,
		Email:       "hr@hospital.com",
		Password:    "password1",
		BusinessNo:  "123-45-67890",
		CompanyName: "Seoul General",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCompanyUnverified, resp.User.Role)

	var membership models.CompanyUser
	require.NoError(t, svc.DB.First(&membership, "user_id = ?", resp.User.ID).Error)
	assert.Equal(t, "OWNER", membership.Role)

	// Same business number again fails, and no orphan user survives.
	_, err = svc.Signup(&dtos.SignupRequest{
		Type:        models.UserTypeCompany,
		Email:       "hr2@hospital.com",
		Password:    "password1",
		BusinessNo:  "123-45-67890",
		CompanyName: "Copycat Clinic",
	})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DUPLICATE_BUSINESS_NO", appErr.Code)

	var count int64
	require.NoError(t, svc.DB.Model(&models.User{}).Where("email = ?", "hr2@hospital.com").Count(&count).Error)
	assert.Zero(t, count)
}

func TestSignupCompanyMissingInfo(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Signup(&dtos.SignupRequest{
		Type:     models.UserTypeCompany,
		Email:    "hr@hospital.com",
		Password: "password1",
	})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "MISSING_COMPANY_INFO", appErr.Code)
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Signup(&dtos.SignupRequest{Type: models.UserTypePerson, Email: "a@b.com", Password: "password1"})
	require.NoError(t, err)

	resp, err := svc.Login(&dtos.LoginRequest{Email: "a@b.com", Password: "password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(&dtos.LoginRequest{Email: "a@b.com", Password: "wrong-password"})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.Code)
}

func TestLoginSuspended(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Signup(&dtos.SignupRequest{Type: models.UserTypePerson, Email: "s@b.com", Password: "password1"})
	require.NoError(t, err)
	require.NoError(t, svc.DB.Model(&models.User{}).
		Where("id = ?", resp.User.ID).
		Update("status", models.UserStatusSuspended).Error)

	_, err = svc.Login(&dtos.LoginRequest{Email: "s@b.com", Password: "password1"})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INACTIVE_ACCOUNT", appErr.Code)
}

func TestRefresh(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Signup(&dtos.SignupRequest{Type: models.UserTypePerson, Email: "r@b.com", Password: "password1"})
	require.NoError(t, err)

	pair, err := svc.Refresh(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// An access token is not a refresh token.
	_, err = svc.Refresh(resp.AccessToken)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_TOKEN", appErr.Code)
}
