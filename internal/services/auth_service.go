package services

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/auth"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/models"
)

type AuthService struct {
	DB     *gorm.DB
	Tokens *auth.TokenIssuer
}

func NewAuthService(db *gorm.DB, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{DB: db, Tokens: tokens}
}

func (s *AuthService) Signup(req *dtos.SignupRequest) (*dtos.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var exists models.User
		if err := tx.Where("email = ?", email).First(&exists).Error; err == nil {
			return apperr.Conflict("DUPLICATE_EMAIL", "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		role := models.RolePerson
		if req.Type == models.UserTypeCompany {
			role = models.RoleCompanyUnverified
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return err
		}

		user = models.User{
			Type:           req.Type,
			Email:          email,
			Phone:          req.Phone,
			PasswordHash:   hash,
			Status:         models.UserStatusActive,
			Role:           role,
			AgreeTerms:     req.AgreeTerms,
			AgreeMarketing: req.AgreeMarketing,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if req.Type == models.UserTypePerson {
			profile := models.UserProfile{UserID: user.ID, Name: req.Name}
			return tx.Create(&profile).Error
		}

		// Company signup: business number and name are mandatory.
		if req.BusinessNo == "" || req.CompanyName == "" {
			return apperr.BadRequest("MISSING_COMPANY_INFO", "business_no and company_name are required for company signup")
		}
		var existsCo models.Company
		if err := tx.Where("business_no = ?", req.BusinessNo).First(&existsCo).Error; err == nil {
			return apperr.Conflict("DUPLICATE_BUSINESS_NO", "business number already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		company := models.Company{BusinessNo: req.BusinessNo, Name: req.CompanyName, Status: models.UserStatusActive}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}
		membership := models.CompanyUser{CompanyID: company.ID, UserID: user.ID, Role: "OWNER"}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return nil, err
	}

	access, refresh, err := s.Tokens.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	zap.L().Info("user signed up", zap.String("user_id", user.ID.String()), zap.String("type", string(user.Type)))
	return &dtos.AuthResponse{User: &user, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) Login(req *dtos.LoginRequest) (*dtos.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("INVALID_CREDENTIALS", "invalid email or password")
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperr.Unauthorized("INVALID_CREDENTIALS", "invalid email or password")
	}
	if user.Status != models.UserStatusActive {
		return nil, apperr.Forbidden("INACTIVE_ACCOUNT", "account is not active")
	}

	access, refresh, err := s.Tokens.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dtos.AuthResponse{User: &user, AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh rotates the token pair. The user must still be ACTIVE.
func (s *AuthService) Refresh(refreshToken string) (*dtos.TokenResponse, error) {
	claims, err := s.Tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("INVALID_TOKEN", "invalid refresh token")
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return nil, apperr.Unauthorized("INVALID_TOKEN", "user not found or inactive")
	}
	if user.Status != models.UserStatusActive {
		return nil, apperr.Unauthorized("INVALID_TOKEN", "user not found or inactive")
	}

	access, refresh, err := s.Tokens.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dtos.TokenResponse{AccessToken: access, RefreshToken: refresh}, nil
}
