package dtos

import "github.com/medihire/medihire/internal/models"

type SignupRequest struct {
	Type     models.UserType `json:"type" binding:"required,oneof=PERSON COMPANY"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Phone    string          `json:"phone"`
	Name     string          `json:"name"`

	// Company signup only
	BusinessNo  string `json:"business_no"`
	CompanyName string `json:"company_name"`

	AgreeTerms     bool `json:"agree_terms"`
	AgreeMarketing bool `json:"agree_marketing"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}
