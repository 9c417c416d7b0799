package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/medihire/medihire/internal/models"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID    uuid.UUID   `json:"user_id"`
	Role      models.Role `json:"role"`
	TokenType string      `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and parses the access/refresh token pair.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (t *TokenIssuer) IssuePair(userID uuid.UUID, role models.Role) (access, refresh string, err error) {
	access, err = t.sign(userID, role, tokenTypeAccess, t.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = t.sign(userID, role, tokenTypeRefresh, t.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (t *TokenIssuer) sign(userID uuid.UUID, role models.Role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// ParseAccess validates an access token and returns its claims.
func (t *TokenIssuer) ParseAccess(token string) (*Claims, error) {
	return t.parse(token, tokenTypeAccess)
}

// ParseRefresh validates a refresh token and returns its claims.
func (t *TokenIssuer) ParseRefresh(token string) (*Claims, error) {
	return t.parse(token, tokenTypeRefresh)
}

func (t *TokenIssuer) parse(token, wantType string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid || claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
