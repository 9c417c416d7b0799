package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medihire/medihire/internal/models"
)

func TestIssueAndParsePair(t *testing.T) {
	issuer := NewTokenIssuer("secret", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	access, refresh, err := issuer.IssuePair(userID, models.RolePerson)
	require.NoError(t, err)

	claims, err := issuer.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, models.RolePerson, claims.Role)

	claims, err = issuer.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestParseRejectsWrongType(t *testing.T) {
	issuer := NewTokenIssuer("secret", 15*time.Minute, 24*time.Hour)
	access, refresh, err := issuer.IssuePair(uuid.New(), models.RolePerson)
	require.NoError(t, err)

	_, err = issuer.ParseAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = issuer.ParseRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	issuer := NewTokenIssuer("secret", 15*time.Minute, 24*time.Hour)
	other := NewTokenIssuer("different", 15*time.Minute, 24*time.Hour)

	access, _, err := other.IssuePair(uuid.New(), models.RolePerson)
	require.NoError(t, err)

	_, err = issuer.ParseAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute, 24*time.Hour)

	access, _, err := issuer.IssuePair(uuid.New(), models.RolePerson)
	require.NoError(t, err)

	_, err = issuer.ParseAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "correct horse battery"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
