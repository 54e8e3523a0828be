package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/contoso-university-api/internal/models"
	"github.com/noah-isme/contoso-university-api/pkg/config"
	appErrors "github.com/noah-isme/contoso-university-api/pkg/errors"
)

func newAuthServiceForTest() *AuthService {
	return NewAuthService(config.AuthConfig{Enabled: true, Secret: "test-secret", Issuer: "contoso-university", Expiration: time.Hour})
}

func TestAuthServiceIssueAndValidate(t *testing.T) {
	svc := newAuthServiceForTest()

	token, expiresAt, err := svc.IssueToken("registrar", models.RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "registrar", claims.Subject)
}

func TestAuthServiceRejectsForeignTokens(t *testing.T) {
	svc := newAuthServiceForTest()

	other := NewAuthService(config.AuthConfig{Secret: "other-secret", Issuer: "contoso-university"})
	token, _, err := other.IssueToken("registrar", models.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	wrongIssuer := NewAuthService(config.AuthConfig{Secret: "test-secret", Issuer: "elsewhere"})
	token, _, err = wrongIssuer.IssueToken("registrar", models.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &models.JWTClaims{Role: models.RoleAdmin}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}

func TestAuthServiceExpiredToken(t *testing.T) {
	svc := newAuthServiceForTest()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.IssueToken("registrar", models.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthServiceIssueRequiresSecret(t *testing.T) {
	_, _, err := NewAuthService(config.AuthConfig{}).IssueToken("registrar", models.RoleAdmin)
	assert.Error(t, err)
}
