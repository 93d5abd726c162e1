package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibook-server/internal/config"
	"medibook-server/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                 "test-access-secret",
		JWTRefreshSecret:          "test-refresh-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 168,
	}
}

func TestGenerateAndValidateTokens(t *testing.T) {
	cfg := testConfig()
	user := &models.User{Role: models.RolePatient}
	user.ID = "11111111-2222-3333-4444-555555555555"

	access, refresh, err := GenerateTokens(user, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := ValidateToken(access, cfg.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RolePatient, claims.Role)

	refreshClaims, err := ValidateToken(refresh, cfg.JWTRefreshSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshClaims.UserID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()
	user := &models.User{Role: models.RoleDoctor}
	user.ID = "abc"

	access, _, err := GenerateTokens(user, cfg)
	require.NoError(t, err)

	_, err = ValidateToken(access, "some-other-secret")
	assert.Error(t, err)

	// Access token must not validate against the refresh secret.
	_, err = ValidateToken(access, cfg.JWTRefreshSecret)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", "secret")
	assert.Error(t, err)
}
