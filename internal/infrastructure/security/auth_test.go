package security

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/infrastructure/config"
)

// AuthServiceTestSuite exercises token issuance without a redis backend, so
// revocation is a no-op and tokens stay valid until expiry.
type AuthServiceTestSuite struct {
	suite.Suite
	authService *AuthService
	config      *config.Config
}

func (s *AuthServiceTestSuite) SetupSuite() {
	s.config = &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret-key-for-testing-only-32-bytes",
			JWTExpiration:     time.Hour,
			RefreshExpiration: 24 * time.Hour,
			BCryptCost:        4, // lower cost for faster tests
		},
	}
	s.authService = NewAuthService(s.config, zap.NewNop(), nil)
}

func (s *AuthServiceTestSuite) TestGenerateTokenPair() {
	userID := uuid.New()

	pair, err := s.authService.GenerateTokenPair(userID, "chef_wang", false)
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), pair.AccessToken)
	assert.NotEmpty(s.T(), pair.RefreshToken)
	assert.Equal(s.T(), int64(3600), pair.ExpiresIn)

	claims, err := s.authService.ValidateToken(context.Background(), pair.AccessToken, AccessToken)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), userID.String(), claims.UserID)
	assert.Equal(s.T(), "chef_wang", claims.Username)
	assert.False(s.T(), claims.IsStaff)
	assert.Equal(s.T(), AccessToken, claims.TokenType)
	assert.NotEmpty(s.T(), claims.ID)

	refreshClaims, err := s.authService.ValidateToken(context.Background(), pair.RefreshToken, RefreshToken)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), RefreshToken, refreshClaims.TokenType)
}

func (s *AuthServiceTestSuite) TestValidateTokenWrongType() {
	pair, err := s.authService.GenerateTokenPair(uuid.New(), "chef_wang", false)
	require.NoError(s.T(), err)

	_, err = s.authService.ValidateToken(context.Background(), pair.AccessToken, RefreshToken)
	assert.Error(s.T(), err)

	_, err = s.authService.ValidateToken(context.Background(), pair.RefreshToken, AccessToken)
	assert.Error(s.T(), err)
}

func (s *AuthServiceTestSuite) TestValidateTokenTampered() {
	pair, err := s.authService.GenerateTokenPair(uuid.New(), "chef_wang", false)
	require.NoError(s.T(), err)

	_, err = s.authService.ValidateToken(context.Background(), pair.AccessToken+"x", AccessToken)
	assert.Error(s.T(), err)

	other := NewAuthService(&config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "a-completely-different-secret-key-here",
			JWTExpiration:     time.Hour,
			RefreshExpiration: 24 * time.Hour,
		},
	}, zap.NewNop(), nil)
	_, err = other.ValidateToken(context.Background(), pair.AccessToken, AccessToken)
	assert.Error(s.T(), err)
}

func (s *AuthServiceTestSuite) TestRefreshAccessToken() {
	userID := uuid.New()
	pair, err := s.authService.GenerateTokenPair(userID, "chef_wang", true)
	require.NoError(s.T(), err)

	renewed, err := s.authService.RefreshAccessToken(context.Background(), pair.RefreshToken)
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), renewed.AccessToken)
	assert.Empty(s.T(), renewed.RefreshToken)

	claims, err := s.authService.ValidateToken(context.Background(), renewed.AccessToken, AccessToken)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), userID.String(), claims.UserID)
	assert.True(s.T(), claims.IsStaff)

	// access tokens do not refresh
	_, err = s.authService.RefreshAccessToken(context.Background(), pair.AccessToken)
	assert.Error(s.T(), err)
}

func (s *AuthServiceTestSuite) TestRevokeWithoutRedis() {
	pair, err := s.authService.GenerateTokenPair(uuid.New(), "chef_wang", false)
	require.NoError(s.T(), err)

	// without redis revocation degrades to a no-op
	require.NoError(s.T(), s.authService.RevokeToken(context.Background(), pair.RefreshToken, RefreshToken))
	_, err = s.authService.ValidateToken(context.Background(), pair.RefreshToken, RefreshToken)
	assert.NoError(s.T(), err)
}

func (s *AuthServiceTestSuite) TestPasswordHashing() {
	hash, err := s.authService.HashPassword("secret123")
	require.NoError(s.T(), err)
	assert.NotEqual(s.T(), "secret123", hash)

	assert.NoError(s.T(), s.authService.VerifyPassword(hash, "secret123"))
	assert.Error(s.T(), s.authService.VerifyPassword(hash, "wrong"))
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
