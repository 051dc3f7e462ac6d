// Package security provides JWT authentication and password hashing.
package security

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartrecipe/server/internal/infrastructure/config"
)

// TokenType distinguishes access and refresh tokens.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims is the JWT payload for both token types.
type Claims struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	IsStaff   bool      `json:"is_staff"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair is an access token plus the refresh token that renews it.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // access token lifetime in seconds
}

// AuthService issues and validates JWT tokens and hashes passwords. The
// redis client backs the revocation list; when it is nil revocation is
// disabled and tokens stay valid until they expire.
type AuthService struct {
	config      *config.Config
	logger      *zap.Logger
	redisClient *redis.Client
	jwtSecret   []byte
}

// NewAuthService creates the authentication service.
func NewAuthService(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) *AuthService {
	return &AuthService{
		config:      cfg,
		logger:      logger,
		redisClient: redisClient,
		jwtSecret:   []byte(cfg.Auth.JWTSecret),
	}
}

// GenerateTokenPair issues an access and a refresh token for the user.
func (a *AuthService) GenerateTokenPair(userID uuid.UUID, username string, isStaff bool) (*TokenPair, error) {
	access, err := a.generateToken(userID, username, isStaff, AccessToken, a.config.Auth.JWTExpiration)
	if err != nil {
		return nil, err
	}
	refresh, err := a.generateToken(userID, username, isStaff, RefreshToken, a.config.Auth.RefreshExpiration)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(a.config.Auth.JWTExpiration.Seconds()),
	}, nil
}

// RefreshAccessToken validates a refresh token and issues a fresh access
// token carrying the same identity.
func (a *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.ValidateToken(ctx, refreshToken, RefreshToken)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid subject in refresh token: %w", err)
	}
	access, err := a.generateToken(userID, claims.Username, claims.IsStaff, AccessToken, a.config.Auth.JWTExpiration)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken: access,
		ExpiresIn:   int64(a.config.Auth.JWTExpiration.Seconds()),
	}, nil
}

func (a *AuthService) generateToken(userID uuid.UUID, username string, isStaff bool, tokenType TokenType, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID.String(),
		Username:  username,
		IsStaff:   isStaff,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "smartrecipe",
			Subject:   userID.String(),
			Audience:  []string{"smartrecipe-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token of the expected type and checks
// the revocation list.
func (a *AuthService) ValidateToken(ctx context.Context, tokenString string, expectedType TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("invalid token type: expected %s, got %s", expectedType, claims.TokenType)
	}

	if revoked, err := a.isTokenRevoked(ctx, claims.ID); err != nil {
		a.logger.Warn("Failed to check token revocation", zap.Error(err))
	} else if revoked {
		return nil, fmt.Errorf("token has been revoked")
	}

	return claims, nil
}

// RevokeToken puts the token's jti on the revocation list until the token
// would have expired anyway.
func (a *AuthService) RevokeToken(ctx context.Context, tokenString string, tokenType TokenType) error {
	claims, err := a.ValidateToken(ctx, tokenString, tokenType)
	if err != nil {
		return err
	}
	if a.redisClient == nil {
		return nil
	}
	ttl := a.config.Auth.RefreshExpiration
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}
	key := fmt.Sprintf("revoked_token:%s", claims.ID)
	return a.redisClient.Set(ctx, key, "revoked", ttl).Err()
}

func (a *AuthService) isTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if a.redisClient == nil {
		return false, nil
	}
	key := fmt.Sprintf("revoked_token:%s", tokenID)
	exists, err := a.redisClient.Exists(ctx, key).Result()
	return exists > 0, err
}

// HashPassword hashes a password with bcrypt at the configured cost.
func (a *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.config.Auth.BCryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a password against its bcrypt hash.
func (a *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
