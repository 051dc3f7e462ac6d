// Package user provides the application layer for accounts, sessions,
// profiles and follows.
package user

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/domain/user"
	"github.com/smartrecipe/server/internal/infrastructure/security"
	"github.com/smartrecipe/server/internal/ports/inbound"
	"github.com/smartrecipe/server/internal/ports/outbound"
	"github.com/smartrecipe/server/pkg/errors"
)

// UserService implements the user use cases.
type UserService struct {
	userRepo outbound.UserRepository
	auth     *security.AuthService
	logger   *zap.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo outbound.UserRepository, auth *security.AuthService, logger *zap.Logger) inbound.UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
		logger:   logger.Named("user-service"),
	}
}

// Register creates an account with its default profile.
func (s *UserService) Register(ctx context.Context, cmd inbound.RegisterCommand) (*user.User, *user.Profile, error) {
	if err := user.ValidatePassword(cmd.Password); err != nil {
		return nil, nil, errors.NewValidationError(err.Error())
	}
	if err := user.ValidateUsername(cmd.Username); err != nil {
		return nil, nil, errors.NewValidationError(err.Error())
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, cmd.Username)
	if err != nil {
		return nil, nil, errors.NewDatabaseError("check username", err)
	}
	if taken {
		return nil, nil, errors.NewUsernameAlreadyExistsError(cmd.Username)
	}

	hash, err := s.auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, nil, errors.NewInternalError("failed to hash password")
	}

	account, err := user.NewUser(cmd.Username, cmd.Email, hash)
	if err != nil {
		return nil, nil, errors.NewValidationError(err.Error())
	}

	profile := user.DefaultProfile(account, cmd.Nickname)
	profile.Phone = cmd.Phone

	if err := s.userRepo.Create(ctx, account, profile); err != nil {
		return nil, nil, errors.NewDatabaseError("create user", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", account.ID.String()),
		zap.String("username", account.Username),
	)
	return account, profile, nil
}

// Login verifies credentials and issues a token pair.
func (s *UserService) Login(ctx context.Context, username, password string) (*inbound.AuthTokens, *user.User, *user.Profile, error) {
	account, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, nil, nil, errors.NewInvalidCredentialsError()
		}
		return nil, nil, nil, errors.NewDatabaseError("find user", err)
	}
	if !account.IsActive {
		return nil, nil, nil, errors.NewInvalidCredentialsError()
	}
	if err := s.auth.VerifyPassword(account.PasswordHash, password); err != nil {
		return nil, nil, nil, errors.NewInvalidCredentialsError()
	}

	pair, err := s.auth.GenerateTokenPair(account.ID, account.Username, account.IsStaff)
	if err != nil {
		return nil, nil, nil, errors.NewInternalError("failed to issue tokens")
	}

	profile, err := s.profileOrDefault(ctx, account)
	if err != nil {
		return nil, nil, nil, err
	}

	s.logger.Info("User logged in", zap.String("user_id", account.ID.String()))
	return &inbound.AuthTokens{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, account, profile, nil
}

// Logout revokes the presented refresh token.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.auth.RevokeToken(ctx, refreshToken, security.RefreshToken); err != nil {
		return errors.NewUnauthorizedError("invalid refresh token")
	}
	return nil
}

// Refresh exchanges a refresh token for a new access token.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*inbound.AuthTokens, error) {
	pair, err := s.auth.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}
	return &inbound.AuthTokens{
		AccessToken: pair.AccessToken,
		ExpiresIn:   pair.ExpiresIn,
	}, nil
}

// GetProfile returns the caller's profile, creating the default one when it
// does not exist yet.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	account, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profileOrDefault(ctx, account)
}

// UpdateProfile applies a partial update to the caller's profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, cmd inbound.UpdateProfileCommand) (*user.Profile, error) {
	account, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileOrDefault(ctx, account)
	if err != nil {
		return nil, err
	}

	if cmd.Nickname != nil {
		profile.Nickname = *cmd.Nickname
	}
	if cmd.Avatar != nil {
		profile.Avatar = *cmd.Avatar
	}
	if cmd.Gender != nil {
		profile.Gender = *cmd.Gender
	}
	if cmd.Age != nil {
		profile.Age = *cmd.Age
	}
	if cmd.Phone != nil {
		profile.Phone = *cmd.Phone
	}
	if cmd.DietaryPreferences != nil {
		profile.DietaryPreferences = *cmd.DietaryPreferences
	}
	if cmd.Allergies != nil {
		profile.Allergies = *cmd.Allergies
	}
	if cmd.HealthGoal != nil {
		profile.HealthGoal = *cmd.HealthGoal
	}
	if cmd.DailyCaloriesTarget != nil {
		profile.DailyCaloriesTarget = *cmd.DailyCaloriesTarget
	}

	if err := profile.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.userRepo.SaveProfile(ctx, profile); err != nil {
		return nil, errors.NewDatabaseError("save profile", err)
	}
	return profile, nil
}

// ChangePassword verifies the old password and stores a new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	account, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.auth.VerifyPassword(account.PasswordHash, oldPassword); err != nil {
		return errors.NewBadRequestError("old password is incorrect")
	}
	if err := user.ValidatePassword(newPassword); err != nil {
		return errors.NewValidationError(err.Error())
	}
	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return errors.NewInternalError("failed to hash password")
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return errors.NewDatabaseError("update password", err)
	}
	s.logger.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

// GetPublicProfile returns another user's account and profile. Sensitive
// fields are stripped by the handler layer.
func (s *UserService) GetPublicProfile(ctx context.Context, id uuid.UUID) (*user.User, *user.Profile, error) {
	account, err := s.findUser(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.profileOrDefault(ctx, account)
	if err != nil {
		return nil, nil, err
	}
	return account, profile, nil
}

// Follow creates a follow edge.
func (s *UserService) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return errors.NewBadRequestError(user.ErrSelfFollow.Error())
	}
	if _, err := s.findUser(ctx, followeeID); err != nil {
		return err
	}
	already, err := s.userRepo.IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		return errors.NewDatabaseError("check follow", err)
	}
	if already {
		return nil
	}
	if err := s.userRepo.Follow(ctx, followerID, followeeID); err != nil {
		return errors.NewDatabaseError("create follow", err)
	}
	return nil
}

// Unfollow removes a follow edge.
func (s *UserService) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if err := s.userRepo.Unfollow(ctx, followerID, followeeID); err != nil {
		return errors.NewDatabaseError("delete follow", err)
	}
	return nil
}

// ListFollowing returns the users the caller follows.
func (s *UserService) ListFollowing(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*user.User, int, error) {
	users, total, err := s.userRepo.FindFollowing(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, errors.NewDatabaseError("list following", err)
	}
	return users, total, nil
}

func (s *UserService) findUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	account, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, errors.NewUserNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("find user", err)
	}
	return account, nil
}

// profileOrDefault loads the profile, creating the default one for accounts
// that predate the profile table.
func (s *UserService) profileOrDefault(ctx context.Context, account *user.User) (*user.Profile, error) {
	profile, err := s.userRepo.GetProfile(ctx, account.ID)
	if err == nil {
		return profile, nil
	}
	if !stderrors.Is(err, outbound.ErrNotFound) {
		return nil, errors.NewDatabaseError("load profile", err)
	}
	profile = user.DefaultProfile(account, "")
	if err := s.userRepo.SaveProfile(ctx, profile); err != nil {
		return nil, errors.NewDatabaseError("save profile", err)
	}
	return profile, nil
}
