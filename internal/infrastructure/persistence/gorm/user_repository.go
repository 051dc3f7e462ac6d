package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartrecipe/server/internal/domain/user"
	"github.com/smartrecipe/server/internal/ports/outbound"
)

// UserRepository implements outbound.UserRepository using GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

// Create stores the account and its profile in one transaction.
func (r *UserRepository) Create(ctx context.Context, u *user.User, p *user.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userToModel(u)).Error; err != nil {
			return err
		}
		return tx.Create(profileToModel(p)).Error
	})
}

// FindByID loads an account by ID.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return userToDomain(&model), nil
}

// FindByUsername loads an account by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).First(&model, "username = ?", username).Error; err != nil {
		return nil, translate(err)
	}
	return userToDomain(&model), nil
}

// ExistsByUsername reports whether the username is taken.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

// GetProfile loads a profile by user ID.
func (r *UserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	var model ProfileModel
	if err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return profileToDomain(&model), nil
}

// SaveProfile upserts a profile.
func (r *UserRepository) SaveProfile(ctx context.Context, p *user.Profile) error {
	return r.db.WithContext(ctx).Save(profileToModel(p)).Error
}

// Follow creates a follow edge.
func (r *UserRepository) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&FollowModel{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}).Error
}

// Unfollow removes a follow edge. Removing a missing edge is not an error.
func (r *UserRepository) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&FollowModel{}).Error
}

// IsFollowing reports whether the edge exists.
func (r *UserRepository) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FollowModel{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

// FindFollowing returns the users the follower follows, newest edge first.
func (r *UserRepository) FindFollowing(ctx context.Context, followerID uuid.UUID, offset, limit int) ([]*user.User, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&FollowModel{}).
		Where("follower_id = ?", followerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []UserModel
	err := r.db.WithContext(ctx).Model(&UserModel{}).
		Joins("JOIN user_follows ON user_follows.followee_id = users.id").
		Where("user_follows.follower_id = ?", followerID).
		Order("user_follows.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = userToDomain(&models[i])
	}
	return users, int(total), nil
}

// translate maps gorm sentinels to the port's not-found error.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return outbound.ErrNotFound
	}
	return err
}
