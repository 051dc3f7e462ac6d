package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartrecipe/server/internal/domain/community"
	"github.com/smartrecipe/server/internal/ports/outbound"
)

// CommunityRepository implements outbound.CommunityRepository using GORM.
type CommunityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository creates a new community repository.
func NewCommunityRepository(db *gorm.DB) outbound.CommunityRepository {
	return &CommunityRepository{db: db}
}

// CreatePost stores a feed entry.
func (r *CommunityRepository) CreatePost(ctx context.Context, p *community.Post) error {
	return r.db.WithContext(ctx).Create(postToModel(p)).Error
}

// FindPostByID loads a feed entry.
func (r *CommunityRepository) FindPostByID(ctx context.Context, id uuid.UUID) (*community.Post, error) {
	var model FoodPostModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return postToDomain(&model), nil
}

// ListPosts returns the feed, newest first.
func (r *CommunityRepository) ListPosts(ctx context.Context, offset, limit int) ([]*community.Post, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&FoodPostModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []FoodPostModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	posts := make([]*community.Post, len(models))
	for i := range models {
		posts[i] = postToDomain(&models[i])
	}
	return posts, int(total), nil
}

// AddPostLike creates a like edge.
func (r *CommunityRepository) AddPostLike(ctx context.Context, postID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&PostLikeModel{
		PostID: postID,
		UserID: userID,
	}).Error
}

// RemovePostLike deletes a like edge.
func (r *CommunityRepository) RemovePostLike(ctx context.Context, postID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&PostLikeModel{}).Error
}

// HasPostLike reports whether the edge exists.
func (r *CommunityRepository) HasPostLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&PostLikeModel{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

// UpdatePostCounters applies like/comment deltas, flooring at zero.
func (r *CommunityRepository) UpdatePostCounters(ctx context.Context, postID uuid.UUID, likesDelta, commentsDelta int) error {
	updates := map[string]interface{}{}
	if likesDelta != 0 {
		updates["likes_count"] = gorm.Expr(
			"CASE WHEN likes_count + ? < 0 THEN 0 ELSE likes_count + ? END",
			likesDelta, likesDelta)
	}
	if commentsDelta != 0 {
		updates["comments_count"] = gorm.Expr(
			"CASE WHEN comments_count + ? < 0 THEN 0 ELSE comments_count + ? END",
			commentsDelta, commentsDelta)
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&FoodPostModel{}).
		Where("id = ?", postID).
		UpdateColumns(updates).Error
}

// CreateComment stores a comment.
func (r *CommunityRepository) CreateComment(ctx context.Context, c *community.Comment) error {
	return r.db.WithContext(ctx).Create(commentToModel(c)).Error
}

// ListComments returns top-level comments for the target, newest first,
// with replies attached oldest first.
func (r *CommunityRepository) ListComments(ctx context.Context, targetType community.TargetType, targetID uuid.UUID, offset, limit int) ([]*community.Comment, int, error) {
	topLevel := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&CommentModel{}).
			Where("target_type = ? AND target_id = ? AND parent_id IS NULL", string(targetType), targetID)
	}

	var total int64
	if err := topLevel().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []CommentModel
	err := topLevel().
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	comments := make([]*community.Comment, len(models))
	for i := range models {
		comments[i] = commentToDomain(&models[i])
	}
	return comments, int(total), nil
}
