// Package community provides the application layer for the food feed,
// post likes and comments.
package community

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/domain/community"
	"github.com/smartrecipe/server/internal/ports/inbound"
	"github.com/smartrecipe/server/internal/ports/outbound"
	"github.com/smartrecipe/server/pkg/errors"
)

// CommunityService implements the community use cases.
type CommunityService struct {
	communityRepo outbound.CommunityRepository
	recipeRepo    outbound.RecipeRepository
	logger        *zap.Logger
}

// NewCommunityService creates a new community service.
func NewCommunityService(
	communityRepo outbound.CommunityRepository,
	recipeRepo outbound.RecipeRepository,
	logger *zap.Logger,
) inbound.CommunityService {
	return &CommunityService{
		communityRepo: communityRepo,
		recipeRepo:    recipeRepo,
		logger:        logger.Named("community-service"),
	}
}

// ListPosts returns the feed, newest first.
func (s *CommunityService) ListPosts(ctx context.Context, offset, limit int) ([]*community.Post, int, error) {
	posts, total, err := s.communityRepo.ListPosts(ctx, offset, limit)
	if err != nil {
		return nil, 0, errors.NewDatabaseError("list posts", err)
	}
	return posts, total, nil
}

// CreatePost adds a feed entry. A linked recipe must exist.
func (s *CommunityService) CreatePost(ctx context.Context, userID uuid.UUID, cmd inbound.CreatePostCommand) (*community.Post, error) {
	if cmd.RecipeID != nil {
		if _, err := s.recipeRepo.FindByID(ctx, *cmd.RecipeID); err != nil {
			if stderrors.Is(err, outbound.ErrNotFound) {
				return nil, errors.NewRecipeNotFoundError(cmd.RecipeID.String())
			}
			return nil, errors.NewDatabaseError("find recipe", err)
		}
	}
	post, err := community.NewPost(userID, cmd.Content, cmd.Images, cmd.RecipeID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.communityRepo.CreatePost(ctx, post); err != nil {
		return nil, errors.NewDatabaseError("create post", err)
	}
	s.logger.Info("Post created",
		zap.String("post_id", post.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return post, nil
}

// GetPost returns one feed entry.
func (s *CommunityService) GetPost(ctx context.Context, id uuid.UUID) (*community.Post, error) {
	post, err := s.communityRepo.FindPostByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, errors.NewNotFoundError("post")
		}
		return nil, errors.NewDatabaseError("find post", err)
	}
	return post, nil
}

// TogglePostLike flips the caller's like on the post.
func (s *CommunityService) TogglePostLike(ctx context.Context, postID, userID uuid.UUID) (inbound.ToggleResult, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return inbound.ToggleResult{}, err
	}

	liked, err := s.communityRepo.HasPostLike(ctx, postID, userID)
	if err != nil {
		return inbound.ToggleResult{}, errors.NewDatabaseError("check post like", err)
	}

	delta := 1
	if liked {
		delta = -1
		if err := s.communityRepo.RemovePostLike(ctx, postID, userID); err != nil {
			return inbound.ToggleResult{}, errors.NewDatabaseError("remove post like", err)
		}
	} else {
		if err := s.communityRepo.AddPostLike(ctx, postID, userID); err != nil {
			return inbound.ToggleResult{}, errors.NewDatabaseError("add post like", err)
		}
	}
	if err := s.communityRepo.UpdatePostCounters(ctx, postID, delta, 0); err != nil {
		return inbound.ToggleResult{}, errors.NewDatabaseError("update post counters", err)
	}

	post.ApplyLike(delta)
	return inbound.ToggleResult{Active: !liked, Count: post.Likes}, nil
}

// ListComments returns top-level comments for a recipe or post, with replies.
func (s *CommunityService) ListComments(ctx context.Context, targetType community.TargetType, targetID uuid.UUID, offset, limit int) ([]*community.Comment, int, error) {
	if targetType != community.TargetRecipe && targetType != community.TargetPost {
		return nil, 0, errors.NewBadRequestError(community.ErrInvalidTargetType.Error())
	}
	comments, total, err := s.communityRepo.ListComments(ctx, targetType, targetID, offset, limit)
	if err != nil {
		return nil, 0, errors.NewDatabaseError("list comments", err)
	}
	return comments, total, nil
}

// CreateComment adds a comment on a recipe or post and bumps the post's
// comment counter.
func (s *CommunityService) CreateComment(ctx context.Context, userID uuid.UUID, cmd inbound.CreateCommentCommand) (*community.Comment, error) {
	switch cmd.TargetType {
	case community.TargetPost:
		if _, err := s.GetPost(ctx, cmd.TargetID); err != nil {
			return nil, err
		}
	case community.TargetRecipe:
		if _, err := s.recipeRepo.FindByID(ctx, cmd.TargetID); err != nil {
			if stderrors.Is(err, outbound.ErrNotFound) {
				return nil, errors.NewRecipeNotFoundError(cmd.TargetID.String())
			}
			return nil, errors.NewDatabaseError("find recipe", err)
		}
	}

	comment, err := community.NewComment(userID, cmd.TargetType, cmd.TargetID, cmd.Content, cmd.ParentID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.communityRepo.CreateComment(ctx, comment); err != nil {
		return nil, errors.NewDatabaseError("create comment", err)
	}

	if cmd.TargetType == community.TargetPost {
		if err := s.communityRepo.UpdatePostCounters(ctx, cmd.TargetID, 0, 1); err != nil {
			s.logger.Warn("Failed to bump comment counter", zap.Error(err))
		}
	}
	return comment, nil
}
