// Package community contains the social-feed domain: food posts, post likes
// and comments on either recipes or posts.
package community

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TargetType identifies what a comment is attached to.
type TargetType string

const (
	TargetRecipe TargetType = "recipe"
	TargetPost   TargetType = "post"
)

// Domain validation errors
var (
	ErrEmptyContent      = errors.New("content cannot be empty")
	ErrInvalidTargetType = errors.New("target type must be recipe or post")
)

// Post is one entry in the food feed, optionally linked to a recipe.
type Post struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	RecipeID      *uuid.UUID
	Content       string
	Images        []string
	Likes         int
	CommentsCount int
	CreatedAt     time.Time
}

// PostLike is a unique user-likes-post edge.
type PostLike struct {
	PostID    uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}

// Comment belongs to either a recipe or a post and may reply to a parent
// comment on the same target.
type Comment struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TargetType TargetType
	TargetID   uuid.UUID
	Content    string
	ParentID   *uuid.UUID
	Replies    []Comment
	CreatedAt  time.Time
}

// NewPost creates a feed entry.
func NewPost(userID uuid.UUID, content string, images []string, recipeID *uuid.UUID) (*Post, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	return &Post{
		ID:        uuid.New(),
		UserID:    userID,
		RecipeID:  recipeID,
		Content:   content,
		Images:    images,
		CreatedAt: time.Now(),
	}, nil
}

// ApplyLike adjusts the like counter, flooring at zero.
func (p *Post) ApplyLike(delta int) {
	p.Likes += delta
	if p.Likes < 0 {
		p.Likes = 0
	}
}

// NewComment creates a comment on a recipe or post.
func NewComment(userID uuid.UUID, targetType TargetType, targetID uuid.UUID, content string, parentID *uuid.UUID) (*Comment, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if targetType != TargetRecipe && targetType != TargetPost {
		return nil, ErrInvalidTargetType
	}
	return &Comment{
		ID:         uuid.New(),
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
		Content:    content,
		ParentID:   parentID,
		CreatedAt:  time.Now(),
	}, nil
}

// IsReply reports whether the comment answers another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
