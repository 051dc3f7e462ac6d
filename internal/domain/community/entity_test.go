package community

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPost(t *testing.T) {
	userID := uuid.New()

	p, err := NewPost(userID, "Tried this tonight, amazing", []string{"https://example.com/a.jpg"}, nil)
	require.NoError(t, err)
	assert.Equal(t, userID, p.UserID)
	assert.Nil(t, p.RecipeID)
	assert.Zero(t, p.Likes)

	_, err = NewPost(userID, "", nil, nil)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestPostApplyLike(t *testing.T) {
	p := &Post{}
	p.ApplyLike(1)
	p.ApplyLike(1)
	assert.Equal(t, 2, p.Likes)

	p.ApplyLike(-1)
	p.ApplyLike(-5)
	assert.Equal(t, 0, p.Likes)
}

func TestNewComment(t *testing.T) {
	userID := uuid.New()
	targetID := uuid.New()

	c, err := NewComment(userID, TargetRecipe, targetID, "Looks delicious", nil)
	require.NoError(t, err)
	assert.False(t, c.IsReply())

	parentID := uuid.New()
	reply, err := NewComment(userID, TargetPost, targetID, "Agreed", &parentID)
	require.NoError(t, err)
	assert.True(t, reply.IsReply())

	_, err = NewComment(userID, TargetRecipe, targetID, "", nil)
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = NewComment(userID, TargetType("video"), targetID, "hi", nil)
	assert.ErrorIs(t, err, ErrInvalidTargetType)
}
