// Package outbound defines the driven-side ports: persistence and cache
// interfaces implemented by the infrastructure layer.
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/smartrecipe/server/internal/domain/community"
	"github.com/smartrecipe/server/internal/domain/ingredient"
	"github.com/smartrecipe/server/internal/domain/nutrition"
	"github.com/smartrecipe/server/internal/domain/recipe"
	"github.com/smartrecipe/server/internal/domain/shopping"
	"github.com/smartrecipe/server/internal/domain/user"
)

// ErrNotFound is returned by all repositories when a record does not exist.
// Adapters translate their driver's sentinel to this one.
var ErrNotFound = errors.New("record not found")

// UserRepository persists accounts, profiles and follow edges.
type UserRepository interface {
	Create(ctx context.Context, u *user.User, p *user.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// Profile access. SaveProfile upserts, which covers the lazy-create
	// path for accounts that predate the profile table.
	GetProfile(ctx context.Context, userID uuid.UUID) (*user.Profile, error)
	SaveProfile(ctx context.Context, p *user.Profile) error

	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	FindFollowing(ctx context.Context, followerID uuid.UUID, offset, limit int) ([]*user.User, int, error)
}

// IngredientFilter narrows catalog listings.
type IngredientFilter struct {
	Category string
	Search   string
	Offset   int
	Limit    int
}

// IngredientRepository persists the ingredient catalog and recognition history.
type IngredientRepository interface {
	Create(ctx context.Context, ing *ingredient.Ingredient) error
	Update(ctx context.Context, ing *ingredient.Ingredient) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*ingredient.Ingredient, error)
	List(ctx context.Context, filter IngredientFilter) ([]*ingredient.Ingredient, int, error)
	FindSeasonal(ctx context.Context, month int) ([]*ingredient.Ingredient, error)
	FindByNames(ctx context.Context, names []string) ([]*ingredient.Ingredient, error)

	SaveRecognition(ctx context.Context, rec *ingredient.Recognition) error
	FindRecognitions(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*ingredient.Recognition, int, error)
}

// RecipeFilter narrows recipe listings. Ordering takes a column name with
// an optional leading minus for descending order.
type RecipeFilter struct {
	Category      string
	Difficulty    string
	CuisineType   string
	Search        string
	AuthorID      *uuid.UUID
	PublishedOnly bool
	Ordering      string
	Offset        int
	Limit         int
}

// RecipeRepository persists recipes with their ingredient lines, steps and
// per-user behavior records.
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	Update(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	List(ctx context.Context, filter RecipeFilter) ([]*recipe.Recipe, int, error)

	// FindTop returns published recipes ordered by views then likes.
	FindTop(ctx context.Context, limit int) ([]*recipe.Recipe, error)
	// FindByIngredientNames returns published recipes using any of the
	// named ingredients, ordered by views then likes.
	FindByIngredientNames(ctx context.Context, names []string, limit int) ([]*recipe.Recipe, error)
	FindFavorites(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*recipe.Recipe, int, error)

	IncrementViews(ctx context.Context, id uuid.UUID) error
	AddBehavior(ctx context.Context, b *recipe.Behavior) error
	RemoveBehavior(ctx context.Context, userID, recipeID uuid.UUID, t recipe.BehaviorType) error
	HasBehavior(ctx context.Context, userID, recipeID uuid.UUID, t recipe.BehaviorType) (bool, error)
	UpdateCounters(ctx context.Context, id uuid.UUID, likesDelta, favoritesDelta int) error
}

// ShoppingRepository persists per-user shopping list items.
type ShoppingRepository interface {
	Create(ctx context.Context, item *shopping.Item) error
	Update(ctx context.Context, item *shopping.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*shopping.Item, error)
	FindByUser(ctx context.Context, userID uuid.UUID, onlyUnpurchased bool) ([]*shopping.Item, error)
	// FindUnpurchased returns the open row for the ingredient, if any.
	FindUnpurchased(ctx context.Context, userID, ingredientID uuid.UUID) (*shopping.Item, error)
}

// CommunityRepository persists the food feed, post likes and comments.
type CommunityRepository interface {
	CreatePost(ctx context.Context, p *community.Post) error
	FindPostByID(ctx context.Context, id uuid.UUID) (*community.Post, error)
	ListPosts(ctx context.Context, offset, limit int) ([]*community.Post, int, error)

	AddPostLike(ctx context.Context, postID, userID uuid.UUID) error
	RemovePostLike(ctx context.Context, postID, userID uuid.UUID) error
	HasPostLike(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	UpdatePostCounters(ctx context.Context, postID uuid.UUID, likesDelta, commentsDelta int) error

	CreateComment(ctx context.Context, c *community.Comment) error
	// ListComments returns top-level comments for the target, newest first,
	// with replies attached.
	ListComments(ctx context.Context, targetType community.TargetType, targetID uuid.UUID, offset, limit int) ([]*community.Comment, int, error)
}

// NutritionRepository persists dietary logs.
type NutritionRepository interface {
	CreateLog(ctx context.Context, log *nutrition.DietaryLog) error
	FindLogByID(ctx context.Context, id uuid.UUID) (*nutrition.DietaryLog, error)
	DeleteLog(ctx context.Context, id uuid.UUID) error
	FindLogsByDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*nutrition.DietaryLog, error)
	FindLogsInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*nutrition.DietaryLog, error)
}

// RecipeCache is the read-through cache in front of recipe detail loads.
type RecipeCache interface {
	Get(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	Set(ctx context.Context, r *recipe.Recipe, ttl time.Duration) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}
