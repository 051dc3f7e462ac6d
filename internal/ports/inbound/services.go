// Package inbound defines the driving-side ports: the use-case interfaces
// HTTP handlers call, plus their command and result types.
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/smartrecipe/server/internal/domain/community"
	"github.com/smartrecipe/server/internal/domain/ingredient"
	"github.com/smartrecipe/server/internal/domain/nutrition"
	"github.com/smartrecipe/server/internal/domain/recipe"
	"github.com/smartrecipe/server/internal/domain/shopping"
	"github.com/smartrecipe/server/internal/domain/user"
)

// AuthTokens carries the token pair returned on login and refresh.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RegisterCommand contains the data for a new account.
type RegisterCommand struct {
	Username string
	Password string
	Email    string
	Nickname string
	Phone    string
}

// UpdateProfileCommand carries a partial profile update. Nil fields are
// left untouched.
type UpdateProfileCommand struct {
	Nickname            *string
	Avatar              *string
	Gender              *string
	Age                 *int
	Phone               *string
	DietaryPreferences  *[]string
	Allergies           *[]string
	HealthGoal          *string
	DailyCaloriesTarget *int
}

// UserService covers accounts, sessions, profiles and follows.
type UserService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*user.User, *user.Profile, error)
	Login(ctx context.Context, username, password string) (*AuthTokens, *user.User, *user.Profile, error)
	Logout(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (*user.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, cmd UpdateProfileCommand) (*user.Profile, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	GetPublicProfile(ctx context.Context, id uuid.UUID) (*user.User, *user.Profile, error)

	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
	ListFollowing(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*user.User, int, error)
}

// ListIngredientsQuery narrows the public catalog listing.
type ListIngredientsQuery struct {
	Category string
	Search   string
	Offset   int
	Limit    int
}

// IngredientCommand carries the admin create/update payload.
type IngredientCommand struct {
	Name         string
	Category     string
	ImageURL     string
	Calories     float64
	Protein      float64
	Fat          float64
	Carbohydrate float64
	Fiber        float64
	Vitamins     map[string]float64
	Description  string
	Season       []int
}

// IngredientService covers the catalog, nutrition math and recognition.
type IngredientService interface {
	List(ctx context.Context, q ListIngredientsQuery) ([]*ingredient.Ingredient, int, error)
	Get(ctx context.Context, id uuid.UUID) (*ingredient.Ingredient, error)
	Search(ctx context.Context, keyword string) ([]*ingredient.Ingredient, error)
	Seasonal(ctx context.Context, month int) ([]*ingredient.Ingredient, error)
	CalculateNutrition(ctx context.Context, id uuid.UUID, quantityGrams float64) (*ingredient.Ingredient, ingredient.Nutrition, error)
	Recognize(ctx context.Context, userID uuid.UUID, imageURL string) (*ingredient.Recognition, error)
	History(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*ingredient.Recognition, int, error)
	RecommendRecipes(ctx context.Context, ingredientNames []string) ([]*recipe.Recipe, error)

	Create(ctx context.Context, cmd IngredientCommand) (*ingredient.Ingredient, error)
	Update(ctx context.Context, id uuid.UUID, cmd IngredientCommand) (*ingredient.Ingredient, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListRecipesQuery narrows the public recipe listing.
type ListRecipesQuery struct {
	Category    string
	Difficulty  string
	CuisineType string
	Search      string
	Ordering    string
	Offset      int
	Limit       int
}

// IngredientLineCommand is one nested ingredient line on recipe create/update.
type IngredientLineCommand struct {
	IngredientID uuid.UUID
	Quantity     float64
	Unit         string
	IsMain       bool
}

// StepCommand is one nested cooking step on recipe create/update.
type StepCommand struct {
	StepNumber  int
	Description string
	ImageURL    string
	Duration    int
	Tips        string
}

// CreateRecipeCommand carries the full recipe create payload.
type CreateRecipeCommand struct {
	Name          string
	CoverImage    string
	Difficulty    string
	CookingTime   int
	Servings      int
	Category      string
	CuisineType   string
	Tags          []string
	TotalCalories float64
	Description   string
	IsPublished   *bool
	Ingredients   []IngredientLineCommand
	Steps         []StepCommand
}

// UpdateRecipeCommand carries a partial recipe update. Nil fields are left
// untouched; non-nil Ingredients/Steps replace the nested collections.
type UpdateRecipeCommand struct {
	Name          *string
	CoverImage    *string
	Difficulty    *string
	CookingTime   *int
	Servings      *int
	Category      *string
	CuisineType   *string
	Tags          *[]string
	TotalCalories *float64
	Description   *string
	IsPublished   *bool
	Ingredients   *[]IngredientLineCommand
	Steps         *[]StepCommand
}

// ToggleResult reports the state after a like or favorite toggle.
type ToggleResult struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

// RecipeService covers recipe CRUD, interactions and discovery.
type RecipeService interface {
	List(ctx context.Context, q ListRecipesQuery) ([]*recipe.Recipe, int, error)
	Create(ctx context.Context, authorID uuid.UUID, cmd CreateRecipeCommand) (*recipe.Recipe, error)
	// Get returns the published recipe and counts the view. A non-nil
	// viewerID also records a view behavior.
	Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*recipe.Recipe, error)
	Update(ctx context.Context, id, userID uuid.UUID, cmd UpdateRecipeCommand) (*recipe.Recipe, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error

	ToggleLike(ctx context.Context, id, userID uuid.UUID) (ToggleResult, error)
	ToggleFavorite(ctx context.Context, id, userID uuid.UUID) (ToggleResult, error)
	Favorites(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*recipe.Recipe, int, error)
	MyRecipes(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*recipe.Recipe, int, error)

	Search(ctx context.Context, keyword string) ([]*recipe.Recipe, error)
	Recommend(ctx context.Context) ([]*recipe.Recipe, error)
}

// AddShoppingItemCommand adds one row to the caller's list.
type AddShoppingItemCommand struct {
	IngredientID uuid.UUID
	Quantity     float64
	Unit         string
}

// UpdateShoppingItemCommand carries a partial item update.
type UpdateShoppingItemCommand struct {
	Quantity  *float64
	Unit      *string
	Purchased *bool
}

// GenerateResult reports the outcome of generating a list from a recipe.
type GenerateResult struct {
	AddedCount       int `json:"added_count"`
	TotalIngredients int `json:"total_ingredients"`
}

// ShoppingService covers the owner-scoped shopping list.
type ShoppingService interface {
	List(ctx context.Context, userID uuid.UUID, onlyUnpurchased bool) ([]*shopping.Item, error)
	Add(ctx context.Context, userID uuid.UUID, cmd AddShoppingItemCommand) (*shopping.Item, error)
	Update(ctx context.Context, userID, id uuid.UUID, cmd UpdateShoppingItemCommand) (*shopping.Item, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	GenerateFromRecipe(ctx context.Context, userID, recipeID uuid.UUID) (GenerateResult, error)
}

// CreatePostCommand carries the feed post create payload.
type CreatePostCommand struct {
	Content  string
	Images   []string
	RecipeID *uuid.UUID
}

// CreateCommentCommand carries the comment create payload.
type CreateCommentCommand struct {
	TargetType community.TargetType
	TargetID   uuid.UUID
	Content    string
	ParentID   *uuid.UUID
}

// CommunityService covers the food feed, post likes and comments.
type CommunityService interface {
	ListPosts(ctx context.Context, offset, limit int) ([]*community.Post, int, error)
	CreatePost(ctx context.Context, userID uuid.UUID, cmd CreatePostCommand) (*community.Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*community.Post, error)
	TogglePostLike(ctx context.Context, postID, userID uuid.UUID) (ToggleResult, error)
	ListComments(ctx context.Context, targetType community.TargetType, targetID uuid.UUID, offset, limit int) ([]*community.Comment, int, error)
	CreateComment(ctx context.Context, userID uuid.UUID, cmd CreateCommentCommand) (*community.Comment, error)
}

// AddLogCommand carries the diary create payload. Zero macro values with a
// recipe set are filled from the recipe.
type AddLogCommand struct {
	RecipeID     *uuid.UUID
	FoodName     string
	Calories     float64
	Protein      float64
	Fat          float64
	Carbohydrate float64
	MealType     nutrition.MealType
	Date         *time.Time
}

// DiaryResult is the one-day diary view.
type DiaryResult struct {
	Date        string                                       `json:"date"`
	Logs        []*nutrition.DietaryLog                      `json:"logs"`
	MealGroups  map[nutrition.MealType][]*nutrition.DietaryLog `json:"meal_groups"`
	Summary     nutrition.Totals                             `json:"summary"`
	DailyTarget int                                          `json:"daily_target"`
}

// RecipeNutritionLine is one ingredient row in a recipe nutrition breakdown.
type RecipeNutritionLine struct {
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Fat          float64 `json:"fat"`
	Carbohydrate float64 `json:"carbohydrate"`
}

// RecipeNutritionResult is the public recipe nutrition breakdown.
type RecipeNutritionResult struct {
	RecipeID           uuid.UUID             `json:"recipe_id"`
	RecipeName         string                `json:"recipe_name"`
	Servings           int                   `json:"servings"`
	TotalCalories      float64               `json:"total_calories"`
	PerServingCalories float64               `json:"per_serving_calories"`
	Ingredients        []RecipeNutritionLine `json:"ingredients"`
}

// NutritionService covers the diary, reports and advice.
type NutritionService interface {
	Diary(ctx context.Context, userID uuid.UUID, date time.Time) (*DiaryResult, error)
	AddLog(ctx context.Context, userID uuid.UUID, cmd AddLogCommand) (*nutrition.DietaryLog, error)
	DeleteLog(ctx context.Context, userID, id uuid.UUID) error
	Report(ctx context.Context, userID uuid.UUID, period nutrition.Period) (*nutrition.Report, error)
	Advice(ctx context.Context, userID uuid.UUID) (*nutrition.Advice, error)
	RecipeNutrition(ctx context.Context, recipeID uuid.UUID) (*RecipeNutritionResult, error)
}
