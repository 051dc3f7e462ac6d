package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/smartrecipe/server/internal/domain/community"
	"github.com/smartrecipe/server/internal/domain/ingredient"
	"github.com/smartrecipe/server/internal/domain/nutrition"
	"github.com/smartrecipe/server/internal/domain/recipe"
	"github.com/smartrecipe/server/internal/domain/shopping"
	"github.com/smartrecipe/server/internal/domain/user"
)

// UserResponse is the account payload in API responses.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileResponse is the full profile payload, shown to its owner.
type ProfileResponse struct {
	Nickname            string   `json:"nickname"`
	Avatar              string   `json:"avatar"`
	Gender              string   `json:"gender"`
	Age                 int      `json:"age"`
	Phone               string   `json:"phone"`
	DietaryPreferences  []string `json:"dietary_preferences"`
	Allergies           []string `json:"allergies"`
	HealthGoal          string   `json:"health_goal"`
	DailyCaloriesTarget int      `json:"daily_calories_target"`
}

// PublicProfileResponse hides contact and health details.
type PublicProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	Avatar    string    `json:"avatar"`
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
}

func userToResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
	}
}

func profileToResponse(p *user.Profile) ProfileResponse {
	return ProfileResponse{
		Nickname:            p.Nickname,
		Avatar:              p.Avatar,
		Gender:              p.Gender,
		Age:                 p.Age,
		Phone:               p.Phone,
		DietaryPreferences:  emptySlice(p.DietaryPreferences),
		Allergies:           emptySlice(p.Allergies),
		HealthGoal:          p.HealthGoal,
		DailyCaloriesTarget: p.DailyCaloriesTarget,
	}
}

func publicProfileToResponse(u *user.User, p *user.Profile) PublicProfileResponse {
	resp := PublicProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
	if p != nil {
		resp.Nickname = p.Nickname
		resp.Avatar = p.Avatar
		resp.Gender = p.Gender
	}
	return resp
}

// IngredientResponse is the catalog entry payload.
type IngredientResponse struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	Category      ingredient.Category  `json:"category"`
	ImageURL      string               `json:"image_url"`
	Nutrition     ingredient.Nutrition `json:"nutrition"`
	Vitamins      map[string]float64   `json:"vitamins,omitempty"`
	Description   string               `json:"description"`
	Season        []int                `json:"season"`
	IsSeasonalNow bool                 `json:"is_seasonal_now"`
	CreatedAt     time.Time            `json:"created_at"`
}

func ingredientToResponse(i *ingredient.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:            i.ID,
		Name:          i.Name,
		Category:      i.Category,
		ImageURL:      i.ImageURL,
		Nutrition:     i.NutritionSummary(),
		Vitamins:      i.Vitamins,
		Description:   i.Description,
		Season:        emptySlice(i.Season),
		IsSeasonalNow: i.IsSeasonal(time.Now().Month()),
		CreatedAt:     i.CreatedAt,
	}
}

func ingredientsToResponse(items []*ingredient.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(items))
	for _, i := range items {
		out = append(out, ingredientToResponse(i))
	}
	return out
}

// RecognitionResponse is one recognition history record.
type RecognitionResponse struct {
	ID        uuid.UUID                    `json:"id"`
	ImageURL  string                       `json:"image_url"`
	Result    ingredient.RecognitionResult `json:"result"`
	CreatedAt time.Time                    `json:"created_at"`
}

func recognitionToResponse(r *ingredient.Recognition) RecognitionResponse {
	return RecognitionResponse{
		ID:        r.ID,
		ImageURL:  r.ImageURL,
		Result:    r.Result,
		CreatedAt: r.CreatedAt,
	}
}

// RecipeIngredientResponse is one ingredient line on a recipe payload.
type RecipeIngredientResponse struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Name         string    `json:"name,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	IsMain       bool      `json:"is_main"`
}

// CookingStepResponse is one step on a recipe payload.
type CookingStepResponse struct {
	StepNumber  int    `json:"step_number"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Duration    int    `json:"duration"`
	Tips        string `json:"tips"`
}

// RecipeResponse is the full recipe payload with nested lines and steps.
type RecipeResponse struct {
	ID            uuid.UUID                  `json:"id"`
	Name          string                     `json:"name"`
	CoverImage    string                     `json:"cover_image"`
	AuthorID      uuid.UUID                  `json:"author_id"`
	Difficulty    recipe.Difficulty          `json:"difficulty"`
	CookingTime   int                        `json:"cooking_time"`
	Servings      int                        `json:"servings"`
	Category      recipe.Category            `json:"category"`
	CuisineType   recipe.CuisineType         `json:"cuisine_type"`
	Tags          []string                   `json:"tags"`
	TotalCalories float64                    `json:"total_calories"`
	Description   string                     `json:"description"`
	Views         int                        `json:"views_count"`
	Likes         int                        `json:"likes_count"`
	Favorites     int                        `json:"favorites_count"`
	IsPublished   bool                       `json:"is_published"`
	Ingredients   []RecipeIngredientResponse `json:"ingredients"`
	Steps         []CookingStepResponse      `json:"steps"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// RecipeSummaryResponse is the list-item recipe payload.
type RecipeSummaryResponse struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	CoverImage    string             `json:"cover_image"`
	AuthorID      uuid.UUID          `json:"author_id"`
	Difficulty    recipe.Difficulty  `json:"difficulty"`
	CookingTime   int                `json:"cooking_time"`
	Servings      int                `json:"servings"`
	Category      recipe.Category    `json:"category"`
	CuisineType   recipe.CuisineType `json:"cuisine_type"`
	Tags          []string           `json:"tags"`
	TotalCalories float64            `json:"total_calories"`
	Views         int                `json:"views_count"`
	Likes         int                `json:"likes_count"`
	Favorites     int                `json:"favorites_count"`
	IsPublished   bool               `json:"is_published"`
	CreatedAt     time.Time          `json:"created_at"`
}

func recipeToResponse(r *recipe.Recipe) RecipeResponse {
	lines := make([]RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, line := range r.Ingredients {
		out := RecipeIngredientResponse{
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
			IsMain:       line.IsMain,
		}
		if line.Ingredient != nil {
			out.Name = line.Ingredient.Name
			out.ImageURL = line.Ingredient.ImageURL
		}
		lines = append(lines, out)
	}

	steps := make([]CookingStepResponse, 0, len(r.Steps))
	for _, s := range r.Steps {
		steps = append(steps, CookingStepResponse{
			StepNumber:  s.StepNumber,
			Description: s.Description,
			ImageURL:    s.ImageURL,
			Duration:    s.Duration,
			Tips:        s.Tips,
		})
	}

	return RecipeResponse{
		ID:            r.ID,
		Name:          r.Name,
		CoverImage:    r.CoverImage,
		AuthorID:      r.AuthorID,
		Difficulty:    r.Difficulty,
		CookingTime:   r.CookingTime,
		Servings:      r.Servings,
		Category:      r.Category,
		CuisineType:   r.CuisineType,
		Tags:          emptySlice(r.Tags),
		TotalCalories: r.TotalCalories,
		Description:   r.Description,
		Views:         r.Views,
		Likes:         r.Likes,
		Favorites:     r.Favorites,
		IsPublished:   r.IsPublished,
		Ingredients:   lines,
		Steps:         steps,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func recipeToSummary(r *recipe.Recipe) RecipeSummaryResponse {
	return RecipeSummaryResponse{
		ID:            r.ID,
		Name:          r.Name,
		CoverImage:    r.CoverImage,
		AuthorID:      r.AuthorID,
		Difficulty:    r.Difficulty,
		CookingTime:   r.CookingTime,
		Servings:      r.Servings,
		Category:      r.Category,
		CuisineType:   r.CuisineType,
		Tags:          emptySlice(r.Tags),
		TotalCalories: r.TotalCalories,
		Views:         r.Views,
		Likes:         r.Likes,
		Favorites:     r.Favorites,
		IsPublished:   r.IsPublished,
		CreatedAt:     r.CreatedAt,
	}
}

func recipesToSummaries(items []*recipe.Recipe) []RecipeSummaryResponse {
	out := make([]RecipeSummaryResponse, 0, len(items))
	for _, r := range items {
		out = append(out, recipeToSummary(r))
	}
	return out
}

// ShoppingItemResponse is one row on the shopping list payload.
type ShoppingItemResponse struct {
	ID             uuid.UUID `json:"id"`
	IngredientID   uuid.UUID `json:"ingredient_id"`
	IngredientName string    `json:"ingredient_name,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit"`
	Purchased      bool      `json:"purchased"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func shoppingItemToResponse(item *shopping.Item) ShoppingItemResponse {
	out := ShoppingItemResponse{
		ID:           item.ID,
		IngredientID: item.IngredientID,
		Quantity:     item.Quantity,
		Unit:         item.Unit,
		Purchased:    item.Purchased,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
	if item.Ingredient != nil {
		out.IngredientName = item.Ingredient.Name
		out.ImageURL = item.Ingredient.ImageURL
	}
	return out
}

func shoppingItemsToResponse(items []*shopping.Item) []ShoppingItemResponse {
	out := make([]ShoppingItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, shoppingItemToResponse(item))
	}
	return out
}

// PostResponse is one feed entry payload.
type PostResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	RecipeID      *uuid.UUID `json:"recipe_id,omitempty"`
	Content       string     `json:"content"`
	Images        []string   `json:"images"`
	Likes         int        `json:"likes_count"`
	CommentsCount int        `json:"comments_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

func postToResponse(p *community.Post) PostResponse {
	return PostResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		RecipeID:      p.RecipeID,
		Content:       p.Content,
		Images:        emptySlice(p.Images),
		Likes:         p.Likes,
		CommentsCount: p.CommentsCount,
		CreatedAt:     p.CreatedAt,
	}
}

func postsToResponse(items []*community.Post) []PostResponse {
	out := make([]PostResponse, 0, len(items))
	for _, p := range items {
		out = append(out, postToResponse(p))
	}
	return out
}

// CommentResponse is one comment with its nested replies.
type CommentResponse struct {
	ID         uuid.UUID            `json:"id"`
	UserID     uuid.UUID            `json:"user_id"`
	TargetType community.TargetType `json:"target_type"`
	TargetID   uuid.UUID            `json:"target_id"`
	Content    string               `json:"content"`
	ParentID   *uuid.UUID           `json:"parent_id,omitempty"`
	Replies    []CommentResponse    `json:"replies"`
	CreatedAt  time.Time            `json:"created_at"`
}

func commentToResponse(c *community.Comment) CommentResponse {
	replies := make([]CommentResponse, 0, len(c.Replies))
	for idx := range c.Replies {
		replies = append(replies, commentToResponse(&c.Replies[idx]))
	}
	return CommentResponse{
		ID:         c.ID,
		UserID:     c.UserID,
		TargetType: c.TargetType,
		TargetID:   c.TargetID,
		Content:    c.Content,
		ParentID:   c.ParentID,
		Replies:    replies,
		CreatedAt:  c.CreatedAt,
	}
}

func commentsToResponse(items []*community.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(items))
	for _, c := range items {
		out = append(out, commentToResponse(c))
	}
	return out
}

// DietaryLogResponse is one diary entry payload.
type DietaryLogResponse struct {
	ID           uuid.UUID          `json:"id"`
	RecipeID     *uuid.UUID         `json:"recipe_id,omitempty"`
	FoodName     string             `json:"food_name"`
	Calories     float64            `json:"calories"`
	Protein      float64            `json:"protein"`
	Fat          float64            `json:"fat"`
	Carbohydrate float64            `json:"carbohydrate"`
	MealType     nutrition.MealType `json:"meal_type"`
	Date         string             `json:"date"`
	CreatedAt    time.Time          `json:"created_at"`
}

func dietaryLogToResponse(l *nutrition.DietaryLog) DietaryLogResponse {
	return DietaryLogResponse{
		ID:           l.ID,
		RecipeID:     l.RecipeID,
		FoodName:     l.FoodName,
		Calories:     l.Calories,
		Protein:      l.Protein,
		Fat:          l.Fat,
		Carbohydrate: l.Carbohydrate,
		MealType:     l.MealType,
		Date:         l.Date.Format("2006-01-02"),
		CreatedAt:    l.CreatedAt,
	}
}

func dietaryLogsToResponse(items []*nutrition.DietaryLog) []DietaryLogResponse {
	out := make([]DietaryLogResponse, 0, len(items))
	for _, l := range items {
		out = append(out, dietaryLogToResponse(l))
	}
	return out
}

// emptySlice keeps empty collections serializing as [] instead of null.
func emptySlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
