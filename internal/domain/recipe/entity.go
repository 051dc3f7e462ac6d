// Package recipe contains the core domain logic for recipes, their
// ingredient lines, cooking steps and per-user behavior records.
package recipe

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/smartrecipe/server/internal/domain/ingredient"
)

// Difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Category identifies the meal slot a recipe targets.
type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategoryDinner    Category = "dinner"
	CategoryDessert   Category = "dessert"
	CategorySnack     Category = "snack"
	CategorySoup      Category = "soup"
	CategoryStaple    Category = "staple"
	CategoryOther     Category = "other"
)

// CuisineType identifies the regional cuisine of a recipe.
type CuisineType string

const (
	CuisineChinese   CuisineType = "chinese"
	CuisineCantonese CuisineType = "cantonese"
	CuisineSichuan   CuisineType = "sichuan"
	CuisineHunan     CuisineType = "hunan"
	CuisineShandong  CuisineType = "shandong"
	CuisineJiangsu   CuisineType = "jiangsu"
	CuisineZhejiang  CuisineType = "zhejiang"
	CuisineFujian    CuisineType = "fujian"
	CuisineAnhui     CuisineType = "anhui"
	CuisineWestern   CuisineType = "western"
	CuisineJapanese  CuisineType = "japanese"
	CuisineKorean    CuisineType = "korean"
	CuisineOther     CuisineType = "other"
)

// BehaviorType classifies a user interaction with a recipe.
type BehaviorType string

const (
	BehaviorView     BehaviorType = "view"
	BehaviorLike     BehaviorType = "like"
	BehaviorFavorite BehaviorType = "favorite"
	BehaviorCook     BehaviorType = "cook"
)

// RecipeIngredient is one ingredient line on a recipe. Quantity is expressed
// in the line's own unit, which does not have to be grams.
type RecipeIngredient struct {
	IngredientID uuid.UUID
	Ingredient   *ingredient.Ingredient // populated on load
	Quantity     float64
	Unit         string
	IsMain       bool
}

// CookingStep is one ordered instruction on a recipe.
type CookingStep struct {
	StepNumber  int
	Description string
	ImageURL    string
	Duration    int // minutes
	Tips        string
}

// Behavior records one user interaction (view, like, favorite, cook).
type Behavior struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	RecipeID  uuid.UUID
	Type      BehaviorType
	CreatedAt time.Time
}

// Recipe is the aggregate root of this package.
type Recipe struct {
	ID            uuid.UUID
	Name          string
	CoverImage    string
	AuthorID      uuid.UUID
	Difficulty    Difficulty
	CookingTime   int // minutes
	Servings      int
	Category      Category
	CuisineType   CuisineType
	Tags          []string
	TotalCalories float64
	Description   string
	Views         int
	Likes         int
	Favorites     int
	IsPublished   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Ingredients []RecipeIngredient
	Steps       []CookingStep
}

// New creates a recipe owned by authorID with validated core fields.
func New(name string, authorID uuid.UUID) (*Recipe, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Recipe{
		ID:          uuid.New(),
		Name:        name,
		AuthorID:    authorID,
		Difficulty:  DifficultyEasy,
		Category:    CategoryOther,
		CuisineType: CuisineOther,
		Servings:    1,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ValidateName enforces the 1-200 character recipe title rule.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > 200 {
		return ErrNameTooLong
	}
	return nil
}

// AddIngredient appends an ingredient line. Each ingredient may appear on a
// recipe at most once.
func (r *Recipe) AddIngredient(line RecipeIngredient) error {
	if line.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	for _, existing := range r.Ingredients {
		if existing.IngredientID == line.IngredientID {
			return ErrDuplicateIngredient
		}
	}
	if line.Unit == "" {
		line.Unit = "g"
	}
	r.Ingredients = append(r.Ingredients, line)
	r.sortIngredients()
	return nil
}

// AddStep appends a cooking step. Step numbers are unique per recipe.
func (r *Recipe) AddStep(step CookingStep) error {
	if step.StepNumber < 1 {
		return ErrInvalidStepNumber
	}
	if step.Description == "" {
		return ErrEmptyStepDescription
	}
	for _, existing := range r.Steps {
		if existing.StepNumber == step.StepNumber {
			return ErrDuplicateStepNumber
		}
	}
	r.Steps = append(r.Steps, step)
	sort.Slice(r.Steps, func(i, j int) bool {
		return r.Steps[i].StepNumber < r.Steps[j].StepNumber
	})
	return nil
}

// IsOwnedBy reports whether userID authored the recipe.
func (r *Recipe) IsOwnedBy(userID uuid.UUID) bool {
	return r.AuthorID == userID
}

// IncrementViews bumps the view counter.
func (r *Recipe) IncrementViews() {
	r.Views++
}

// ApplyLike adjusts the like counter for a like (delta +1) or un-like
// (delta -1). The counter never drops below zero.
func (r *Recipe) ApplyLike(delta int) {
	r.Likes += delta
	if r.Likes < 0 {
		r.Likes = 0
	}
}

// ApplyFavorite adjusts the favorite counter, flooring at zero.
func (r *Recipe) ApplyFavorite(delta int) {
	r.Favorites += delta
	if r.Favorites < 0 {
		r.Favorites = 0
	}
}

// PerServingCalories divides total calories across servings, treating a
// missing servings count as a single serving.
func (r *Recipe) PerServingCalories() float64 {
	servings := r.Servings
	if servings < 1 {
		servings = 1
	}
	return r.TotalCalories / float64(servings)
}

// mains first, then stable by insertion order
func (r *Recipe) sortIngredients() {
	sort.SliceStable(r.Ingredients, func(i, j int) bool {
		return r.Ingredients[i].IsMain && !r.Ingredients[j].IsMain
	})
}
