// Package ingredient contains the core domain logic for the ingredient catalog,
// per-100g nutrition data and recognition history.
package ingredient

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category identifies the catalog section an ingredient belongs to.
type Category string

// Catalog categories.
const (
	CategoryVegetable Category = "vegetable"
	CategoryMeat      Category = "meat"
	CategorySeafood   Category = "seafood"
	CategoryFruit     Category = "fruit"
	CategoryGrain     Category = "grain"
	CategoryDairy     Category = "dairy"
	CategoryEgg       Category = "egg"
	CategorySeasoning Category = "seasoning"
	CategoryOil       Category = "oil"
	CategoryBean      Category = "bean"
	CategoryNuts      Category = "nuts"
	CategoryOther     Category = "other"
)

// Domain validation errors
var (
	ErrEmptyName       = errors.New("ingredient name cannot be empty")
	ErrNameTooLong     = errors.New("ingredient name must be at most 100 characters")
	ErrInvalidMonth    = errors.New("month must be between 1 and 12")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Nutrition holds macro values, either per 100g or scaled to a quantity.
type Nutrition struct {
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Fat          float64 `json:"fat"`
	Carbohydrate float64 `json:"carbohydrate"`
	Fiber        float64 `json:"fiber"`
}

// Ingredient is a catalog entry. Macro fields are per 100g.
type Ingredient struct {
	ID           uuid.UUID
	Name         string
	Category     Category
	ImageURL     string
	Calories     float64
	Protein      float64
	Fat          float64
	Carbohydrate float64
	Fiber        float64
	Vitamins     map[string]float64
	Description  string
	Season       []int // months 1-12 in which the ingredient is in season
	CreatedAt    time.Time
}

// New creates a catalog entry with a validated name and category.
func New(name string, category Category) (*Ingredient, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > 100 {
		return nil, ErrNameTooLong
	}
	if !category.Valid() {
		category = CategoryOther
	}
	return &Ingredient{
		ID:        uuid.New(),
		Name:      name,
		Category:  category,
		CreatedAt: time.Now(),
	}, nil
}

// Valid reports whether the category is one of the known catalog sections.
func (c Category) Valid() bool {
	switch c {
	case CategoryVegetable, CategoryMeat, CategorySeafood, CategoryFruit,
		CategoryGrain, CategoryDairy, CategoryEgg, CategorySeasoning,
		CategoryOil, CategoryBean, CategoryNuts, CategoryOther:
		return true
	}
	return false
}

// IsSeasonal reports whether the ingredient is in season for the given month.
func (i *Ingredient) IsSeasonal(month time.Month) bool {
	for _, m := range i.Season {
		if m == int(month) {
			return true
		}
	}
	return false
}

// NutritionSummary returns the per-100g macro values.
func (i *Ingredient) NutritionSummary() Nutrition {
	return Nutrition{
		Calories:     i.Calories,
		Protein:      i.Protein,
		Fat:          i.Fat,
		Carbohydrate: i.Carbohydrate,
		Fiber:        i.Fiber,
	}
}

// NutritionFor scales the per-100g macros to the given weight in grams.
func (i *Ingredient) NutritionFor(quantityGrams float64) (Nutrition, error) {
	if quantityGrams <= 0 {
		return Nutrition{}, ErrInvalidQuantity
	}
	factor := quantityGrams / 100
	return Nutrition{
		Calories:     i.Calories * factor,
		Protein:      i.Protein * factor,
		Fat:          i.Fat * factor,
		Carbohydrate: i.Carbohydrate * factor,
		Fiber:        i.Fiber * factor,
	}, nil
}

// RecognizedItem is a single candidate in a recognition result.
type RecognizedItem struct {
	Name         string    `json:"name"`
	Confidence   float64   `json:"confidence"`
	IngredientID uuid.UUID `json:"ingredient_id,omitempty"`
}

// RecognitionResult is the payload stored for one image recognition run.
type RecognitionResult struct {
	Ingredients    []RecognizedItem `json:"ingredients"`
	TotalItems     int              `json:"total_items"`
	ProcessingTime float64          `json:"processing_time"`
}

// Recognition is one recognition history record for a user.
type Recognition struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ImageURL  string
	Result    RecognitionResult
	CreatedAt time.Time
}

// TopItem returns the highest-confidence candidate, or nil when the
// result is empty.
func (r *Recognition) TopItem() *RecognizedItem {
	if len(r.Result.Ingredients) == 0 {
		return nil
	}
	top := &r.Result.Ingredients[0]
	for idx := range r.Result.Ingredients {
		if r.Result.Ingredients[idx].Confidence > top.Confidence {
			top = &r.Result.Ingredients[idx]
		}
	}
	return top
}

// RecognizedNames returns the candidate names in result order.
func (r *Recognition) RecognizedNames() []string {
	names := make([]string, 0, len(r.Result.Ingredients))
	for _, item := range r.Result.Ingredients {
		names = append(names, item.Name)
	}
	return names
}
