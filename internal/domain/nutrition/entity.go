// Package nutrition contains dietary logging and the pure reporting logic
// built on top of it.
package nutrition

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MealType identifies which meal a log entry belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Domain validation errors
var (
	ErrInvalidMealType = errors.New("meal type must be breakfast, lunch, dinner or snack")
	ErrEmptyFoodName   = errors.New("log needs a recipe or a food name")
)

// DietaryLog is one eaten-food record, either linked to a recipe or a
// free-form food name.
type DietaryLog struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	RecipeID     *uuid.UUID
	FoodName     string
	Calories     float64
	Protein      float64
	Fat          float64
	Carbohydrate float64
	MealType     MealType
	Date         time.Time // day precision
	CreatedAt    time.Time
}

// NewLog creates a dietary log entry for the given day.
func NewLog(userID uuid.UUID, recipeID *uuid.UUID, foodName string, mealType MealType, date time.Time) (*DietaryLog, error) {
	if !mealType.Valid() {
		return nil, ErrInvalidMealType
	}
	if recipeID == nil && foodName == "" {
		return nil, ErrEmptyFoodName
	}
	return &DietaryLog{
		ID:        uuid.New(),
		UserID:    userID,
		RecipeID:  recipeID,
		FoodName:  foodName,
		MealType:  mealType,
		Date:      Day(date),
		CreatedAt: time.Now(),
	}, nil
}

// Valid reports whether the meal type is one of the four known slots.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// Day truncates a timestamp to midnight in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
