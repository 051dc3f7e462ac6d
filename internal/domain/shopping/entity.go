// Package shopping contains the shopping-list domain: per-user items keyed
// by ingredient, with quantity merging for repeat additions.
package shopping

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/smartrecipe/server/internal/domain/ingredient"
)

// Domain validation errors
var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Item is one row on a user's shopping list. A user has at most one
// unpurchased row per ingredient; repeat additions merge quantities.
type Item struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	IngredientID uuid.UUID
	Ingredient   *ingredient.Ingredient // populated on load
	Quantity     float64
	Unit         string
	Purchased    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewItem creates an unpurchased list entry.
func NewItem(userID, ingredientID uuid.UUID, quantity float64, unit string) (*Item, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if unit == "" {
		unit = "g"
	}
	now := time.Now()
	return &Item{
		ID:           uuid.New(),
		UserID:       userID,
		IngredientID: ingredientID,
		Quantity:     quantity,
		Unit:         unit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Merge folds an additional quantity into the item.
func (i *Item) Merge(quantity float64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	i.Quantity += quantity
	i.UpdatedAt = time.Now()
	return nil
}

// MarkPurchased flips the purchased flag.
func (i *Item) MarkPurchased(purchased bool) {
	i.Purchased = purchased
	i.UpdatedAt = time.Now()
}
