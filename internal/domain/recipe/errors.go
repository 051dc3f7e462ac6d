package recipe

import "errors"

// Domain validation errors
var (
	ErrEmptyName            = errors.New("recipe name cannot be empty")
	ErrNameTooLong          = errors.New("recipe name must be at most 200 characters")
	ErrInvalidQuantity      = errors.New("ingredient quantity must be positive")
	ErrDuplicateIngredient  = errors.New("ingredient already present on recipe")
	ErrInvalidStepNumber    = errors.New("step number must be at least 1")
	ErrDuplicateStepNumber  = errors.New("step number already present on recipe")
	ErrEmptyStepDescription = errors.New("step description cannot be empty")
	ErrNoIngredients        = errors.New("recipe has no ingredient lines")
)
