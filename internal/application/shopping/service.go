// Package shopping provides the application layer for the owner-scoped
// shopping list.
package shopping

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/domain/recipe"
	"github.com/smartrecipe/server/internal/domain/shopping"
	"github.com/smartrecipe/server/internal/ports/inbound"
	"github.com/smartrecipe/server/internal/ports/outbound"
	"github.com/smartrecipe/server/pkg/errors"
)

// ShoppingService implements the shopping list use cases.
type ShoppingService struct {
	shoppingRepo outbound.ShoppingRepository
	recipeRepo   outbound.RecipeRepository
	logger       *zap.Logger
}

// NewShoppingService creates a new shopping service.
func NewShoppingService(
	shoppingRepo outbound.ShoppingRepository,
	recipeRepo outbound.RecipeRepository,
	logger *zap.Logger,
) inbound.ShoppingService {
	return &ShoppingService{
		shoppingRepo: shoppingRepo,
		recipeRepo:   recipeRepo,
		logger:       logger.Named("shopping-service"),
	}
}

// List returns the caller's items, unpurchased first, newest first.
func (s *ShoppingService) List(ctx context.Context, userID uuid.UUID, onlyUnpurchased bool) ([]*shopping.Item, error) {
	items, err := s.shoppingRepo.FindByUser(ctx, userID, onlyUnpurchased)
	if err != nil {
		return nil, errors.NewDatabaseError("list shopping items", err)
	}
	return items, nil
}

// Add puts an ingredient on the list, merging into an existing unpurchased
// row for the same ingredient.
func (s *ShoppingService) Add(ctx context.Context, userID uuid.UUID, cmd inbound.AddShoppingItemCommand) (*shopping.Item, error) {
	existing, err := s.shoppingRepo.FindUnpurchased(ctx, userID, cmd.IngredientID)
	if err != nil && !stderrors.Is(err, outbound.ErrNotFound) {
		return nil, errors.NewDatabaseError("find shopping item", err)
	}
	if existing != nil {
		if err := existing.Merge(cmd.Quantity); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := s.shoppingRepo.Update(ctx, existing); err != nil {
			return nil, errors.NewDatabaseError("update shopping item", err)
		}
		return existing, nil
	}

	item, err := shopping.NewItem(userID, cmd.IngredientID, cmd.Quantity, cmd.Unit)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.shoppingRepo.Create(ctx, item); err != nil {
		return nil, errors.NewDatabaseError("create shopping item", err)
	}
	return item, nil
}

// Update applies a partial update to the caller's item.
func (s *ShoppingService) Update(ctx context.Context, userID, id uuid.UUID, cmd inbound.UpdateShoppingItemCommand) (*shopping.Item, error) {
	item, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if cmd.Quantity != nil {
		if *cmd.Quantity <= 0 {
			return nil, errors.NewValidationError(shopping.ErrInvalidQuantity.Error())
		}
		item.Quantity = *cmd.Quantity
	}
	if cmd.Unit != nil {
		item.Unit = *cmd.Unit
	}
	if cmd.Purchased != nil {
		item.MarkPurchased(*cmd.Purchased)
	}
	if err := s.shoppingRepo.Update(ctx, item); err != nil {
		return nil, errors.NewDatabaseError("update shopping item", err)
	}
	return item, nil
}

// Delete removes the caller's item.
func (s *ShoppingService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.shoppingRepo.Delete(ctx, id); err != nil {
		return errors.NewDatabaseError("delete shopping item", err)
	}
	return nil
}

// GenerateFromRecipe adds every ingredient line of the recipe to the list,
// merging quantities into existing unpurchased rows.
func (s *ShoppingService) GenerateFromRecipe(ctx context.Context, userID, recipeID uuid.UUID) (inbound.GenerateResult, error) {
	r, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return inbound.GenerateResult{}, errors.NewRecipeNotFoundError(recipeID.String())
		}
		return inbound.GenerateResult{}, errors.NewDatabaseError("find recipe", err)
	}
	if len(r.Ingredients) == 0 {
		return inbound.GenerateResult{}, errors.NewBadRequestError(recipe.ErrNoIngredients.Error())
	}

	added := 0
	for _, line := range r.Ingredients {
		existing, err := s.shoppingRepo.FindUnpurchased(ctx, userID, line.IngredientID)
		if err != nil && !stderrors.Is(err, outbound.ErrNotFound) {
			return inbound.GenerateResult{}, errors.NewDatabaseError("find shopping item", err)
		}
		if existing != nil {
			if err := existing.Merge(line.Quantity); err != nil {
				continue
			}
			if err := s.shoppingRepo.Update(ctx, existing); err != nil {
				return inbound.GenerateResult{}, errors.NewDatabaseError("update shopping item", err)
			}
			continue
		}
		item, err := shopping.NewItem(userID, line.IngredientID, line.Quantity, line.Unit)
		if err != nil {
			continue
		}
		if err := s.shoppingRepo.Create(ctx, item); err != nil {
			return inbound.GenerateResult{}, errors.NewDatabaseError("create shopping item", err)
		}
		added++
	}

	s.logger.Info("Shopping list generated",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", recipeID.String()),
		zap.Int("added", added),
	)
	return inbound.GenerateResult{
		AddedCount:       added,
		TotalIngredients: len(r.Ingredients),
	}, nil
}

func (s *ShoppingService) findOwned(ctx context.Context, userID, id uuid.UUID) (*shopping.Item, error) {
	item, err := s.shoppingRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, errors.NewNotFoundError("shopping item")
		}
		return nil, errors.NewDatabaseError("find shopping item", err)
	}
	if item.UserID != userID {
		return nil, errors.NewNotFoundError("shopping item")
	}
	return item, nil
}
