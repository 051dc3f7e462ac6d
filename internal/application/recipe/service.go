// Package recipe provides the application layer for recipe management,
// interactions and discovery.
package recipe

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/domain/recipe"
	"github.com/smartrecipe/server/internal/ports/inbound"
	"github.com/smartrecipe/server/internal/ports/outbound"
	"github.com/smartrecipe/server/pkg/errors"
)

const (
	recommendLimit = 20
	cacheTTL       = 10 * time.Minute
)

// RecipeService implements the recipe use cases.
type RecipeService struct {
	recipeRepo outbound.RecipeRepository
	cache      outbound.RecipeCache
	logger     *zap.Logger
}

// NewRecipeService creates a new recipe service. The cache may be nil, in
// which case detail reads always hit the repository.
func NewRecipeService(recipeRepo outbound.RecipeRepository, cache outbound.RecipeCache, logger *zap.Logger) inbound.RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		cache:      cache,
		logger:     logger.Named("recipe-service"),
	}
}

// List returns published recipes matching the filter.
func (s *RecipeService) List(ctx context.Context, q inbound.ListRecipesQuery) ([]*recipe.Recipe, int, error) {
	recipes, total, err := s.recipeRepo.List(ctx, outbound.RecipeFilter{
		Category:      q.Category,
		Difficulty:    q.Difficulty,
		CuisineType:   q.CuisineType,
		Search:        q.Search,
		PublishedOnly: true,
		Ordering:      q.Ordering,
		Offset:        q.Offset,
		Limit:         q.Limit,
	})
	if err != nil {
		return nil, 0, errors.NewDatabaseError("list recipes", err)
	}
	return recipes, total, nil
}

// Create builds a recipe from the command, with nested ingredient lines
// and steps, and persists it.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, cmd inbound.CreateRecipeCommand) (*recipe.Recipe, error) {
	r, err := recipe.New(cmd.Name, authorID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	applyCreate(r, cmd)

	for _, line := range cmd.Ingredients {
		err := r.AddIngredient(recipe.RecipeIngredient{
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
			IsMain:       line.IsMain,
		})
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	for _, step := range cmd.Steps {
		err := r.AddStep(recipe.CookingStep{
			StepNumber:  step.StepNumber,
			Description: step.Description,
			ImageURL:    step.ImageURL,
			Duration:    step.Duration,
			Tips:        step.Tips,
		})
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := s.recipeRepo.Create(ctx, r); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}
	s.logger.Info("Recipe created",
		zap.String("recipe_id", r.ID.String()),
		zap.String("author_id", authorID.String()),
	)
	return r, nil
}

// Get returns a published recipe with its lines and steps, counts the view
// and records a view behavior for authenticated callers.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*recipe.Recipe, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsPublished {
		return nil, errors.NewRecipeNotFoundError(id.String())
	}

	if err := s.recipeRepo.IncrementViews(ctx, id); err != nil {
		s.logger.Warn("Failed to count view", zap.Error(err))
	} else {
		r.IncrementViews()
		s.invalidate(ctx, id)
	}

	if viewerID != nil {
		b := &recipe.Behavior{
			ID:        uuid.New(),
			UserID:    *viewerID,
			RecipeID:  id,
			Type:      recipe.BehaviorView,
			CreatedAt: time.Now(),
		}
		if err := s.recipeRepo.AddBehavior(ctx, b); err != nil {
			s.logger.Warn("Failed to record view behavior", zap.Error(err))
		}
	}
	return r, nil
}

// Update applies a partial update. Only the author may update.
func (s *RecipeService) Update(ctx context.Context, id, userID uuid.UUID, cmd inbound.UpdateRecipeCommand) (*recipe.Recipe, error) {
	r, err := s.findOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if err := recipe.ValidateName(*cmd.Name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		r.Name = *cmd.Name
	}
	if cmd.CoverImage != nil {
		r.CoverImage = *cmd.CoverImage
	}
	if cmd.Difficulty != nil {
		r.Difficulty = recipe.Difficulty(*cmd.Difficulty)
	}
	if cmd.CookingTime != nil {
		r.CookingTime = *cmd.CookingTime
	}
	if cmd.Servings != nil {
		r.Servings = *cmd.Servings
	}
	if cmd.Category != nil {
		r.Category = recipe.Category(*cmd.Category)
	}
	if cmd.CuisineType != nil {
		r.CuisineType = recipe.CuisineType(*cmd.CuisineType)
	}
	if cmd.Tags != nil {
		r.Tags = *cmd.Tags
	}
	if cmd.TotalCalories != nil {
		r.TotalCalories = *cmd.TotalCalories
	}
	if cmd.Description != nil {
		r.Description = *cmd.Description
	}
	if cmd.IsPublished != nil {
		r.IsPublished = *cmd.IsPublished
	}

	if cmd.Ingredients != nil {
		r.Ingredients = nil
		for _, line := range *cmd.Ingredients {
			err := r.AddIngredient(recipe.RecipeIngredient{
				IngredientID: line.IngredientID,
				Quantity:     line.Quantity,
				Unit:         line.Unit,
				IsMain:       line.IsMain,
			})
			if err != nil {
				return nil, errors.NewValidationError(err.Error())
			}
		}
	}
	if cmd.Steps != nil {
		r.Steps = nil
		for _, step := range *cmd.Steps {
			err := r.AddStep(recipe.CookingStep{
				StepNumber:  step.StepNumber,
				Description: step.Description,
				ImageURL:    step.ImageURL,
				Duration:    step.Duration,
				Tips:        step.Tips,
			})
			if err != nil {
				return nil, errors.NewValidationError(err.Error())
			}
		}
	}

	r.UpdatedAt = time.Now()
	if err := s.recipeRepo.Update(ctx, r); err != nil {
		return nil, errors.NewDatabaseError("update recipe", err)
	}
	s.invalidate(ctx, id)
	return r, nil
}

// Delete removes a recipe with its lines, steps and behaviors. Only the
// author may delete.
func (s *RecipeService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.findOwned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.recipeRepo.Delete(ctx, id); err != nil {
		return errors.NewDatabaseError("delete recipe", err)
	}
	s.invalidate(ctx, id)
	s.logger.Info("Recipe deleted", zap.String("recipe_id", id.String()))
	return nil
}

// ToggleLike flips the caller's like on the recipe.
func (s *RecipeService) ToggleLike(ctx context.Context, id, userID uuid.UUID) (inbound.ToggleResult, error) {
	return s.toggle(ctx, id, userID, recipe.BehaviorLike)
}

// ToggleFavorite flips the caller's favorite on the recipe.
func (s *RecipeService) ToggleFavorite(ctx context.Context, id, userID uuid.UUID) (inbound.ToggleResult, error) {
	return s.toggle(ctx, id, userID, recipe.BehaviorFavorite)
}

// Favorites returns the caller's favorited published recipes.
func (s *RecipeService) Favorites(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*recipe.Recipe, int, error) {
	recipes, total, err := s.recipeRepo.FindFavorites(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, errors.NewDatabaseError("list favorites", err)
	}
	return recipes, total, nil
}

// MyRecipes returns the caller's own recipes, unpublished included.
func (s *RecipeService) MyRecipes(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*recipe.Recipe, int, error) {
	recipes, total, err := s.recipeRepo.List(ctx, outbound.RecipeFilter{
		AuthorID: &userID,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return nil, 0, errors.NewDatabaseError("list own recipes", err)
	}
	return recipes, total, nil
}

// Search returns published recipes matching the keyword in name,
// description or tags.
func (s *RecipeService) Search(ctx context.Context, keyword string) ([]*recipe.Recipe, error) {
	if keyword == "" {
		return nil, errors.NewBadRequestError("search keyword is required")
	}
	recipes, _, err := s.recipeRepo.List(ctx, outbound.RecipeFilter{
		Search:        keyword,
		PublishedOnly: true,
		Limit:         100,
	})
	if err != nil {
		return nil, errors.NewDatabaseError("search recipes", err)
	}
	return recipes, nil
}

// Recommend returns the most viewed published recipes.
func (s *RecipeService) Recommend(ctx context.Context) ([]*recipe.Recipe, error) {
	recipes, err := s.recipeRepo.FindTop(ctx, recommendLimit)
	if err != nil {
		return nil, errors.NewDatabaseError("recommend recipes", err)
	}
	return recipes, nil
}

func (s *RecipeService) toggle(ctx context.Context, id, userID uuid.UUID, t recipe.BehaviorType) (inbound.ToggleResult, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return inbound.ToggleResult{}, err
	}
	if !r.IsPublished {
		return inbound.ToggleResult{}, errors.NewRecipeNotFoundError(id.String())
	}

	active, err := s.recipeRepo.HasBehavior(ctx, userID, id, t)
	if err != nil {
		return inbound.ToggleResult{}, errors.NewDatabaseError("check behavior", err)
	}

	delta := 1
	if active {
		delta = -1
		if err := s.recipeRepo.RemoveBehavior(ctx, userID, id, t); err != nil {
			return inbound.ToggleResult{}, errors.NewDatabaseError("remove behavior", err)
		}
	} else {
		b := &recipe.Behavior{
			ID:        uuid.New(),
			UserID:    userID,
			RecipeID:  id,
			Type:      t,
			CreatedAt: time.Now(),
		}
		if err := s.recipeRepo.AddBehavior(ctx, b); err != nil {
			return inbound.ToggleResult{}, errors.NewDatabaseError("add behavior", err)
		}
	}

	likesDelta, favoritesDelta := 0, 0
	if t == recipe.BehaviorLike {
		likesDelta = delta
		r.ApplyLike(delta)
	} else {
		favoritesDelta = delta
		r.ApplyFavorite(delta)
	}
	if err := s.recipeRepo.UpdateCounters(ctx, id, likesDelta, favoritesDelta); err != nil {
		return inbound.ToggleResult{}, errors.NewDatabaseError("update counters", err)
	}
	s.invalidate(ctx, id)

	count := r.Likes
	if t == recipe.BehaviorFavorite {
		count = r.Favorites
	}
	return inbound.ToggleResult{Active: !active, Count: count}, nil
}

// load fetches a recipe through the cache.
func (s *RecipeService) load(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	if s.cache != nil {
		if r, err := s.cache.Get(ctx, id); err == nil && r != nil {
			return r, nil
		}
	}
	r, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, errors.NewRecipeNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, r, cacheTTL); err != nil {
			s.logger.Warn("Failed to cache recipe", zap.Error(err))
		}
	}
	return r, nil
}

func (s *RecipeService) findOwned(ctx context.Context, id, userID uuid.UUID) (*recipe.Recipe, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsOwnedBy(userID) {
		return nil, errors.NewInsufficientPermissionsError("modify recipe")
	}
	return r, nil
}

func (s *RecipeService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("Failed to invalidate recipe cache", zap.Error(err))
	}
}

func applyCreate(r *recipe.Recipe, cmd inbound.CreateRecipeCommand) {
	r.CoverImage = cmd.CoverImage
	if cmd.Difficulty != "" {
		r.Difficulty = recipe.Difficulty(cmd.Difficulty)
	}
	r.CookingTime = cmd.CookingTime
	if cmd.Servings > 0 {
		r.Servings = cmd.Servings
	}
	if cmd.Category != "" {
		r.Category = recipe.Category(cmd.Category)
	}
	if cmd.CuisineType != "" {
		r.CuisineType = recipe.CuisineType(cmd.CuisineType)
	}
	r.Tags = cmd.Tags
	r.TotalCalories = cmd.TotalCalories
	r.Description = cmd.Description
	if cmd.IsPublished != nil {
		r.IsPublished = *cmd.IsPublished
	}
}
