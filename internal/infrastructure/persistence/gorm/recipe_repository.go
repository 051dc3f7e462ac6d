package gorm

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartrecipe/server/internal/domain/recipe"
	"github.com/smartrecipe/server/internal/ports/outbound"
)

// orderings maps API ordering values to SQL column order clauses.
var orderings = map[string]string{
	"created_at":    "created_at ASC",
	"-created_at":   "created_at DESC",
	"views":         "views_count ASC",
	"-views":        "views_count DESC",
	"likes":         "likes_count ASC",
	"-likes":        "likes_count DESC",
	"cooking_time":  "cooking_time ASC",
	"-cooking_time": "cooking_time DESC",
}

// RecipeRepository implements outbound.RecipeRepository using GORM.
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create stores a recipe with its lines and steps.
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	return r.db.WithContext(ctx).Create(recipeToModel(rec)).Error
}

// Update replaces a recipe and its nested collections.
func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	model := recipeToModel(rec)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&RecipeIngredientModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&CookingStepModel{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error
	})
}

// Delete removes a recipe with its lines, steps and behaviors.
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&RecipeIngredientModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&CookingStepModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&BehaviorModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&RecipeModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return outbound.ErrNotFound
		}
		return nil
	})
}

// FindByID loads a recipe with its lines (ingredient preloaded) and steps.
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		}).
		First(&model, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return recipeToDomain(&model), nil
}

// List returns recipes matching the filter.
func (r *RecipeRepository) List(ctx context.Context, filter outbound.RecipeFilter) ([]*recipe.Recipe, int, error) {
	filtered := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&RecipeModel{})
		if filter.PublishedOnly {
			query = query.Where("is_published = ?", true)
		}
		if filter.AuthorID != nil {
			query = query.Where("author_id = ?", *filter.AuthorID)
		}
		if filter.Category != "" {
			query = query.Where("category = ?", filter.Category)
		}
		if filter.Difficulty != "" {
			query = query.Where("difficulty = ?", filter.Difficulty)
		}
		if filter.CuisineType != "" {
			query = query.Where("cuisine_type = ?", filter.CuisineType)
		}
		if filter.Search != "" {
			pattern := "%" + strings.TrimSpace(filter.Search) + "%"
			query = query.Where("name LIKE ? OR description LIKE ? OR tags LIKE ?", pattern, pattern, pattern)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := orderings[filter.Ordering]
	if !ok {
		order = "created_at DESC"
	}

	var models []RecipeModel
	err := filtered().
		Preload("Ingredients.Ingredient").
		Order(order).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = recipeToDomain(&models[i])
	}
	return recipes, int(total), nil
}

// FindTop returns published recipes ordered by views then likes.
func (r *RecipeRepository) FindTop(ctx context.Context, limit int) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("views_count DESC, likes_count DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = recipeToDomain(&models[i])
	}
	return recipes, nil
}

// FindByIngredientNames returns published recipes using any of the named
// ingredients, ordered by views then likes.
func (r *RecipeRepository) FindByIngredientNames(ctx context.Context, names []string, limit int) ([]*recipe.Recipe, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var models []RecipeModel
	err := r.db.WithContext(ctx).Model(&RecipeModel{}).
		Distinct("recipes.*").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipes.is_published = ?", true).
		Where("ingredients.name IN ?", names).
		Order("recipes.views_count DESC, recipes.likes_count DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = recipeToDomain(&models[i])
	}
	return recipes, nil
}

// FindFavorites returns published recipes the user has favorited, newest
// favorite first.
func (r *RecipeRepository) FindFavorites(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*recipe.Recipe, int, error) {
	favorites := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&RecipeModel{}).
			Joins("JOIN user_behaviors ON user_behaviors.recipe_id = recipes.id").
			Where("user_behaviors.user_id = ? AND user_behaviors.type = ?", userID, string(recipe.BehaviorFavorite)).
			Where("recipes.is_published = ?", true)
	}

	var total int64
	if err := favorites().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []RecipeModel
	err := favorites().
		Order("user_behaviors.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = recipeToDomain(&models[i])
	}
	return recipes, int(total), nil
}

// IncrementViews bumps the view counter atomically.
func (r *RecipeRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&RecipeModel{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

// AddBehavior records a user interaction.
func (r *RecipeRepository) AddBehavior(ctx context.Context, b *recipe.Behavior) error {
	return r.db.WithContext(ctx).Create(behaviorToModel(b)).Error
}

// RemoveBehavior deletes the user's interactions of one type on a recipe.
func (r *RecipeRepository) RemoveBehavior(ctx context.Context, userID, recipeID uuid.UUID, t recipe.BehaviorType) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ? AND type = ?", userID, recipeID, string(t)).
		Delete(&BehaviorModel{}).Error
}

// HasBehavior reports whether the user has an interaction of the type.
func (r *RecipeRepository) HasBehavior(ctx context.Context, userID, recipeID uuid.UUID, t recipe.BehaviorType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&BehaviorModel{}).
		Where("user_id = ? AND recipe_id = ? AND type = ?", userID, recipeID, string(t)).
		Count(&count).Error
	return count > 0, err
}

// UpdateCounters applies like/favorite deltas, flooring at zero.
func (r *RecipeRepository) UpdateCounters(ctx context.Context, id uuid.UUID, likesDelta, favoritesDelta int) error {
	// CASE keeps the expression portable across postgres and sqlite.
	updates := map[string]interface{}{}
	if likesDelta != 0 {
		updates["likes_count"] = gorm.Expr(
			"CASE WHEN likes_count + ? < 0 THEN 0 ELSE likes_count + ? END",
			likesDelta, likesDelta)
	}
	if favoritesDelta != 0 {
		updates["favorites_count"] = gorm.Expr(
			"CASE WHEN favorites_count + ? < 0 THEN 0 ELSE favorites_count + ? END",
			favoritesDelta, favoritesDelta)
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&RecipeModel{}).
		Where("id = ?", id).
		UpdateColumns(updates).Error
}
