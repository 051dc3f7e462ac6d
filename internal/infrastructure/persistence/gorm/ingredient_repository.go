package gorm

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartrecipe/server/internal/domain/ingredient"
	"github.com/smartrecipe/server/internal/ports/outbound"
)

// IngredientRepository implements outbound.IngredientRepository using GORM.
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository.
func NewIngredientRepository(db *gorm.DB) outbound.IngredientRepository {
	return &IngredientRepository{db: db}
}

// Create stores a catalog entry.
func (r *IngredientRepository) Create(ctx context.Context, ing *ingredient.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredientToModel(ing)).Error
}

// Update replaces a catalog entry.
func (r *IngredientRepository) Update(ctx context.Context, ing *ingredient.Ingredient) error {
	result := r.db.WithContext(ctx).Save(ingredientToModel(ing))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

// Delete removes a catalog entry.
func (r *IngredientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&IngredientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

// FindByID loads a catalog entry.
func (r *IngredientRepository) FindByID(ctx context.Context, id uuid.UUID) (*ingredient.Ingredient, error) {
	var model IngredientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return ingredientToDomain(&model), nil
}

// List returns catalog entries matching the filter, name order.
func (r *IngredientRepository) List(ctx context.Context, filter outbound.IngredientFilter) ([]*ingredient.Ingredient, int, error) {
	filtered := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&IngredientModel{})
		if filter.Category != "" {
			query = query.Where("category = ?", filter.Category)
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []IngredientModel
	if err := filtered().Order("name ASC").Offset(filter.Offset).Limit(filter.Limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*ingredient.Ingredient, len(models))
	for i := range models {
		items[i] = ingredientToDomain(&models[i])
	}
	return items, int(total), nil
}

// FindSeasonal returns entries whose season list contains the month. The
// season column is a JSON array, so the match is a substring check on the
// serialized form, which both backends support.
func (r *IngredientRepository) FindSeasonal(ctx context.Context, month int) ([]*ingredient.Ingredient, error) {
	var models []IngredientModel
	patterns := []string{
		fmt.Sprintf("[%d]", month),
		fmt.Sprintf("[%d,%%", month),
		fmt.Sprintf("%%,%d,%%", month),
		fmt.Sprintf("%%,%d]", month),
	}
	err := r.db.WithContext(ctx).
		Where("season LIKE ? OR season LIKE ? OR season LIKE ? OR season LIKE ?",
			patterns[0], patterns[1], patterns[2], patterns[3]).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	items := make([]*ingredient.Ingredient, 0, len(models))
	for i := range models {
		items = append(items, ingredientToDomain(&models[i]))
	}
	return items, nil
}

// FindByNames loads catalog entries matching any of the names.
func (r *IngredientRepository) FindByNames(ctx context.Context, names []string) ([]*ingredient.Ingredient, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var models []IngredientModel
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&models).Error; err != nil {
		return nil, err
	}
	items := make([]*ingredient.Ingredient, len(models))
	for i := range models {
		items[i] = ingredientToDomain(&models[i])
	}
	return items, nil
}

// SaveRecognition stores a recognition record.
func (r *IngredientRepository) SaveRecognition(ctx context.Context, rec *ingredient.Recognition) error {
	model, err := recognitionToModel(rec)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// FindRecognitions returns the user's recognition records, newest first.
func (r *IngredientRepository) FindRecognitions(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*ingredient.Recognition, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RecognitionModel{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []RecognitionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	recs := make([]*ingredient.Recognition, 0, len(models))
	for i := range models {
		rec, err := recognitionToDomain(&models[i])
		if err != nil {
			return nil, 0, err
		}
		recs = append(recs, rec)
	}
	return recs, int(total), nil
}
