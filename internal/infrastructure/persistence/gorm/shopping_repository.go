package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartrecipe/server/internal/domain/shopping"
	"github.com/smartrecipe/server/internal/ports/outbound"
)

// ShoppingRepository implements outbound.ShoppingRepository using GORM.
type ShoppingRepository struct {
	db *gorm.DB
}

// NewShoppingRepository creates a new shopping repository.
func NewShoppingRepository(db *gorm.DB) outbound.ShoppingRepository {
	return &ShoppingRepository{db: db}
}

// Create stores a list item.
func (r *ShoppingRepository) Create(ctx context.Context, item *shopping.Item) error {
	return r.db.WithContext(ctx).Create(shoppingItemToModel(item)).Error
}

// Update replaces a list item.
func (r *ShoppingRepository) Update(ctx context.Context, item *shopping.Item) error {
	result := r.db.WithContext(ctx).Save(shoppingItemToModel(item))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

// Delete removes a list item.
func (r *ShoppingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ShoppingItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

// FindByID loads a list item with its ingredient.
func (r *ShoppingRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.Item, error) {
	var model ShoppingItemModel
	err := r.db.WithContext(ctx).
		Preload("Ingredient").
		First(&model, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return shoppingItemToDomain(&model), nil
}

// FindByUser returns the user's items, unpurchased first, newest first.
func (r *ShoppingRepository) FindByUser(ctx context.Context, userID uuid.UUID, onlyUnpurchased bool) ([]*shopping.Item, error) {
	query := r.db.WithContext(ctx).
		Preload("Ingredient").
		Where("user_id = ?", userID)
	if onlyUnpurchased {
		query = query.Where("purchased = ?", false)
	}

	var models []ShoppingItemModel
	if err := query.Order("purchased ASC, created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	items := make([]*shopping.Item, len(models))
	for i := range models {
		items[i] = shoppingItemToDomain(&models[i])
	}
	return items, nil
}

// FindUnpurchased returns the user's open row for the ingredient.
func (r *ShoppingRepository) FindUnpurchased(ctx context.Context, userID, ingredientID uuid.UUID) (*shopping.Item, error) {
	var model ShoppingItemModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND ingredient_id = ? AND purchased = ?", userID, ingredientID, false).
		First(&model).Error
	if err != nil {
		return nil, translate(err)
	}
	return shoppingItemToDomain(&model), nil
}
