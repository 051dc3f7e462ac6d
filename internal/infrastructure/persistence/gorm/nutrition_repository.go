package gorm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartrecipe/server/internal/domain/nutrition"
	"github.com/smartrecipe/server/internal/ports/outbound"
)

// NutritionRepository implements outbound.NutritionRepository using GORM.
type NutritionRepository struct {
	db *gorm.DB
}

// NewNutritionRepository creates a new nutrition repository.
func NewNutritionRepository(db *gorm.DB) outbound.NutritionRepository {
	return &NutritionRepository{db: db}
}

// CreateLog stores a diary entry.
func (r *NutritionRepository) CreateLog(ctx context.Context, log *nutrition.DietaryLog) error {
	return r.db.WithContext(ctx).Create(dietaryLogToModel(log)).Error
}

// FindLogByID loads a diary entry.
func (r *NutritionRepository) FindLogByID(ctx context.Context, id uuid.UUID) (*nutrition.DietaryLog, error) {
	var model DietaryLogModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return dietaryLogToDomain(&model), nil
}

// DeleteLog removes a diary entry.
func (r *NutritionRepository) DeleteLog(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&DietaryLogModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

// FindLogsByDate returns one day's entries in insertion order.
func (r *NutritionRepository) FindLogsByDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*nutrition.DietaryLog, error) {
	return r.findLogs(ctx, userID, nutrition.Day(date), nutrition.Day(date))
}

// FindLogsInRange returns entries between start and end inclusive.
func (r *NutritionRepository) FindLogsInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*nutrition.DietaryLog, error) {
	return r.findLogs(ctx, userID, nutrition.Day(start), nutrition.Day(end))
}

func (r *NutritionRepository) findLogs(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*nutrition.DietaryLog, error) {
	var models []DietaryLogModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC, created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	logs := make([]*nutrition.DietaryLog, len(models))
	for i := range models {
		logs[i] = dietaryLogToDomain(&models[i])
	}
	return logs, nil
}
