// Package nutrition provides the application layer for the dietary diary,
// reports and advice.
package nutrition

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/domain/nutrition"
	"github.com/smartrecipe/server/internal/ports/inbound"
	"github.com/smartrecipe/server/internal/ports/outbound"
	"github.com/smartrecipe/server/pkg/errors"
)

// NutritionService implements the nutrition use cases.
type NutritionService struct {
	nutritionRepo outbound.NutritionRepository
	recipeRepo    outbound.RecipeRepository
	userRepo      outbound.UserRepository
	logger        *zap.Logger
}

// NewNutritionService creates a new nutrition service.
func NewNutritionService(
	nutritionRepo outbound.NutritionRepository,
	recipeRepo outbound.RecipeRepository,
	userRepo outbound.UserRepository,
	logger *zap.Logger,
) inbound.NutritionService {
	return &NutritionService{
		nutritionRepo: nutritionRepo,
		recipeRepo:    recipeRepo,
		userRepo:      userRepo,
		logger:        logger.Named("nutrition-service"),
	}
}

// Diary returns one day's logs with per-meal groups and a macro summary.
func (s *NutritionService) Diary(ctx context.Context, userID uuid.UUID, date time.Time) (*inbound.DiaryResult, error) {
	logs, err := s.nutritionRepo.FindLogsByDate(ctx, userID, nutrition.Day(date))
	if err != nil {
		return nil, errors.NewDatabaseError("list dietary logs", err)
	}

	groups := make(map[nutrition.MealType][]*nutrition.DietaryLog)
	var summary nutrition.Totals
	for _, log := range logs {
		groups[log.MealType] = append(groups[log.MealType], log)
		summary.Calories += log.Calories
		summary.Protein += log.Protein
		summary.Fat += log.Fat
		summary.Carbohydrate += log.Carbohydrate
	}

	target := 0
	if profile, err := s.userRepo.GetProfile(ctx, userID); err == nil {
		target = profile.DailyCaloriesTarget
	}

	return &inbound.DiaryResult{
		Date:        nutrition.Day(date).Format("2006-01-02"),
		Logs:        logs,
		MealGroups:  groups,
		Summary:     summary,
		DailyTarget: target,
	}, nil
}

// AddLog records an eaten food. When a recipe is given and calories are
// absent, macros are filled from the recipe and its ingredient lines.
func (s *NutritionService) AddLog(ctx context.Context, userID uuid.UUID, cmd inbound.AddLogCommand) (*nutrition.DietaryLog, error) {
	date := time.Now()
	if cmd.Date != nil {
		date = *cmd.Date
	}

	log, err := nutrition.NewLog(userID, cmd.RecipeID, cmd.FoodName, cmd.MealType, date)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	log.Calories = cmd.Calories
	log.Protein = cmd.Protein
	log.Fat = cmd.Fat
	log.Carbohydrate = cmd.Carbohydrate

	if cmd.RecipeID != nil && cmd.Calories == 0 {
		r, err := s.recipeRepo.FindByID(ctx, *cmd.RecipeID)
		if err != nil {
			if stderrors.Is(err, outbound.ErrNotFound) {
				return nil, errors.NewRecipeNotFoundError(cmd.RecipeID.String())
			}
			return nil, errors.NewDatabaseError("find recipe", err)
		}
		log.Calories = r.TotalCalories
		if log.FoodName == "" {
			log.FoodName = r.Name
		}
		var protein, fat, carbohydrate float64
		for _, line := range r.Ingredients {
			if line.Ingredient == nil {
				continue
			}
			protein += line.Ingredient.Protein
			fat += line.Ingredient.Fat
			carbohydrate += line.Ingredient.Carbohydrate
		}
		if log.Protein == 0 {
			log.Protein = protein
		}
		if log.Fat == 0 {
			log.Fat = fat
		}
		if log.Carbohydrate == 0 {
			log.Carbohydrate = carbohydrate
		}
	}

	if err := s.nutritionRepo.CreateLog(ctx, log); err != nil {
		return nil, errors.NewDatabaseError("create dietary log", err)
	}
	return log, nil
}

// DeleteLog removes one of the caller's own logs.
func (s *NutritionService) DeleteLog(ctx context.Context, userID, id uuid.UUID) error {
	log, err := s.nutritionRepo.FindLogByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return errors.NewNotFoundError("dietary log")
		}
		return errors.NewDatabaseError("find dietary log", err)
	}
	if log.UserID != userID {
		return errors.NewNotFoundError("dietary log")
	}
	if err := s.nutritionRepo.DeleteLog(ctx, id); err != nil {
		return errors.NewDatabaseError("delete dietary log", err)
	}
	return nil
}

// Report aggregates the last week or month into a per-day macro series.
func (s *NutritionService) Report(ctx context.Context, userID uuid.UUID, period nutrition.Period) (*nutrition.Report, error) {
	end := nutrition.Day(time.Now())
	start := end.AddDate(0, 0, -(period.Days() - 1))

	logs, err := s.nutritionRepo.FindLogsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, errors.NewDatabaseError("list dietary logs", err)
	}

	report := nutrition.BuildReport(deref(logs), period, end)
	return &report, nil
}

// Advice compares the 7-day average against the caller's target and goal.
func (s *NutritionService) Advice(ctx context.Context, userID uuid.UUID) (*nutrition.Advice, error) {
	end := nutrition.Day(time.Now())
	start := end.AddDate(0, 0, -6)

	logs, err := s.nutritionRepo.FindLogsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, errors.NewDatabaseError("list dietary logs", err)
	}

	target, goal := 0, ""
	if profile, err := s.userRepo.GetProfile(ctx, userID); err == nil {
		target = profile.DailyCaloriesTarget
		goal = profile.HealthGoal
	}

	advice := nutrition.BuildAdvice(deref(logs), target, goal)
	return &advice, nil
}

// RecipeNutrition returns the public per-ingredient breakdown for a
// published recipe.
func (s *NutritionService) RecipeNutrition(ctx context.Context, recipeID uuid.UUID) (*inbound.RecipeNutritionResult, error) {
	r, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, errors.NewRecipeNotFoundError(recipeID.String())
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if !r.IsPublished {
		return nil, errors.NewRecipeNotFoundError(recipeID.String())
	}

	lines := make([]inbound.RecipeNutritionLine, 0, len(r.Ingredients))
	for _, line := range r.Ingredients {
		if line.Ingredient == nil {
			continue
		}
		lines = append(lines, inbound.RecipeNutritionLine{
			Name:         line.Ingredient.Name,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
			Calories:     line.Ingredient.Calories,
			Protein:      line.Ingredient.Protein,
			Fat:          line.Ingredient.Fat,
			Carbohydrate: line.Ingredient.Carbohydrate,
		})
	}

	return &inbound.RecipeNutritionResult{
		RecipeID:           r.ID,
		RecipeName:         r.Name,
		Servings:           maxInt(r.Servings, 1),
		TotalCalories:      r.TotalCalories,
		PerServingCalories: r.PerServingCalories(),
		Ingredients:        lines,
	}, nil
}

func deref(logs []*nutrition.DietaryLog) []nutrition.DietaryLog {
	out := make([]nutrition.DietaryLog, 0, len(logs))
	for _, log := range logs {
		out = append(out, *log)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
