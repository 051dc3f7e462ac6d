package nutrition

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/domain/ingredient"
	"github.com/smartrecipe/server/internal/domain/nutrition"
	"github.com/smartrecipe/server/internal/domain/recipe"
	"github.com/smartrecipe/server/internal/domain/user"
	"github.com/smartrecipe/server/internal/ports/inbound"
	"github.com/smartrecipe/server/internal/ports/outbound"
	apperrors "github.com/smartrecipe/server/pkg/errors"
)

type fakeNutritionRepo struct {
	logs map[uuid.UUID]*nutrition.DietaryLog
}

func newFakeNutritionRepo() *fakeNutritionRepo {
	return &fakeNutritionRepo{logs: make(map[uuid.UUID]*nutrition.DietaryLog)}
}

func (f *fakeNutritionRepo) CreateLog(_ context.Context, log *nutrition.DietaryLog) error {
	f.logs[log.ID] = log
	return nil
}

func (f *fakeNutritionRepo) FindLogByID(_ context.Context, id uuid.UUID) (*nutrition.DietaryLog, error) {
	log, ok := f.logs[id]
	if !ok {
		return nil, outbound.ErrNotFound
	}
	return log, nil
}

func (f *fakeNutritionRepo) DeleteLog(_ context.Context, id uuid.UUID) error {
	delete(f.logs, id)
	return nil
}

func (f *fakeNutritionRepo) FindLogsByDate(_ context.Context, userID uuid.UUID, date time.Time) ([]*nutrition.DietaryLog, error) {
	var out []*nutrition.DietaryLog
	for _, log := range f.logs {
		if log.UserID == userID && log.Date.Equal(date) {
			out = append(out, log)
		}
	}
	return out, nil
}

func (f *fakeNutritionRepo) FindLogsInRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*nutrition.DietaryLog, error) {
	var out []*nutrition.DietaryLog
	for _, log := range f.logs {
		if log.UserID == userID && !log.Date.Before(start) && !log.Date.After(end) {
			out = append(out, log)
		}
	}
	return out, nil
}

type fakeRecipeRepo struct {
	outbound.RecipeRepository
	recipes map[uuid.UUID]*recipe.Recipe
}

func (f *fakeRecipeRepo) FindByID(_ context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, outbound.ErrNotFound
	}
	return r, nil
}

type fakeUserRepo struct {
	outbound.UserRepository
	profiles map[uuid.UUID]*user.Profile
}

func (f *fakeUserRepo) GetProfile(_ context.Context, userID uuid.UUID) (*user.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, outbound.ErrNotFound
	}
	return p, nil
}

func newTestService(nutritionRepo outbound.NutritionRepository, recipeRepo outbound.RecipeRepository, userRepo outbound.UserRepository) inbound.NutritionService {
	if recipeRepo == nil {
		recipeRepo = &fakeRecipeRepo{}
	}
	if userRepo == nil {
		userRepo = &fakeUserRepo{}
	}
	return NewNutritionService(nutritionRepo, recipeRepo, userRepo, zap.NewNop())
}

func TestAddLogManualEntry(t *testing.T) {
	repo := newFakeNutritionRepo()
	svc := newTestService(repo, nil, nil)
	userID := uuid.New()

	log, err := svc.AddLog(context.Background(), userID, inbound.AddLogCommand{
		FoodName: "oatmeal",
		MealType: nutrition.MealBreakfast,
		Calories: 350,
		Protein:  12,
	})
	require.NoError(t, err)
	assert.Equal(t, userID, log.UserID)
	assert.InDelta(t, 350, log.Calories, 0.001)
	assert.Contains(t, repo.logs, log.ID)
}

func recipeWithMacros(t *testing.T) *recipe.Recipe {
	t.Helper()
	r, err := recipe.New("Tomato egg stir fry", uuid.New())
	require.NoError(t, err)
	r.TotalCalories = 420
	r.Ingredients = []recipe.RecipeIngredient{
		{
			IngredientID: uuid.New(),
			Ingredient:   &ingredient.Ingredient{Name: "tomato", Protein: 10, Fat: 5, Carbohydrate: 20},
			Quantity:     300,
			Unit:         "g",
		},
		{
			IngredientID: uuid.New(),
			Ingredient:   &ingredient.Ingredient{Name: "egg", Protein: 7, Fat: 3, Carbohydrate: 11},
			Quantity:     2,
			Unit:         "pcs",
		},
	}
	return r
}

func TestAddLogFillsFromRecipe(t *testing.T) {
	r := recipeWithMacros(t)
	recipeRepo := &fakeRecipeRepo{recipes: map[uuid.UUID]*recipe.Recipe{r.ID: r}}
	svc := newTestService(newFakeNutritionRepo(), recipeRepo, nil)

	log, err := svc.AddLog(context.Background(), uuid.New(), inbound.AddLogCommand{
		RecipeID: &r.ID,
		MealType: nutrition.MealDinner,
	})
	require.NoError(t, err)
	assert.InDelta(t, 420, log.Calories, 0.001)
	assert.Equal(t, "Tomato egg stir fry", log.FoodName)

	// macros sum over every ingredient line
	assert.InDelta(t, 17, log.Protein, 0.001)
	assert.InDelta(t, 8, log.Fat, 0.001)
	assert.InDelta(t, 31, log.Carbohydrate, 0.001)
}

func TestAddLogRecipeFillKeepsCallerMacros(t *testing.T) {
	r := recipeWithMacros(t)
	recipeRepo := &fakeRecipeRepo{recipes: map[uuid.UUID]*recipe.Recipe{r.ID: r}}
	svc := newTestService(newFakeNutritionRepo(), recipeRepo, nil)

	log, err := svc.AddLog(context.Background(), uuid.New(), inbound.AddLogCommand{
		RecipeID: &r.ID,
		MealType: nutrition.MealDinner,
		Protein:  42,
	})
	require.NoError(t, err)

	// a caller-supplied macro wins; the recipe fills only the rest
	assert.InDelta(t, 42, log.Protein, 0.001)
	assert.InDelta(t, 8, log.Fat, 0.001)
	assert.InDelta(t, 31, log.Carbohydrate, 0.001)
}

func TestAddLogUnknownRecipe(t *testing.T) {
	svc := newTestService(newFakeNutritionRepo(), nil, nil)
	missing := uuid.New()

	_, err := svc.AddLog(context.Background(), uuid.New(), inbound.AddLogCommand{
		RecipeID: &missing,
		MealType: nutrition.MealLunch,
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeRecipeNotFound))
}

func TestAddLogInvalidMealType(t *testing.T) {
	svc := newTestService(newFakeNutritionRepo(), nil, nil)

	_, err := svc.AddLog(context.Background(), uuid.New(), inbound.AddLogCommand{
		FoodName: "oatmeal",
		MealType: nutrition.MealType("brunch"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
}

func TestDiary(t *testing.T) {
	repo := newFakeNutritionRepo()
	userID := uuid.New()
	userRepo := &fakeUserRepo{profiles: map[uuid.UUID]*user.Profile{
		userID: {UserID: userID, DailyCaloriesTarget: 2000},
	}}
	svc := newTestService(repo, nil, userRepo)

	date := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	for _, entry := range []struct {
		name string
		meal nutrition.MealType
		cal  float64
	}{
		{"oatmeal", nutrition.MealBreakfast, 350},
		{"banana", nutrition.MealBreakfast, 90},
		{"rice bowl", nutrition.MealLunch, 600},
	} {
		_, err := svc.AddLog(context.Background(), userID, inbound.AddLogCommand{
			FoodName: entry.name,
			MealType: entry.meal,
			Calories: entry.cal,
			Date:     &date,
		})
		require.NoError(t, err)
	}

	diary, err := svc.Diary(context.Background(), userID, date)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-05", diary.Date)
	assert.Len(t, diary.Logs, 3)
	assert.Len(t, diary.MealGroups[nutrition.MealBreakfast], 2)
	assert.Len(t, diary.MealGroups[nutrition.MealLunch], 1)
	assert.InDelta(t, 1040, diary.Summary.Calories, 0.001)
	assert.Equal(t, 2000, diary.DailyTarget)

	// other days stay empty
	other := date.AddDate(0, 0, 1)
	diary, err = svc.Diary(context.Background(), userID, other)
	require.NoError(t, err)
	assert.Empty(t, diary.Logs)
}

func TestDeleteLogOwnership(t *testing.T) {
	repo := newFakeNutritionRepo()
	svc := newTestService(repo, nil, nil)
	owner := uuid.New()

	log, err := svc.AddLog(context.Background(), owner, inbound.AddLogCommand{
		FoodName: "oatmeal",
		MealType: nutrition.MealBreakfast,
	})
	require.NoError(t, err)

	err = svc.DeleteLog(context.Background(), uuid.New(), log.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))

	require.NoError(t, svc.DeleteLog(context.Background(), owner, log.ID))
	assert.Empty(t, repo.logs)
}

func TestReport(t *testing.T) {
	repo := newFakeNutritionRepo()
	svc := newTestService(repo, nil, nil)
	userID := uuid.New()

	today := nutrition.Day(time.Now())
	_, err := svc.AddLog(context.Background(), userID, inbound.AddLogCommand{
		FoodName: "rice bowl",
		MealType: nutrition.MealLunch,
		Calories: 600,
		Date:     &today,
	})
	require.NoError(t, err)

	report, err := svc.Report(context.Background(), userID, nutrition.PeriodWeek)
	require.NoError(t, err)
	require.Len(t, report.Daily, 7)
	assert.InDelta(t, 600, report.Daily[6].Calories, 0.001)
	assert.InDelta(t, 600, report.Average.Calories, 0.001)
}

func TestAdviceUsesProfileTarget(t *testing.T) {
	repo := newFakeNutritionRepo()
	userID := uuid.New()
	userRepo := &fakeUserRepo{profiles: map[uuid.UUID]*user.Profile{
		userID: {UserID: userID, DailyCaloriesTarget: 2000, HealthGoal: user.GoalLoseWeight},
	}}
	svc := newTestService(repo, nil, userRepo)

	today := nutrition.Day(time.Now())
	_, err := svc.AddLog(context.Background(), userID, inbound.AddLogCommand{
		FoodName: "rice bowl",
		MealType: nutrition.MealLunch,
		Calories: 2000,
		Date:     &today,
	})
	require.NoError(t, err)

	advice, err := svc.Advice(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, advice.DaysLogged)
	require.Len(t, advice.Advice, 2)
	assert.Contains(t, advice.Advice[0], "close to your target")
	assert.Contains(t, advice.Advice[1], "Weight loss tip")
}

func TestRecipeNutrition(t *testing.T) {
	r, err := recipe.New("Tomato egg stir fry", uuid.New())
	require.NoError(t, err)
	r.TotalCalories = 420
	r.Servings = 2
	recipeRepo := &fakeRecipeRepo{recipes: map[uuid.UUID]*recipe.Recipe{r.ID: r}}
	svc := newTestService(newFakeNutritionRepo(), recipeRepo, nil)

	result, err := svc.RecipeNutrition(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tomato egg stir fry", result.RecipeName)
	assert.InDelta(t, 210, result.PerServingCalories, 0.001)

	// unpublished recipes stay hidden
	r.IsPublished = false
	_, err = svc.RecipeNutrition(context.Background(), r.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeRecipeNotFound))
}
