package ingredient

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/domain/ingredient"
	"github.com/smartrecipe/server/internal/ports/inbound"
	"github.com/smartrecipe/server/internal/ports/outbound"
	apperrors "github.com/smartrecipe/server/pkg/errors"
)

type fakeIngredientRepo struct {
	ingredients  map[uuid.UUID]*ingredient.Ingredient
	recognitions []*ingredient.Recognition
}

func newFakeIngredientRepo() *fakeIngredientRepo {
	return &fakeIngredientRepo{ingredients: make(map[uuid.UUID]*ingredient.Ingredient)}
}

func (f *fakeIngredientRepo) Create(_ context.Context, ing *ingredient.Ingredient) error {
	f.ingredients[ing.ID] = ing
	return nil
}

func (f *fakeIngredientRepo) Update(_ context.Context, ing *ingredient.Ingredient) error {
	f.ingredients[ing.ID] = ing
	return nil
}

func (f *fakeIngredientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.ingredients, id)
	return nil
}

func (f *fakeIngredientRepo) FindByID(_ context.Context, id uuid.UUID) (*ingredient.Ingredient, error) {
	ing, ok := f.ingredients[id]
	if !ok {
		return nil, outbound.ErrNotFound
	}
	return ing, nil
}

func (f *fakeIngredientRepo) List(_ context.Context, filter outbound.IngredientFilter) ([]*ingredient.Ingredient, int, error) {
	var out []*ingredient.Ingredient
	for _, ing := range f.ingredients {
		if filter.Category != "" && string(ing.Category) != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(ing.Name, filter.Search) {
			continue
		}
		out = append(out, ing)
	}
	return out, len(out), nil
}

func (f *fakeIngredientRepo) FindSeasonal(_ context.Context, month int) ([]*ingredient.Ingredient, error) {
	var out []*ingredient.Ingredient
	for _, ing := range f.ingredients {
		for _, m := range ing.Season {
			if m == month {
				out = append(out, ing)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeIngredientRepo) FindByNames(_ context.Context, names []string) ([]*ingredient.Ingredient, error) {
	var out []*ingredient.Ingredient
	for _, ing := range f.ingredients {
		for _, name := range names {
			if ing.Name == name {
				out = append(out, ing)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeIngredientRepo) SaveRecognition(_ context.Context, rec *ingredient.Recognition) error {
	f.recognitions = append(f.recognitions, rec)
	return nil
}

func (f *fakeIngredientRepo) FindRecognitions(_ context.Context, userID uuid.UUID, _, _ int) ([]*ingredient.Recognition, int, error) {
	var out []*ingredient.Recognition
	for _, rec := range f.recognitions {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, len(out), nil
}

func seedIngredient(t *testing.T, repo *fakeIngredientRepo, name string, season []int) *ingredient.Ingredient {
	t.Helper()
	ing, err := ingredient.New(name, ingredient.CategoryVegetable)
	require.NoError(t, err)
	ing.Calories = 52
	ing.Protein = 0.3
	ing.Season = season
	repo.ingredients[ing.ID] = ing
	return ing
}

func TestCalculateNutrition(t *testing.T) {
	repo := newFakeIngredientRepo()
	svc := NewIngredientService(repo, nil, zap.NewNop())
	ing := seedIngredient(t, repo, "tomato", nil)

	got, n, err := svc.CalculateNutrition(context.Background(), ing.ID, 250)
	require.NoError(t, err)
	assert.Equal(t, "tomato", got.Name)
	assert.InDelta(t, 130, n.Calories, 0.001)

	_, _, err = svc.CalculateNutrition(context.Background(), ing.ID, 0)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))

	_, _, err = svc.CalculateNutrition(context.Background(), uuid.New(), 100)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeIngredientNotFound))
}

func TestSeasonal(t *testing.T) {
	repo := newFakeIngredientRepo()
	svc := NewIngredientService(repo, nil, zap.NewNop())
	seedIngredient(t, repo, "tomato", []int{6, 7, 8})
	seedIngredient(t, repo, "pumpkin", []int{10, 11})

	items, err := svc.Seasonal(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "tomato", items[0].Name)

	_, err = svc.Seasonal(context.Background(), 13)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))
}

func TestSearchRequiresKeyword(t *testing.T) {
	svc := NewIngredientService(newFakeIngredientRepo(), nil, zap.NewNop())

	_, err := svc.Search(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))
}

func TestRecognizeLinksCatalogEntries(t *testing.T) {
	repo := newFakeIngredientRepo()
	svc := NewIngredientService(repo, nil, zap.NewNop())
	tomato := seedIngredient(t, repo, "tomato", nil)
	userID := uuid.New()

	rec, err := svc.Recognize(context.Background(), userID, "https://example.com/dish.jpg")
	require.NoError(t, err)
	assert.Equal(t, userID, rec.UserID)
	assert.Equal(t, len(rec.Result.Ingredients), rec.Result.TotalItems)

	// catalog matches get their IDs resolved
	var linked bool
	for _, item := range rec.Result.Ingredients {
		if item.Name == "tomato" {
			linked = item.IngredientID == tomato.ID
		}
	}
	assert.True(t, linked)

	history, total, err := svc.History(context.Background(), userID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, history, 1)
	assert.Equal(t, rec.ID, history[0].ID)
}

func TestRecognizeRequiresImage(t *testing.T) {
	svc := NewIngredientService(newFakeIngredientRepo(), nil, zap.NewNop())

	_, err := svc.Recognize(context.Background(), uuid.New(), "")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))
}

func TestRecommendRecipesRequiresIngredients(t *testing.T) {
	svc := NewIngredientService(newFakeIngredientRepo(), nil, zap.NewNop())

	_, err := svc.RecommendRecipes(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))
}

func TestCreateUpdateDelete(t *testing.T) {
	repo := newFakeIngredientRepo()
	svc := NewIngredientService(repo, nil, zap.NewNop())

	ing, err := svc.Create(context.Background(), inbound.IngredientCommand{
		Name:     "tomato",
		Category: "vegetable",
		Calories: 52,
	})
	require.NoError(t, err)
	assert.Equal(t, ingredient.CategoryVegetable, ing.Category)

	updated, err := svc.Update(context.Background(), ing.ID, inbound.IngredientCommand{
		Name:     "cherry tomato",
		Category: "not-a-category",
		Calories: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, "cherry tomato", updated.Name)
	assert.Equal(t, ingredient.CategoryOther, updated.Category)
	assert.InDelta(t, 30, updated.Calories, 0.001)

	require.NoError(t, svc.Delete(context.Background(), ing.ID))
	assert.Empty(t, repo.ingredients)

	err = svc.Delete(context.Background(), ing.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeIngredientNotFound))
}
