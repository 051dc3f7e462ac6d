package recipe

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/domain/recipe"
	"github.com/smartrecipe/server/internal/ports/inbound"
	"github.com/smartrecipe/server/internal/ports/outbound"
	apperrors "github.com/smartrecipe/server/pkg/errors"
)

type behaviorKey struct {
	userID   uuid.UUID
	recipeID uuid.UUID
	t        recipe.BehaviorType
}

type fakeRecipeRepo struct {
	recipes   map[uuid.UUID]*recipe.Recipe
	behaviors map[behaviorKey]struct{}
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{
		recipes:   make(map[uuid.UUID]*recipe.Recipe),
		behaviors: make(map[behaviorKey]struct{}),
	}
}

func (f *fakeRecipeRepo) Create(_ context.Context, r *recipe.Recipe) error {
	f.recipes[r.ID] = r
	return nil
}

func (f *fakeRecipeRepo) Update(_ context.Context, r *recipe.Recipe) error {
	f.recipes[r.ID] = r
	return nil
}

func (f *fakeRecipeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.recipes, id)
	return nil
}

// FindByID returns a copy, like a real adapter rehydrating a row, so that
// in-memory mutations by the service do not leak into the stored recipe.
func (f *fakeRecipeRepo) FindByID(_ context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, outbound.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRecipeRepo) List(_ context.Context, filter outbound.RecipeFilter) ([]*recipe.Recipe, int, error) {
	var out []*recipe.Recipe
	for _, r := range f.recipes {
		if filter.PublishedOnly && !r.IsPublished {
			continue
		}
		if filter.AuthorID != nil && r.AuthorID != *filter.AuthorID {
			continue
		}
		out = append(out, r)
	}
	return out, len(out), nil
}

func (f *fakeRecipeRepo) FindTop(_ context.Context, limit int) ([]*recipe.Recipe, error) {
	var out []*recipe.Recipe
	for _, r := range f.recipes {
		if r.IsPublished && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) FindByIngredientNames(_ context.Context, _ []string, _ int) ([]*recipe.Recipe, error) {
	return nil, nil
}

func (f *fakeRecipeRepo) FindFavorites(_ context.Context, userID uuid.UUID, _, _ int) ([]*recipe.Recipe, int, error) {
	var out []*recipe.Recipe
	for key := range f.behaviors {
		if key.userID == userID && key.t == recipe.BehaviorFavorite {
			if r, ok := f.recipes[key.recipeID]; ok {
				out = append(out, r)
			}
		}
	}
	return out, len(out), nil
}

func (f *fakeRecipeRepo) IncrementViews(_ context.Context, id uuid.UUID) error {
	if r, ok := f.recipes[id]; ok {
		r.Views++
	}
	return nil
}

func (f *fakeRecipeRepo) AddBehavior(_ context.Context, b *recipe.Behavior) error {
	f.behaviors[behaviorKey{b.UserID, b.RecipeID, b.Type}] = struct{}{}
	return nil
}

func (f *fakeRecipeRepo) RemoveBehavior(_ context.Context, userID, recipeID uuid.UUID, t recipe.BehaviorType) error {
	delete(f.behaviors, behaviorKey{userID, recipeID, t})
	return nil
}

func (f *fakeRecipeRepo) HasBehavior(_ context.Context, userID, recipeID uuid.UUID, t recipe.BehaviorType) (bool, error) {
	_, ok := f.behaviors[behaviorKey{userID, recipeID, t}]
	return ok, nil
}

func (f *fakeRecipeRepo) UpdateCounters(_ context.Context, id uuid.UUID, likesDelta, favoritesDelta int) error {
	if r, ok := f.recipes[id]; ok {
		r.Likes += likesDelta
		r.Favorites += favoritesDelta
	}
	return nil
}

type fakeCache struct {
	entries       map[uuid.UUID]*recipe.Recipe
	invalidations int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[uuid.UUID]*recipe.Recipe)}
}

func (f *fakeCache) Get(_ context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	r, ok := f.entries[id]
	if !ok {
		return nil, outbound.ErrNotFound
	}
	return r, nil
}

func (f *fakeCache) Set(_ context.Context, r *recipe.Recipe, _ time.Duration) error {
	f.entries[r.ID] = r
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, id uuid.UUID) error {
	delete(f.entries, id)
	f.invalidations++
	return nil
}

func seedRecipe(t *testing.T, repo *fakeRecipeRepo, authorID uuid.UUID, published bool) *recipe.Recipe {
	t.Helper()
	r, err := recipe.New("Braised pork belly", authorID)
	require.NoError(t, err)
	r.IsPublished = published
	repo.recipes[r.ID] = r
	return r
}

func TestCreate(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, zap.NewNop())
	authorID := uuid.New()

	r, err := svc.Create(context.Background(), authorID, inbound.CreateRecipeCommand{
		Name:        "Tomato egg stir fry",
		Difficulty:  "easy",
		CookingTime: 15,
		Servings:    2,
		Ingredients: []inbound.IngredientLineCommand{
			{IngredientID: uuid.New(), Quantity: 300, Unit: "g", IsMain: true},
			{IngredientID: uuid.New(), Quantity: 2, Unit: "pcs"},
		},
		Steps: []inbound.StepCommand{
			{StepNumber: 1, Description: "Beat the eggs"},
			{StepNumber: 2, Description: "Stir fry everything"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, authorID, r.AuthorID)
	assert.Len(t, r.Ingredients, 2)
	assert.Len(t, r.Steps, 2)
	assert.Contains(t, repo.recipes, r.ID)
}

func TestCreateDuplicateIngredient(t *testing.T) {
	svc := NewRecipeService(newFakeRecipeRepo(), nil, zap.NewNop())
	dup := uuid.New()

	_, err := svc.Create(context.Background(), uuid.New(), inbound.CreateRecipeCommand{
		Name: "Doubled up",
		Ingredients: []inbound.IngredientLineCommand{
			{IngredientID: dup, Quantity: 100, Unit: "g"},
			{IngredientID: dup, Quantity: 200, Unit: "g"},
		},
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
}

func TestGetCountsView(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, zap.NewNop())
	r := seedRecipe(t, repo, uuid.New(), true)

	got, err := svc.Get(context.Background(), r.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)

	viewerID := uuid.New()
	_, err = svc.Get(context.Background(), r.ID, &viewerID)
	require.NoError(t, err)

	has, err := repo.HasBehavior(context.Background(), viewerID, r.ID, recipe.BehaviorView)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestGetUnpublishedHidden(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, zap.NewNop())
	r := seedRecipe(t, repo, uuid.New(), false)

	_, err := svc.Get(context.Background(), r.ID, nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeRecipeNotFound))
}

func TestUpdateOwnerOnly(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, zap.NewNop())
	authorID := uuid.New()
	r := seedRecipe(t, repo, authorID, true)

	name := "Renamed"
	updated, err := svc.Update(context.Background(), r.ID, authorID, inbound.UpdateRecipeCommand{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	_, err = svc.Update(context.Background(), r.ID, uuid.New(), inbound.UpdateRecipeCommand{Name: &name})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInsufficientPermissions))
}

func TestUpdateReplacesNestedCollections(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, zap.NewNop())
	authorID := uuid.New()
	r := seedRecipe(t, repo, authorID, true)
	require.NoError(t, r.AddIngredient(recipe.RecipeIngredient{IngredientID: uuid.New(), Quantity: 100, Unit: "g"}))

	lines := []inbound.IngredientLineCommand{
		{IngredientID: uuid.New(), Quantity: 50, Unit: "ml"},
	}
	updated, err := svc.Update(context.Background(), r.ID, authorID, inbound.UpdateRecipeCommand{Ingredients: &lines})
	require.NoError(t, err)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "ml", updated.Ingredients[0].Unit)
}

func TestDeleteOwnerOnly(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, zap.NewNop())
	authorID := uuid.New()
	r := seedRecipe(t, repo, authorID, true)

	err := svc.Delete(context.Background(), r.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInsufficientPermissions))

	require.NoError(t, svc.Delete(context.Background(), r.ID, authorID))
	assert.NotContains(t, repo.recipes, r.ID)
}

func TestToggleLike(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, zap.NewNop())
	r := seedRecipe(t, repo, uuid.New(), true)
	userID := uuid.New()

	result, err := svc.ToggleLike(context.Background(), r.ID, userID)
	require.NoError(t, err)
	assert.True(t, result.Active)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, 1, repo.recipes[r.ID].Likes)

	result, err = svc.ToggleLike(context.Background(), r.ID, userID)
	require.NoError(t, err)
	assert.False(t, result.Active)
	assert.Equal(t, 0, result.Count)
	assert.Equal(t, 0, repo.recipes[r.ID].Likes)
}

func TestToggleFavoriteIndependentOfLike(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, zap.NewNop())
	r := seedRecipe(t, repo, uuid.New(), true)
	userID := uuid.New()

	_, err := svc.ToggleLike(context.Background(), r.ID, userID)
	require.NoError(t, err)

	result, err := svc.ToggleFavorite(context.Background(), r.ID, userID)
	require.NoError(t, err)
	assert.True(t, result.Active)
	assert.Equal(t, 1, repo.recipes[r.ID].Likes)
	assert.Equal(t, 1, repo.recipes[r.ID].Favorites)
}

func TestToggleUnpublishedHidden(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, zap.NewNop())
	r := seedRecipe(t, repo, uuid.New(), false)

	_, err := svc.ToggleLike(context.Background(), r.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeRecipeNotFound))
}

func TestCacheReadThrough(t *testing.T) {
	repo := newFakeRecipeRepo()
	cache := newFakeCache()
	svc := NewRecipeService(repo, cache, zap.NewNop())
	r := seedRecipe(t, repo, uuid.New(), true)

	_, err := svc.Get(context.Background(), r.ID, nil)
	require.NoError(t, err)
	// the view count bump invalidates the cached copy right away
	assert.Equal(t, 1, cache.invalidations)

	authorID := r.AuthorID
	name := "Renamed"
	_, err = svc.Update(context.Background(), r.ID, authorID, inbound.UpdateRecipeCommand{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 2, cache.invalidations)
}

func TestSearchRequiresKeyword(t *testing.T) {
	svc := NewRecipeService(newFakeRecipeRepo(), nil, zap.NewNop())

	_, err := svc.Search(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))
}
