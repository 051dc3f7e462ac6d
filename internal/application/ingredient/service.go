// Package ingredient provides the application layer for the ingredient
// catalog, nutrition math and image recognition history.
package ingredient

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/domain/ingredient"
	"github.com/smartrecipe/server/internal/domain/recipe"
	"github.com/smartrecipe/server/internal/ports/inbound"
	"github.com/smartrecipe/server/internal/ports/outbound"
	"github.com/smartrecipe/server/pkg/errors"
)

const recommendLimit = 20

// IngredientService implements the ingredient use cases.
type IngredientService struct {
	ingredientRepo outbound.IngredientRepository
	recipeRepo     outbound.RecipeRepository
	logger         *zap.Logger
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(
	ingredientRepo outbound.IngredientRepository,
	recipeRepo outbound.RecipeRepository,
	logger *zap.Logger,
) inbound.IngredientService {
	return &IngredientService{
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
		logger:         logger.Named("ingredient-service"),
	}
}

// List returns catalog entries matching the filter.
func (s *IngredientService) List(ctx context.Context, q inbound.ListIngredientsQuery) ([]*ingredient.Ingredient, int, error) {
	items, total, err := s.ingredientRepo.List(ctx, outbound.IngredientFilter{
		Category: q.Category,
		Search:   q.Search,
		Offset:   q.Offset,
		Limit:    q.Limit,
	})
	if err != nil {
		return nil, 0, errors.NewDatabaseError("list ingredients", err)
	}
	return items, total, nil
}

// Get returns one catalog entry.
func (s *IngredientService) Get(ctx context.Context, id uuid.UUID) (*ingredient.Ingredient, error) {
	return s.find(ctx, id)
}

// Search returns catalog entries whose name or description contains the
// keyword.
func (s *IngredientService) Search(ctx context.Context, keyword string) ([]*ingredient.Ingredient, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, errors.NewBadRequestError("search keyword is required")
	}
	items, _, err := s.ingredientRepo.List(ctx, outbound.IngredientFilter{Search: keyword, Limit: 100})
	if err != nil {
		return nil, errors.NewDatabaseError("search ingredients", err)
	}
	return items, nil
}

// Seasonal returns ingredients in season for the month.
func (s *IngredientService) Seasonal(ctx context.Context, month int) ([]*ingredient.Ingredient, error) {
	if month < 1 || month > 12 {
		return nil, errors.NewBadRequestError(ingredient.ErrInvalidMonth.Error())
	}
	items, err := s.ingredientRepo.FindSeasonal(ctx, month)
	if err != nil {
		return nil, errors.NewDatabaseError("find seasonal ingredients", err)
	}
	return items, nil
}

// CalculateNutrition scales the ingredient's per-100g macros to a quantity.
func (s *IngredientService) CalculateNutrition(ctx context.Context, id uuid.UUID, quantityGrams float64) (*ingredient.Ingredient, ingredient.Nutrition, error) {
	ing, err := s.find(ctx, id)
	if err != nil {
		return nil, ingredient.Nutrition{}, err
	}
	n, err := ing.NutritionFor(quantityGrams)
	if err != nil {
		return nil, ingredient.Nutrition{}, errors.NewBadRequestError(err.Error())
	}
	return ing, n, nil
}

// Recognize stores a recognition record for the image. Candidates come from
// a fixture; the items that match catalog entries by name get linked.
func (s *IngredientService) Recognize(ctx context.Context, userID uuid.UUID, imageURL string) (*ingredient.Recognition, error) {
	if imageURL == "" {
		return nil, errors.NewBadRequestError("image_url is required")
	}

	start := time.Now()
	result := fixtureRecognition()

	names := make([]string, 0, len(result.Ingredients))
	for _, item := range result.Ingredients {
		names = append(names, item.Name)
	}
	if known, err := s.ingredientRepo.FindByNames(ctx, names); err == nil {
		byName := make(map[string]uuid.UUID, len(known))
		for _, ing := range known {
			byName[ing.Name] = ing.ID
		}
		for i := range result.Ingredients {
			if id, ok := byName[result.Ingredients[i].Name]; ok {
				result.Ingredients[i].IngredientID = id
			}
		}
	}
	result.TotalItems = len(result.Ingredients)
	result.ProcessingTime = time.Since(start).Seconds()

	rec := &ingredient.Recognition{
		ID:        uuid.New(),
		UserID:    userID,
		ImageURL:  imageURL,
		Result:    result,
		CreatedAt: time.Now(),
	}
	if err := s.ingredientRepo.SaveRecognition(ctx, rec); err != nil {
		return nil, errors.NewDatabaseError("save recognition", err)
	}
	s.logger.Info("Image recognized",
		zap.String("user_id", userID.String()),
		zap.Int("items", result.TotalItems),
	)
	return rec, nil
}

// History returns the caller's recognition records, newest first.
func (s *IngredientService) History(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*ingredient.Recognition, int, error) {
	recs, total, err := s.ingredientRepo.FindRecognitions(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, errors.NewDatabaseError("list recognitions", err)
	}
	return recs, total, nil
}

// RecommendRecipes returns published recipes using any of the named
// ingredients, most viewed first.
func (s *IngredientService) RecommendRecipes(ctx context.Context, ingredientNames []string) ([]*recipe.Recipe, error) {
	if len(ingredientNames) == 0 {
		return nil, errors.NewBadRequestError("ingredients list is required")
	}
	recipes, err := s.recipeRepo.FindByIngredientNames(ctx, ingredientNames, recommendLimit)
	if err != nil {
		return nil, errors.NewDatabaseError("recommend recipes", err)
	}
	return recipes, nil
}

// Create adds a catalog entry.
func (s *IngredientService) Create(ctx context.Context, cmd inbound.IngredientCommand) (*ingredient.Ingredient, error) {
	ing, err := ingredient.New(cmd.Name, ingredient.Category(cmd.Category))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	applyCommand(ing, cmd)
	if err := s.ingredientRepo.Create(ctx, ing); err != nil {
		return nil, errors.NewDatabaseError("create ingredient", err)
	}
	s.logger.Info("Ingredient created", zap.String("name", ing.Name))
	return ing, nil
}

// Update replaces a catalog entry's fields.
func (s *IngredientService) Update(ctx context.Context, id uuid.UUID, cmd inbound.IngredientCommand) (*ingredient.Ingredient, error) {
	ing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if cmd.Name != "" {
		ing.Name = cmd.Name
	}
	if cmd.Category != "" {
		cat := ingredient.Category(cmd.Category)
		if !cat.Valid() {
			cat = ingredient.CategoryOther
		}
		ing.Category = cat
	}
	applyCommand(ing, cmd)
	if err := s.ingredientRepo.Update(ctx, ing); err != nil {
		return nil, errors.NewDatabaseError("update ingredient", err)
	}
	return ing, nil
}

// Delete removes a catalog entry.
func (s *IngredientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.ingredientRepo.Delete(ctx, id); err != nil {
		return errors.NewDatabaseError("delete ingredient", err)
	}
	return nil
}

func (s *IngredientService) find(ctx context.Context, id uuid.UUID) (*ingredient.Ingredient, error) {
	ing, err := s.ingredientRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, errors.NewIngredientNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("find ingredient", err)
	}
	return ing, nil
}

func applyCommand(ing *ingredient.Ingredient, cmd inbound.IngredientCommand) {
	ing.ImageURL = cmd.ImageURL
	ing.Calories = cmd.Calories
	ing.Protein = cmd.Protein
	ing.Fat = cmd.Fat
	ing.Carbohydrate = cmd.Carbohydrate
	ing.Fiber = cmd.Fiber
	ing.Vitamins = cmd.Vitamins
	ing.Description = cmd.Description
	ing.Season = cmd.Season
}

// fixtureRecognition is the stand-in for a vision model. The candidate set
// matches the seed catalog so linked IDs resolve in development.
func fixtureRecognition() ingredient.RecognitionResult {
	return ingredient.RecognitionResult{
		Ingredients: []ingredient.RecognizedItem{
			{Name: "tomato", Confidence: 0.95},
			{Name: "egg", Confidence: 0.89},
			{Name: "scallion", Confidence: 0.72},
		},
	}
}
