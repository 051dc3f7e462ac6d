package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/infrastructure/http/middleware"
	"github.com/smartrecipe/server/internal/ports/inbound"
)

// RecipeAPIHandlers handles recipe CRUD, interactions and discovery requests.
type RecipeAPIHandlers struct {
	recipeService inbound.RecipeService
	logger        *zap.Logger
}

// NewRecipeAPIHandlers creates the recipe handler set.
func NewRecipeAPIHandlers(recipeService inbound.RecipeService, logger *zap.Logger) *RecipeAPIHandlers {
	return &RecipeAPIHandlers{
		recipeService: recipeService,
		logger:        logger,
	}
}

// IngredientLineRequest is one nested ingredient line.
type IngredientLineRequest struct {
	IngredientID uuid.UUID `json:"ingredient_id" validate:"required"`
	Quantity     float64   `json:"quantity" validate:"required,gt=0"`
	Unit         string    `json:"unit" validate:"max=20"`
	IsMain       bool      `json:"is_main"`
}

// StepRequest is one nested cooking step.
type StepRequest struct {
	StepNumber  int    `json:"step_number" validate:"required,min=1"`
	Description string `json:"description" validate:"required"`
	ImageURL    string `json:"image_url"`
	Duration    int    `json:"duration" validate:"min=0"`
	Tips        string `json:"tips"`
}

// CreateRecipeRequest is the full create payload.
type CreateRecipeRequest struct {
	Name          string                  `json:"name" validate:"required,max=200"`
	CoverImage    string                  `json:"cover_image"`
	Difficulty    string                  `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	CookingTime   int                     `json:"cooking_time" validate:"min=0"`
	Servings      int                     `json:"servings" validate:"min=0"`
	Category      string                  `json:"category"`
	CuisineType   string                  `json:"cuisine_type"`
	Tags          []string                `json:"tags"`
	TotalCalories float64                 `json:"total_calories" validate:"min=0"`
	Description   string                  `json:"description"`
	IsPublished   *bool                   `json:"is_published"`
	Ingredients   []IngredientLineRequest `json:"ingredients" validate:"dive"`
	Steps         []StepRequest           `json:"steps" validate:"dive"`
}

// UpdateRecipeRequest is the partial update payload. Nil fields are left
// untouched; non-nil ingredients/steps replace the nested collections.
type UpdateRecipeRequest struct {
	Name          *string                  `json:"name" validate:"omitempty,max=200"`
	CoverImage    *string                  `json:"cover_image"`
	Difficulty    *string                  `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	CookingTime   *int                     `json:"cooking_time" validate:"omitempty,min=0"`
	Servings      *int                     `json:"servings" validate:"omitempty,min=0"`
	Category      *string                  `json:"category"`
	CuisineType   *string                  `json:"cuisine_type"`
	Tags          *[]string                `json:"tags"`
	TotalCalories *float64                 `json:"total_calories" validate:"omitempty,min=0"`
	Description   *string                  `json:"description"`
	IsPublished   *bool                    `json:"is_published"`
	Ingredients   *[]IngredientLineRequest `json:"ingredients" validate:"omitempty,dive"`
	Steps         *[]StepRequest           `json:"steps" validate:"omitempty,dive"`
}

func linesToCommands(lines []IngredientLineRequest) []inbound.IngredientLineCommand {
	out := make([]inbound.IngredientLineCommand, 0, len(lines))
	for _, line := range lines {
		out = append(out, inbound.IngredientLineCommand{
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
			IsMain:       line.IsMain,
		})
	}
	return out
}

func stepsToCommands(steps []StepRequest) []inbound.StepCommand {
	out := make([]inbound.StepCommand, 0, len(steps))
	for _, s := range steps {
		out = append(out, inbound.StepCommand{
			StepNumber:  s.StepNumber,
			Description: s.Description,
			ImageURL:    s.ImageURL,
			Duration:    s.Duration,
			Tips:        s.Tips,
		})
	}
	return out
}

// List handles GET /api/recipe/
func (h *RecipeAPIHandlers) List(w http.ResponseWriter, r *http.Request) {
	params := parsePage(r, standardPage)
	q := r.URL.Query()

	recipes, count, err := h.recipeService.List(r.Context(), inbound.ListRecipesQuery{
		Category:    q.Get("category"),
		Difficulty:  q.Get("difficulty"),
		CuisineType: q.Get("cuisine_type"),
		Search:      q.Get("search"),
		Ordering:    q.Get("ordering"),
		Offset:      params.Offset(),
		Limit:       params.Size,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, newPage(r, params, count, recipesToSummaries(recipes)))
}

// Create handles POST /api/recipe/create/
func (h *RecipeAPIHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	var req CreateRecipeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.recipeService.Create(r.Context(), userID, inbound.CreateRecipeCommand{
		Name:          req.Name,
		CoverImage:    req.CoverImage,
		Difficulty:    req.Difficulty,
		CookingTime:   req.CookingTime,
		Servings:      req.Servings,
		Category:      req.Category,
		CuisineType:   req.CuisineType,
		Tags:          req.Tags,
		TotalCalories: req.TotalCalories,
		Description:   req.Description,
		IsPublished:   req.IsPublished,
		Ingredients:   linesToCommands(req.Ingredients),
		Steps:         stepsToCommands(req.Steps),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeCreated(w, h.logger, recipeToResponse(created))
}

// Get handles GET /api/recipe/{id}/
func (h *RecipeAPIHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var viewerID *uuid.UUID
	if uid, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		viewerID = &uid
	}

	found, err := h.recipeService.Get(r.Context(), id, viewerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, recipeToResponse(found))
}

// Update handles PUT and PATCH /api/recipe/{id}/update/
func (h *RecipeAPIHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req UpdateRecipeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	cmd := inbound.UpdateRecipeCommand{
		Name:          req.Name,
		CoverImage:    req.CoverImage,
		Difficulty:    req.Difficulty,
		CookingTime:   req.CookingTime,
		Servings:      req.Servings,
		Category:      req.Category,
		CuisineType:   req.CuisineType,
		Tags:          req.Tags,
		TotalCalories: req.TotalCalories,
		Description:   req.Description,
		IsPublished:   req.IsPublished,
	}
	if req.Ingredients != nil {
		lines := linesToCommands(*req.Ingredients)
		cmd.Ingredients = &lines
	}
	if req.Steps != nil {
		steps := stepsToCommands(*req.Steps)
		cmd.Steps = &steps
	}

	updated, err := h.recipeService.Update(r.Context(), id, userID, cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, recipeToResponse(updated))
}

// Delete handles DELETE /api/recipe/{id}/delete/
func (h *RecipeAPIHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.recipeService.Delete(r.Context(), id, userID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, h.logger, "Recipe deleted")
}

// Like handles POST /api/recipe/{id}/like/
func (h *RecipeAPIHandlers) Like(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.recipeService.ToggleLike)
}

// Favorite handles POST /api/recipe/{id}/favorite/
func (h *RecipeAPIHandlers) Favorite(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.recipeService.ToggleFavorite)
}

func (h *RecipeAPIHandlers) toggle(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id, userID uuid.UUID) (inbound.ToggleResult, error)) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	result, err := fn(r.Context(), id, userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, result)
}

// Favorites handles GET /api/recipe/favorites/
func (h *RecipeAPIHandlers) Favorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	params := parsePage(r, standardPage)
	recipes, count, err := h.recipeService.Favorites(r.Context(), userID, params.Offset(), params.Size)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, newPage(r, params, count, recipesToSummaries(recipes)))
}

// MyRecipes handles GET /api/recipe/my-recipes/
func (h *RecipeAPIHandlers) MyRecipes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	params := parsePage(r, standardPage)
	recipes, count, err := h.recipeService.MyRecipes(r.Context(), userID, params.Offset(), params.Size)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, newPage(r, params, count, recipesToSummaries(recipes)))
}

// Search handles GET /api/recipe/search/?q=
func (h *RecipeAPIHandlers) Search(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("q"))
	recipes, err := h.recipeService.Search(r.Context(), keyword)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, map[string]interface{}{
		"keyword": keyword,
		"count":   len(recipes),
		"results": recipesToSummaries(recipes),
	})
}

// Recommend handles GET /api/recipe/recommend/
func (h *RecipeAPIHandlers) Recommend(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipeService.Recommend(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, map[string]interface{}{
		"count":   len(recipes),
		"results": recipesToSummaries(recipes),
	})
}
