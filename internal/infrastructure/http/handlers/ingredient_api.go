package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/infrastructure/http/middleware"
	"github.com/smartrecipe/server/internal/ports/inbound"
)

// IngredientAPIHandlers handles catalog, nutrition and recognition requests.
type IngredientAPIHandlers struct {
	ingredientService inbound.IngredientService
	logger            *zap.Logger
}

// NewIngredientAPIHandlers creates the ingredient handler set.
func NewIngredientAPIHandlers(ingredientService inbound.IngredientService, logger *zap.Logger) *IngredientAPIHandlers {
	return &IngredientAPIHandlers{
		ingredientService: ingredientService,
		logger:            logger,
	}
}

// NutritionCalculateRequest asks for macros scaled to a quantity.
type NutritionCalculateRequest struct {
	IngredientID  uuid.UUID `json:"ingredient_id" validate:"required"`
	QuantityGrams float64   `json:"quantity_grams" validate:"required,gt=0"`
}

// RecognizeRequest submits an image for ingredient recognition.
type RecognizeRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
}

// RecommendRequest asks for recipes using any of the named ingredients.
type RecommendRequest struct {
	Ingredients []string `json:"ingredients" validate:"required,min=1"`
}

// IngredientRequest is the admin create/update payload.
type IngredientRequest struct {
	Name         string             `json:"name" validate:"required,max=100"`
	Category     string             `json:"category"`
	ImageURL     string             `json:"image_url"`
	Calories     float64            `json:"calories" validate:"min=0"`
	Protein      float64            `json:"protein" validate:"min=0"`
	Fat          float64            `json:"fat" validate:"min=0"`
	Carbohydrate float64            `json:"carbohydrate" validate:"min=0"`
	Fiber        float64            `json:"fiber" validate:"min=0"`
	Vitamins     map[string]float64 `json:"vitamins"`
	Description  string             `json:"description"`
	Season       []int              `json:"season" validate:"dive,min=1,max=12"`
}

func (req IngredientRequest) toCommand() inbound.IngredientCommand {
	return inbound.IngredientCommand{
		Name:         req.Name,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		Calories:     req.Calories,
		Protein:      req.Protein,
		Fat:          req.Fat,
		Carbohydrate: req.Carbohydrate,
		Fiber:        req.Fiber,
		Vitamins:     req.Vitamins,
		Description:  req.Description,
		Season:       req.Season,
	}
}

// List handles GET /api/ingredient/
func (h *IngredientAPIHandlers) List(w http.ResponseWriter, r *http.Request) {
	params := parsePage(r, standardPage)
	items, count, err := h.ingredientService.List(r.Context(), inbound.ListIngredientsQuery{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Offset:   params.Offset(),
		Limit:    params.Size,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, newPage(r, params, count, ingredientsToResponse(items)))
}

// Get handles GET /api/ingredient/{id}/
func (h *IngredientAPIHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	item, err := h.ingredientService.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, ingredientToResponse(item))
}

// Search handles GET /api/ingredient/search/?q=
func (h *IngredientAPIHandlers) Search(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("q"))
	items, err := h.ingredientService.Search(r.Context(), keyword)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, map[string]interface{}{
		"keyword": keyword,
		"count":   len(items),
		"results": ingredientsToResponse(items),
	})
}

// Seasonal handles GET /api/ingredient/seasonal/?month=
func (h *IngredientAPIHandlers) Seasonal(w http.ResponseWriter, r *http.Request) {
	month := int(time.Now().Month())
	if raw := r.URL.Query().Get("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeBadRequest(w, h.logger, "month must be a number between 1 and 12")
			return
		}
		month = v
	}

	items, err := h.ingredientService.Seasonal(r.Context(), month)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, map[string]interface{}{
		"month":   month,
		"count":   len(items),
		"results": ingredientsToResponse(items),
	})
}

// CalculateNutrition handles POST /api/ingredient/nutrition-calculate/
func (h *IngredientAPIHandlers) CalculateNutrition(w http.ResponseWriter, r *http.Request) {
	var req NutritionCalculateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	item, scaled, err := h.ingredientService.CalculateNutrition(r.Context(), req.IngredientID, req.QuantityGrams)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, map[string]interface{}{
		"ingredient_id":   item.ID,
		"ingredient_name": item.Name,
		"quantity_grams":  req.QuantityGrams,
		"nutrition":       scaled,
	})
}

// Recognize handles POST /api/ingredient/recognize/
func (h *IngredientAPIHandlers) Recognize(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	var req RecognizeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	rec, err := h.ingredientService.Recognize(r.Context(), userID, req.ImageURL)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, recognitionToResponse(rec))
}

// History handles GET /api/ingredient/history/
func (h *IngredientAPIHandlers) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	params := parsePage(r, standardPage)
	records, count, err := h.ingredientService.History(r.Context(), userID, params.Offset(), params.Size)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	results := make([]RecognitionResponse, 0, len(records))
	for _, rec := range records {
		results = append(results, recognitionToResponse(rec))
	}
	writeData(w, h.logger, newPage(r, params, count, results))
}

// Recommend handles POST /api/ingredient/recommend/
func (h *IngredientAPIHandlers) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	recipes, err := h.ingredientService.RecommendRecipes(r.Context(), req.Ingredients)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, map[string]interface{}{
		"ingredients": req.Ingredients,
		"count":       len(recipes),
		"results":     recipesToSummaries(recipes),
	})
}

// Create handles POST /api/ingredient/manage/ (staff only)
func (h *IngredientAPIHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req IngredientRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	item, err := h.ingredientService.Create(r.Context(), req.toCommand())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeCreated(w, h.logger, ingredientToResponse(item))
}

// Update handles PUT /api/ingredient/manage/{id}/ (staff only)
func (h *IngredientAPIHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req IngredientRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	item, err := h.ingredientService.Update(r.Context(), id, req.toCommand())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, ingredientToResponse(item))
}

// Delete handles DELETE /api/ingredient/manage/{id}/ (staff only)
func (h *IngredientAPIHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.ingredientService.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, h.logger, "Ingredient deleted")
}
