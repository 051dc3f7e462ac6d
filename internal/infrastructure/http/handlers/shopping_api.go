package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/infrastructure/http/middleware"
	"github.com/smartrecipe/server/internal/ports/inbound"
)

// ShoppingAPIHandlers handles the owner-scoped shopping list requests.
type ShoppingAPIHandlers struct {
	shoppingService inbound.ShoppingService
	logger          *zap.Logger
}

// NewShoppingAPIHandlers creates the shopping list handler set.
func NewShoppingAPIHandlers(shoppingService inbound.ShoppingService, logger *zap.Logger) *ShoppingAPIHandlers {
	return &ShoppingAPIHandlers{
		shoppingService: shoppingService,
		logger:          logger,
	}
}

// AddShoppingItemRequest adds one row to the caller's list.
type AddShoppingItemRequest struct {
	IngredientID uuid.UUID `json:"ingredient_id" validate:"required"`
	Quantity     float64   `json:"quantity" validate:"required,gt=0"`
	Unit         string    `json:"unit" validate:"max=20"`
}

// UpdateShoppingItemRequest is the partial item update payload.
type UpdateShoppingItemRequest struct {
	Quantity  *float64 `json:"quantity" validate:"omitempty,gt=0"`
	Unit      *string  `json:"unit" validate:"omitempty,max=20"`
	Purchased *bool    `json:"purchased"`
}

// GenerateRequest asks to merge a recipe's ingredients into the list.
type GenerateRequest struct {
	RecipeID uuid.UUID `json:"recipe_id" validate:"required"`
}

// List handles GET /api/shopping-list/
func (h *ShoppingAPIHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	onlyUnpurchased := r.URL.Query().Get("only_unpurchased") == "true"
	items, err := h.shoppingService.List(r.Context(), userID, onlyUnpurchased)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, map[string]interface{}{
		"count":   len(items),
		"results": shoppingItemsToResponse(items),
	})
}

// Add handles POST /api/shopping-list/
func (h *ShoppingAPIHandlers) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	var req AddShoppingItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	item, err := h.shoppingService.Add(r.Context(), userID, inbound.AddShoppingItemCommand{
		IngredientID: req.IngredientID,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeCreated(w, h.logger, shoppingItemToResponse(item))
}

// Update handles PUT and PATCH /api/shopping-list/{id}/
func (h *ShoppingAPIHandlers) Update(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateShoppingItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	item, err := h.shoppingService.Update(r.Context(), userID, id, inbound.UpdateShoppingItemCommand{
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		Purchased: req.Purchased,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, shoppingItemToResponse(item))
}

// Delete handles DELETE /api/shopping-list/{id}/
func (h *ShoppingAPIHandlers) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.shoppingService.Delete(r.Context(), userID, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, h.logger, "Item deleted")
}

// Generate handles POST /api/shopping-list/generate/
func (h *ShoppingAPIHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	var req GenerateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	result, err := h.shoppingService.GenerateFromRecipe(r.Context(), userID, req.RecipeID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, result)
}
