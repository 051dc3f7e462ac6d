package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/domain/nutrition"
	"github.com/smartrecipe/server/internal/infrastructure/http/middleware"
	"github.com/smartrecipe/server/internal/ports/inbound"
)

const dateLayout = "2006-01-02"

// NutritionAPIHandlers handles the diary, reports and advice requests.
type NutritionAPIHandlers struct {
	nutritionService inbound.NutritionService
	logger           *zap.Logger
}

// NewNutritionAPIHandlers creates the nutrition handler set.
func NewNutritionAPIHandlers(nutritionService inbound.NutritionService, logger *zap.Logger) *NutritionAPIHandlers {
	return &NutritionAPIHandlers{
		nutritionService: nutritionService,
		logger:           logger,
	}
}

// AddLogRequest is the diary entry create payload.
type AddLogRequest struct {
	RecipeID     *uuid.UUID `json:"recipe_id"`
	FoodName     string     `json:"food_name" validate:"max=200"`
	Calories     float64    `json:"calories" validate:"min=0"`
	Protein      float64    `json:"protein" validate:"min=0"`
	Fat          float64    `json:"fat" validate:"min=0"`
	Carbohydrate float64    `json:"carbohydrate" validate:"min=0"`
	MealType     string     `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
	Date         string     `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// DiaryResponse is the one-day diary view payload.
type DiaryResponse struct {
	Date        string                          `json:"date"`
	Logs        []DietaryLogResponse            `json:"logs"`
	MealGroups  map[string][]DietaryLogResponse `json:"meal_groups"`
	Summary     nutrition.Totals                `json:"summary"`
	DailyTarget int                             `json:"daily_target"`
}

// Diary handles GET /api/nutrition/diary/?date=
func (h *NutritionAPIHandlers) Diary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeBadRequest(w, h.logger, "date must be formatted YYYY-MM-DD")
			return
		}
		date = parsed
	}

	diary, err := h.nutritionService.Diary(r.Context(), userID, date)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	groups := make(map[string][]DietaryLogResponse, len(diary.MealGroups))
	for meal, logs := range diary.MealGroups {
		groups[string(meal)] = dietaryLogsToResponse(logs)
	}
	writeData(w, h.logger, DiaryResponse{
		Date:        diary.Date,
		Logs:        dietaryLogsToResponse(diary.Logs),
		MealGroups:  groups,
		Summary:     diary.Summary,
		DailyTarget: diary.DailyTarget,
	})
}

// AddLog handles POST /api/nutrition/diary/
func (h *NutritionAPIHandlers) AddLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	var req AddLogRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	cmd := inbound.AddLogCommand{
		RecipeID:     req.RecipeID,
		FoodName:     req.FoodName,
		Calories:     req.Calories,
		Protein:      req.Protein,
		Fat:          req.Fat,
		Carbohydrate: req.Carbohydrate,
		MealType:     nutrition.MealType(req.MealType),
	}
	if req.Date != "" {
		parsed, _ := time.Parse(dateLayout, req.Date)
		cmd.Date = &parsed
	}

	entry, err := h.nutritionService.AddLog(r.Context(), userID, cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeCreated(w, h.logger, dietaryLogToResponse(entry))
}

// DeleteLog handles DELETE /api/nutrition/diary/{id}/
func (h *NutritionAPIHandlers) DeleteLog(w http.ResponseWriter, r *http.Request) {
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

	if err := h.nutritionService.DeleteLog(r.Context(), userID, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, h.logger, "Log deleted")
}

// Report handles GET /api/nutrition/report/?period=week|month
func (h *NutritionAPIHandlers) Report(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	period := nutrition.PeriodWeek
	if raw := r.URL.Query().Get("period"); raw != "" {
		period = nutrition.Period(raw)
		if period != nutrition.PeriodWeek && period != nutrition.PeriodMonth {
			writeBadRequest(w, h.logger, "period must be week or month")
			return
		}
	}

	report, err := h.nutritionService.Report(r.Context(), userID, period)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, report)
}

// Advice handles GET /api/nutrition/advice/
func (h *NutritionAPIHandlers) Advice(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	advice, err := h.nutritionService.Advice(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, advice)
}

// RecipeNutrition handles GET /api/nutrition/recipe/{id}/
func (h *NutritionAPIHandlers) RecipeNutrition(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	result, err := h.nutritionService.RecipeNutrition(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, result)
}
