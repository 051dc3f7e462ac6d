package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/infrastructure/http/middleware"
	"github.com/smartrecipe/server/internal/ports/inbound"
	apperrors "github.com/smartrecipe/server/pkg/errors"
)

// AuthAPIHandlers handles account, session, profile and follow requests.
type AuthAPIHandlers struct {
	userService inbound.UserService
	logger      *zap.Logger
}

// NewAuthAPIHandlers creates the account handler set.
func NewAuthAPIHandlers(userService inbound.UserService, logger *zap.Logger) *AuthAPIHandlers {
	return &AuthAPIHandlers{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRequest represents user registration request
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=30"`
	Password        string `json:"password" validate:"required,min=6,max=128"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	Nickname        string `json:"nickname" validate:"max=100"`
	Phone           string `json:"phone" validate:"max=20"`
}

// LoginRequest represents user login request
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token for logout and renewal.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChangePasswordRequest carries a password rotation.
type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=6,max=128"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required"`
}

// UpdateProfileRequest carries a partial profile update.
type UpdateProfileRequest struct {
	Nickname            *string   `json:"nickname" validate:"omitempty,max=100"`
	Avatar              *string   `json:"avatar"`
	Gender              *string   `json:"gender" validate:"omitempty,oneof=male female other"`
	Age                 *int      `json:"age" validate:"omitempty,min=1,max=150"`
	Phone               *string   `json:"phone" validate:"omitempty,max=20"`
	DietaryPreferences  *[]string `json:"dietary_preferences"`
	Allergies           *[]string `json:"allergies"`
	HealthGoal          *string   `json:"health_goal" validate:"omitempty,oneof=lose_weight gain_muscle maintain improve_nutrition"`
	DailyCaloriesTarget *int      `json:"daily_calories_target" validate:"omitempty,min=1"`
}

// LoginResponse bundles the token pair with the account payload.
type LoginResponse struct {
	Tokens  inbound.AuthTokens `json:"tokens"`
	User    UserResponse       `json:"user"`
	Profile ProfileResponse    `json:"profile"`
}

// Register handles POST /api/user/register/
func (h *AuthAPIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if req.Password != req.PasswordConfirm {
		writeBadRequest(w, h.logger, "Passwords do not match")
		return
	}

	u, p, err := h.userService.Register(r.Context(), inbound.RegisterCommand{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Nickname: req.Nickname,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeCreated(w, h.logger, map[string]interface{}{
		"user":    userToResponse(u),
		"profile": profileToResponse(p),
	})
}

// Login handles POST /api/user/login/
func (h *AuthAPIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	tokens, u, p, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeData(w, h.logger, LoginResponse{
		Tokens:  *tokens,
		User:    userToResponse(u),
		Profile: profileToResponse(p),
	})
}

// Logout handles POST /api/user/logout/
func (h *AuthAPIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.userService.Logout(r.Context(), req.RefreshToken); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, h.logger, "Logged out")
}

// RefreshToken handles POST /api/token/refresh/
func (h *AuthAPIHandlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	tokens, err := h.userService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, tokens)
}

// GetProfile handles GET /api/user/profile/
func (h *AuthAPIHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	p, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, profileToResponse(p))
}

// UpdateProfile handles PUT and PATCH /api/user/profile/
func (h *AuthAPIHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	var req UpdateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := h.userService.UpdateProfile(r.Context(), userID, inbound.UpdateProfileCommand{
		Nickname:            req.Nickname,
		Avatar:              req.Avatar,
		Gender:              req.Gender,
		Age:                 req.Age,
		Phone:               req.Phone,
		DietaryPreferences:  req.DietaryPreferences,
		Allergies:           req.Allergies,
		HealthGoal:          req.HealthGoal,
		DailyCaloriesTarget: req.DailyCaloriesTarget,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, profileToResponse(p))
}

// ChangePassword handles POST /api/user/change-password/
func (h *AuthAPIHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	var req ChangePasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if req.NewPassword != req.NewPasswordConfirm {
		writeBadRequest(w, h.logger, "Passwords do not match")
		return
	}

	if err := h.userService.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, h.logger, "Password changed")
}

// Follow handles POST /api/user/{id}/follow/
func (h *AuthAPIHandlers) Follow(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}
	targetID, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.userService.Follow(r.Context(), userID, targetID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, h.logger, "Followed")
}

// Unfollow handles DELETE /api/user/{id}/follow/
func (h *AuthAPIHandlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}
	targetID, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.userService.Unfollow(r.Context(), userID, targetID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, h.logger, "Unfollowed")
}

// Following handles GET /api/user/following/
func (h *AuthAPIHandlers) Following(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	params := parsePage(r, standardPage)
	users, count, err := h.userService.ListFollowing(r.Context(), userID, params.Offset(), params.Size)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	results := make([]UserResponse, 0, len(users))
	for _, u := range users {
		results = append(results, userToResponse(u))
	}
	writeData(w, h.logger, newPage(r, params, count, results))
}

// PublicProfile handles GET /api/user/{id}/
func (h *AuthAPIHandlers) PublicProfile(w http.ResponseWriter, r *http.Request) {
	targetID, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	u, p, err := h.userService.GetPublicProfile(r.Context(), targetID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, publicProfileToResponse(u, p))
}

// parseID reads the {id} URL parameter as a UUID.
func parseID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError("Invalid ID")
	}
	return id, nil
}
