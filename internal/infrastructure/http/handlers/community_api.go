package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/domain/community"
	"github.com/smartrecipe/server/internal/infrastructure/http/middleware"
	"github.com/smartrecipe/server/internal/ports/inbound"
)

// CommunityAPIHandlers handles the food feed, post likes and comments.
type CommunityAPIHandlers struct {
	communityService inbound.CommunityService
	logger           *zap.Logger
}

// NewCommunityAPIHandlers creates the community handler set.
func NewCommunityAPIHandlers(communityService inbound.CommunityService, logger *zap.Logger) *CommunityAPIHandlers {
	return &CommunityAPIHandlers{
		communityService: communityService,
		logger:           logger,
	}
}

// CreatePostRequest is the feed post create payload.
type CreatePostRequest struct {
	Content  string     `json:"content" validate:"required"`
	Images   []string   `json:"images" validate:"dive,url"`
	RecipeID *uuid.UUID `json:"recipe_id"`
}

// CreateCommentRequest comments on a post via the nested route.
type CreateCommentRequest struct {
	Content  string     `json:"content" validate:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// GenericCommentRequest comments on a recipe or post via the generic route.
type GenericCommentRequest struct {
	TargetType string     `json:"target_type" validate:"required,oneof=recipe post"`
	TargetID   uuid.UUID  `json:"target_id" validate:"required"`
	Content    string     `json:"content" validate:"required"`
	ParentID   *uuid.UUID `json:"parent_id"`
}

// ListPosts handles GET /api/community/posts/
func (h *CommunityAPIHandlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	params := parsePage(r, smallPage)
	posts, count, err := h.communityService.ListPosts(r.Context(), params.Offset(), params.Size)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, newPage(r, params, count, postsToResponse(posts)))
}

// CreatePost handles POST /api/community/posts/
func (h *CommunityAPIHandlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	var req CreatePostRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	post, err := h.communityService.CreatePost(r.Context(), userID, inbound.CreatePostCommand{
		Content:  req.Content,
		Images:   req.Images,
		RecipeID: req.RecipeID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeCreated(w, h.logger, postToResponse(post))
}

// GetPost handles GET /api/community/posts/{id}/
func (h *CommunityAPIHandlers) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	post, err := h.communityService.GetPost(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, postToResponse(post))
}

// LikePost handles POST /api/community/posts/{id}/like/
func (h *CommunityAPIHandlers) LikePost(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.communityService.TogglePostLike(r.Context(), id, userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, result)
}

// ListPostComments handles GET /api/community/posts/{id}/comments/
func (h *CommunityAPIHandlers) ListPostComments(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	params := parsePage(r, smallPage)
	comments, count, err := h.communityService.ListComments(r.Context(), community.TargetPost, id, params.Offset(), params.Size)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, newPage(r, params, count, commentsToResponse(comments)))
}

// CreatePostComment handles POST /api/community/posts/{id}/comments/
func (h *CommunityAPIHandlers) CreatePostComment(w http.ResponseWriter, r *http.Request) {
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

	var req CreateCommentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	comment, err := h.communityService.CreateComment(r.Context(), userID, inbound.CreateCommentCommand{
		TargetType: community.TargetPost,
		TargetID:   id,
		Content:    req.Content,
		ParentID:   req.ParentID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeCreated(w, h.logger, commentToResponse(comment))
}

// ListComments handles GET /api/community/comment/?target_type=&target_id=
func (h *CommunityAPIHandlers) ListComments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	targetType := q.Get("target_type")
	rawTarget := q.Get("target_id")
	if targetType == "" || rawTarget == "" {
		writeBadRequest(w, h.logger, "target_type and target_id are required")
		return
	}
	targetID, err := uuid.Parse(rawTarget)
	if err != nil {
		writeBadRequest(w, h.logger, "Invalid target_id")
		return
	}

	params := parsePage(r, smallPage)
	comments, count, err := h.communityService.ListComments(r.Context(), community.TargetType(targetType), targetID, params.Offset(), params.Size)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, h.logger, newPage(r, params, count, commentsToResponse(comments)))
}

// CreateComment handles POST /api/community/comment/create/
func (h *CommunityAPIHandlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, h.logger)
		return
	}

	var req GenericCommentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	comment, err := h.communityService.CreateComment(r.Context(), userID, inbound.CreateCommentCommand{
		TargetType: community.TargetType(req.TargetType),
		TargetID:   req.TargetID,
		Content:    req.Content,
		ParentID:   req.ParentID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeCreated(w, h.logger, commentToResponse(comment))
}
