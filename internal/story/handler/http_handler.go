package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fidel-otieno2/KinKeep.app/internal/story/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/story/service"
	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
	"github.com/fidel-otieno2/KinKeep.app/pkg/middleware"
	"github.com/fidel-otieno2/KinKeep.app/pkg/response"
)

const defaultStoryLimit = 10

// Handler handles HTTP requests for family stories.
type Handler struct {
	storyService   service.StoryService
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler creates a new HTTP handler.
func NewHandler(storyService service.StoryService, authMiddleware *middleware.AuthMiddleware) *Handler {
	return &Handler{
		storyService:   storyService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers story routes.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	stories := api.Group("/stories")
	stories.Use(h.authMiddleware.RequireAuth())
	{
		stories.POST("", h.CreateStory)
		stories.GET("", h.ListStories)
		stories.GET("/:id", h.GetStory)
		stories.PUT("/:id", h.UpdateStory)
		stories.POST("/:id/enhance", h.EnhanceStory)
		stories.POST("/:id/accept-enhancement", h.AcceptEnhancement)
		stories.GET("/:id/comments", h.ListComments)
		stories.POST("/:id/comments", h.AddComment)
	}
}

// CreateStory creates a story in a family the caller belongs to.
func (h *Handler) CreateStory(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid create story request")
		response.BadRequest(c, err.Error())
		return
	}

	story, err := h.storyService.CreateStory(ctx, middleware.GetUserID(c), &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFamilyMember) {
			response.Forbidden(c, "not a member of this family")
			return
		}
		l.Error().Err(err).Msg("create story failed")
		response.InternalError(c, "failed to create story")
		return
	}

	response.Created(c, story)
}

// ListStories lists stories by family, or the caller's own when no family is
// given.
func (h *Handler) ListStories(c *gin.Context) {
	ctx := c.Request.Context()
	page, limit := pagination(c)

	var familyID *uint
	if raw := c.Query("family_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			response.BadRequest(c, "invalid family_id")
			return
		}
		fid := uint(id)
		familyID = &fid
	}

	result, err := h.storyService.ListStories(ctx, middleware.GetUserID(c), familyID, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrNotFamilyMember) {
			response.Forbidden(c, "not a member of this family")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("list stories failed")
		response.InternalError(c, "failed to list stories")
		return
	}

	response.Success(c, result)
}

// GetStory returns a single story, subject to its visibility.
func (h *Handler) GetStory(c *gin.Context) {
	ctx := c.Request.Context()
	storyID, ok := pathStoryID(c)
	if !ok {
		return
	}

	story, err := h.storyService.GetStory(ctx, middleware.GetUserID(c), storyID)
	if err != nil {
		h.renderStoryError(c, err, storyID, "get story failed")
		return
	}

	response.Success(c, story)
}

// UpdateStory partially updates a story. Owner only.
func (h *Handler) UpdateStory(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	storyID, ok := pathStoryID(c)
	if !ok {
		return
	}
	var req domain.UpdateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid update story request")
		response.BadRequest(c, err.Error())
		return
	}

	story, err := h.storyService.UpdateStory(ctx, middleware.GetUserID(c), storyID, &req)
	if err != nil {
		h.renderStoryError(c, err, storyID, "update story failed")
		return
	}

	response.Success(c, story)
}

// EnhanceStory asks the AI backend for a polished draft of the story.
func (h *Handler) EnhanceStory(c *gin.Context) {
	ctx := c.Request.Context()
	storyID, ok := pathStoryID(c)
	if !ok {
		return
	}

	story, err := h.storyService.EnhanceStory(ctx, middleware.GetUserID(c), storyID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoryNotFound):
			response.NotFound(c, "story not found")
		case errors.Is(err, service.ErrForbidden):
			response.Forbidden(c, "only the story owner can enhance it")
		case errors.Is(err, service.ErrEmptyContent):
			response.BadRequest(c, "story has no content to enhance")
		case errors.Is(err, service.ErrAlreadyEnhanced):
			response.BadRequest(c, "story already has a pending enhancement")
		case errors.Is(err, service.ErrEnhancerDisabled):
			response.InternalError(c, "story enhancement is not configured")
		default:
			log.Ctx(ctx).Error().Err(err).Uint("story_id", storyID).Msg("enhance story failed")
			response.InternalError(c, "failed to enhance story")
		}
		return
	}

	response.Success(c, story)
}

// AcceptEnhancement accepts or rejects the pending AI draft.
func (h *Handler) AcceptEnhancement(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	storyID, ok := pathStoryID(c)
	if !ok {
		return
	}
	var req domain.AcceptEnhancementRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Accept == nil {
		l.Warn().Msg("invalid accept enhancement request")
		response.BadRequest(c, "accept is required")
		return
	}

	story, err := h.storyService.AcceptEnhancement(ctx, middleware.GetUserID(c), storyID, *req.Accept)
	if err != nil {
		if errors.Is(err, service.ErrNoPendingEnhancement) {
			response.BadRequest(c, "story has no enhancement to review")
			return
		}
		h.renderStoryError(c, err, storyID, "accept enhancement failed")
		return
	}

	response.Success(c, story)
}

// AddComment adds a comment on a story the caller can read.
func (h *Handler) AddComment(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	storyID, ok := pathStoryID(c)
	if !ok {
		return
	}
	var req domain.CreateStoryCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid story comment request")
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.storyService.AddComment(ctx, middleware.GetUserID(c), storyID, &req)
	if err != nil {
		h.renderStoryError(c, err, storyID, "add story comment failed")
		return
	}

	response.Created(c, comment)
}

// ListComments lists the comments on a story the caller can read.
func (h *Handler) ListComments(c *gin.Context) {
	ctx := c.Request.Context()
	storyID, ok := pathStoryID(c)
	if !ok {
		return
	}

	comments, err := h.storyService.ListComments(ctx, middleware.GetUserID(c), storyID)
	if err != nil {
		h.renderStoryError(c, err, storyID, "list story comments failed")
		return
	}

	response.Success(c, comments)
}

func (h *Handler) renderStoryError(c *gin.Context, err error, storyID uint, errMsg string) {
	switch {
	case errors.Is(err, service.ErrStoryNotFound):
		response.NotFound(c, "story not found")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "not allowed to access this story")
	default:
		log.Ctx(c.Request.Context()).Error().Err(err).Uint("story_id", storyID).Msg(errMsg)
		response.InternalError(c, errMsg)
	}
}

func pathStoryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid story id")
		return 0, false
	}
	return uint(id), true
}

func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultStoryLimit)))
	if err != nil || limit < 1 {
		limit = defaultStoryLimit
	}
	if limit > 50 {
		limit = 50
	}
	return page, limit
}
