package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fidel-otieno2/KinKeep.app/internal/content/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/content/service"
	socialdomain "github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
	"github.com/fidel-otieno2/KinKeep.app/pkg/middleware"
	"github.com/fidel-otieno2/KinKeep.app/pkg/response"
)

const (
	defaultPostLimit = 10
	maxPostLimit     = 50
)

// Handler handles HTTP requests for posts.
type Handler struct {
	contentService service.ContentService
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler creates a new HTTP handler.
func NewHandler(contentService service.ContentService, authMiddleware *middleware.AuthMiddleware) *Handler {
	return &Handler{
		contentService: contentService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers content routes.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	posts := api.Group("/posts")
	posts.Use(h.authMiddleware.RequireAuth())
	{
		posts.POST("", h.CreatePost)
		posts.GET("", h.ListPosts)
		posts.GET("/saved", h.SavedPosts)
		posts.GET("/:id", h.GetPost)
		posts.POST("/:id/like", h.ToggleLike)
		posts.POST("/:id/save", h.ToggleSave)
		posts.GET("/:id/comments", h.ListComments)
		posts.POST("/:id/comments", h.AddComment)
	}
}

// CreatePost creates a post, story or reel.
func (h *Handler) CreatePost(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid create post request")
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.contentService.CreatePost(ctx, middleware.GetUserID(c), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidKind) {
			response.BadRequest(c, "invalid post kind")
			return
		}
		l.Error().Err(err).Msg("create post failed")
		response.InternalError(c, "failed to create post")
		return
	}

	response.Created(c, post)
}

// ListPosts lists the feed, stories or reels, optionally filtered to one
// author via user_id.
func (h *Handler) ListPosts(c *gin.Context) {
	ctx := c.Request.Context()
	page, limit := pagination(c, defaultPostLimit)

	var authorID *uint
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			response.BadRequest(c, "invalid user_id")
			return
		}
		uid := uint(id)
		authorID = &uid
	}

	result, err := h.contentService.ListPosts(ctx, middleware.GetUserID(c), c.DefaultQuery("type", service.FeedTypeFeed), authorID, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFeedType) {
			response.BadRequest(c, "invalid feed type")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("list posts failed")
		response.InternalError(c, "failed to list posts")
		return
	}

	response.Success(c, result)
}

// GetPost returns a single post.
func (h *Handler) GetPost(c *gin.Context) {
	ctx := c.Request.Context()
	postID, ok := pathPostID(c)
	if !ok {
		return
	}

	post, err := h.contentService.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Uint("post_id", postID).Msg("get post failed")
		response.InternalError(c, "failed to get post")
		return
	}

	response.Success(c, post)
}

// ToggleLike likes the post, or removes the like when already present.
func (h *Handler) ToggleLike(c *gin.Context) {
	h.toggle(c, h.contentService.ToggleLike, "failed to toggle like")
}

// ToggleSave saves the post, or removes the save when already present.
func (h *Handler) ToggleSave(c *gin.Context) {
	h.toggle(c, h.contentService.ToggleSave, "failed to toggle save")
}

// SavedPosts lists the caller's saved posts.
func (h *Handler) SavedPosts(c *gin.Context) {
	ctx := c.Request.Context()
	page, limit := pagination(c, defaultPostLimit)

	result, err := h.contentService.SavedPosts(ctx, middleware.GetUserID(c), page, limit)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("list saved posts failed")
		response.InternalError(c, "failed to list saved posts")
		return
	}

	response.Success(c, result)
}

// AddComment adds a comment, optionally nested under parent_id.
func (h *Handler) AddComment(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	postID, ok := pathPostID(c)
	if !ok {
		return
	}
	var req domain.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid comment request")
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.contentService.AddComment(ctx, middleware.GetUserID(c), postID, &req)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		l.Error().Err(err).Uint("post_id", postID).Msg("add comment failed")
		response.InternalError(c, "failed to add comment")
		return
	}

	response.Created(c, comment)
}

// ListComments lists the comments on a post.
func (h *Handler) ListComments(c *gin.Context) {
	ctx := c.Request.Context()
	postID, ok := pathPostID(c)
	if !ok {
		return
	}

	comments, err := h.contentService.ListComments(ctx, postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Uint("post_id", postID).Msg("list comments failed")
		response.InternalError(c, "failed to list comments")
		return
	}

	response.Success(c, comments)
}

func (h *Handler) toggle(c *gin.Context, fn func(ctx context.Context, userID, postID uint) (socialdomain.ToggleAction, error), errMsg string) {
	ctx := c.Request.Context()
	postID, ok := pathPostID(c)
	if !ok {
		return
	}
	action, err := fn(ctx, middleware.GetUserID(c), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Uint("post_id", postID).Msg(errMsg)
		response.InternalError(c, errMsg)
		return
	}
	response.Success(c, socialdomain.ToggleResponse{Action: action})
}

func pathPostID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid post id")
		return 0, false
	}
	return uint(id), true
}

func pagination(c *gin.Context, defaultLimit int) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxPostLimit {
		limit = maxPostLimit
	}
	return page, limit
}
