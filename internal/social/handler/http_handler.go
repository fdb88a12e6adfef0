package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/social/service"
	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
	"github.com/fidel-otieno2/KinKeep.app/pkg/middleware"
	"github.com/fidel-otieno2/KinKeep.app/pkg/response"
)

// Handler handles HTTP requests for the social graph area.
type Handler struct {
	socialService  service.SocialService
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler creates a new HTTP handler.
func NewHandler(socialService service.SocialService, authMiddleware *middleware.AuthMiddleware) *Handler {
	return &Handler{
		socialService:  socialService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers social graph routes.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	users.Use(h.authMiddleware.RequireAuth())
	{
		users.POST("/:id/follow", h.ToggleFollow)
		users.GET("/:id/followers", h.Followers)
		users.GET("/:id/following", h.Following)
	}

	closeFriends := api.Group("/close-friends")
	closeFriends.Use(h.authMiddleware.RequireAuth())
	{
		closeFriends.GET("", h.CloseFriends)
		closeFriends.POST("", h.ToggleCloseFriend)
	}
}

// ToggleFollow follows the target user, or unfollows when already following.
func (h *Handler) ToggleFollow(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	targetID, ok := pathID(c)
	if !ok {
		return
	}

	action, err := h.socialService.ToggleFollow(ctx, middleware.GetUserID(c), targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			response.BadRequest(c, "cannot follow yourself")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "user not found")
		default:
			l.Error().Err(err).Uint("target_id", targetID).Msg("toggle follow failed")
			response.InternalError(c, "failed to toggle follow")
		}
		return
	}

	response.Success(c, domain.ToggleResponse{Action: action})
}

// ToggleCloseFriend adds the target user to the caller's close friends, or
// removes them when already present.
func (h *Handler) ToggleCloseFriend(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.ToggleCloseFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid close friend request")
		response.BadRequest(c, err.Error())
		return
	}
	targetID := req.FriendID

	action, err := h.socialService.ToggleCloseFriend(ctx, middleware.GetUserID(c), targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			response.BadRequest(c, "cannot add yourself as a close friend")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "user not found")
		default:
			l.Error().Err(err).Uint("target_id", targetID).Msg("toggle close friend failed")
			response.InternalError(c, "failed to toggle close friend")
		}
		return
	}

	response.Success(c, domain.ToggleResponse{Action: action})
}

// Followers lists the users following the target user.
func (h *Handler) Followers(c *gin.Context) {
	h.listEdges(c, h.socialService.Followers, "failed to list followers")
}

// Following lists the users the target user follows.
func (h *Handler) Following(c *gin.Context) {
	h.listEdges(c, h.socialService.Following, "failed to list following")
}

// CloseFriends lists the caller's close friends.
func (h *Handler) CloseFriends(c *gin.Context) {
	ctx := c.Request.Context()
	friends, err := h.socialService.CloseFriends(ctx, middleware.GetUserID(c))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("list close friends failed")
		response.InternalError(c, "failed to list close friends")
		return
	}
	response.Success(c, friends)
}

func (h *Handler) listEdges(c *gin.Context, list func(ctx context.Context, userID uint) ([]domain.UserSummary, error), errMsg string) {
	ctx := c.Request.Context()
	userID, ok := pathID(c)
	if !ok {
		return
	}
	users, err := list(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Uint(log.FieldUserID, userID).Msg(errMsg)
		response.InternalError(c, errMsg)
		return
	}
	response.Success(c, users)
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid user id")
		return 0, false
	}
	return uint(id), true
}
