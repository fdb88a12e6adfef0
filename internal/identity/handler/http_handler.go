package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/identity/service"
	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
	"github.com/fidel-otieno2/KinKeep.app/pkg/middleware"
	"github.com/fidel-otieno2/KinKeep.app/pkg/response"
)

// Handler handles HTTP requests for the identity area.
type Handler struct {
	identityService service.IdentityService
	authMiddleware  *middleware.AuthMiddleware
}

// NewHandler creates a new HTTP handler.
func NewHandler(identityService service.IdentityService, authMiddleware *middleware.AuthMiddleware) *Handler {
	return &Handler{
		identityService: identityService,
		authMiddleware:  authMiddleware,
	}
}

// RegisterRoutes registers identity routes.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.RefreshToken)
	}

	users := api.Group("/users")
	users.Use(h.authMiddleware.RequireAuth())
	{
		users.GET("/me", h.GetMe)
		users.PUT("/me", h.UpdateMe)
		users.POST("/change-password", h.ChangePassword)
	}
}

// Register handles user registration.
func (h *Handler) Register(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid register request")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.identityService.Register(ctx, &req)
	if err != nil {
		l.Error().Err(err).Msg("register failed")
		response.InternalError(c, "failed to register user")
		return
	}

	response.Created(c, result)
}

// Login handles user login.
func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid login request")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.identityService.Login(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid email or password")
			return
		}
		l.Error().Err(err).Msg("login failed")
		response.InternalError(c, "failed to login")
		return
	}

	response.Success(c, result)
}

// RefreshToken handles token refresh.
func (h *Handler) RefreshToken(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid refresh token request")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.identityService.RefreshToken(ctx, &req)
	if err != nil {
		l.Warn().Err(err).Msg("refresh token failed")
		response.Unauthorized(c, "invalid or expired refresh token")
		return
	}

	response.Success(c, result)
}

// GetMe returns the current user's profile.
func (h *Handler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	userID := middleware.GetUserID(c)

	result, err := h.identityService.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		l.Error().Err(err).Uint(log.FieldUserID, userID).Msg("get profile failed")
		response.InternalError(c, "failed to get profile")
		return
	}

	response.Success(c, result)
}

// UpdateMe handles partial profile updates.
func (h *Handler) UpdateMe(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	userID := middleware.GetUserID(c)

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid profile update request")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.identityService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		if errors.Is(err, service.ErrUsernameTaken) {
			response.Conflict(c, "username already taken")
			return
		}
		l.Error().Err(err).Uint(log.FieldUserID, userID).Msg("profile update failed")
		response.InternalError(c, "failed to update profile")
		return
	}

	response.Success(c, result)
}

// ChangePassword handles password changes.
func (h *Handler) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	userID := middleware.GetUserID(c)

	var req domain.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid change password request")
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.identityService.ChangePassword(ctx, userID, &req); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			response.BadRequest(c, "current password is incorrect")
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		l.Error().Err(err).Uint(log.FieldUserID, userID).Msg("change password failed")
		response.InternalError(c, "failed to change password")
		return
	}

	response.Success(c, gin.H{"message": "password changed successfully"})
}
