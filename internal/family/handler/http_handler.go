package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fidel-otieno2/KinKeep.app/internal/family/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/family/service"
	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
	"github.com/fidel-otieno2/KinKeep.app/pkg/middleware"
	"github.com/fidel-otieno2/KinKeep.app/pkg/response"
)

// Handler handles HTTP requests for families.
type Handler struct {
	familyService  service.FamilyService
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler creates a new HTTP handler.
func NewHandler(familyService service.FamilyService, authMiddleware *middleware.AuthMiddleware) *Handler {
	return &Handler{
		familyService:  familyService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers family routes.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	families := api.Group("/families")
	families.Use(h.authMiddleware.RequireAuth())
	{
		families.POST("", h.CreateFamily)
		families.GET("", h.MyFamilies)
		families.GET("/:id", h.GetFamily)
	}
}

// CreateFamily creates a family with the caller as its admin.
func (h *Handler) CreateFamily(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid create family request")
		response.BadRequest(c, err.Error())
		return
	}

	family, err := h.familyService.CreateFamily(ctx, middleware.GetUserID(c), &req)
	if err != nil {
		l.Error().Err(err).Msg("create family failed")
		response.InternalError(c, "failed to create family")
		return
	}

	response.Created(c, family)
}

// MyFamilies lists the families the caller belongs to.
func (h *Handler) MyFamilies(c *gin.Context) {
	ctx := c.Request.Context()
	families, err := h.familyService.MyFamilies(ctx, middleware.GetUserID(c))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("list families failed")
		response.InternalError(c, "failed to list families")
		return
	}
	response.Success(c, families)
}

// GetFamily returns a family with its members. Members only.
func (h *Handler) GetFamily(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid family id")
		return
	}

	family, err := h.familyService.GetFamily(ctx, middleware.GetUserID(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFamilyNotFound):
			response.NotFound(c, "family not found")
		case errors.Is(err, service.ErrNotMember):
			response.Forbidden(c, "not a member of this family")
		default:
			log.Ctx(ctx).Error().Err(err).Uint("family_id", uint(id)).Msg("get family failed")
			response.InternalError(c, "failed to get family")
		}
		return
	}

	response.Success(c, family)
}
