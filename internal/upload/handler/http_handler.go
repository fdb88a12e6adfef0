package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fidel-otieno2/KinKeep.app/internal/upload/service"
	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
	"github.com/fidel-otieno2/KinKeep.app/pkg/middleware"
	"github.com/fidel-otieno2/KinKeep.app/pkg/response"
)

// Handler handles media upload requests.
type Handler struct {
	uploadService  service.UploadService
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler creates a new HTTP handler.
func NewHandler(uploadService service.UploadService, authMiddleware *middleware.AuthMiddleware) *Handler {
	return &Handler{
		uploadService:  uploadService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers upload routes.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/upload", h.authMiddleware.RequireAuth(), h.Upload)
}

// Upload accepts a multipart file with its type and target folder.
func (h *Handler) Upload(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	uploadType := c.PostForm("type")
	if uploadType == "" {
		response.BadRequest(c, "type is required")
		return
	}

	var duration float64
	if raw := c.PostForm("duration_seconds"); raw != "" {
		duration, _ = strconv.ParseFloat(raw, 64)
	}

	file, err := fileHeader.Open()
	if err != nil {
		l.Error().Err(err).Msg("open uploaded file failed")
		response.InternalError(c, "failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.uploadService.Upload(ctx, &service.UploadRequest{
		Filename:        fileHeader.Filename,
		Size:            fileHeader.Size,
		ContentType:     fileHeader.Header.Get("Content-Type"),
		Type:            uploadType,
		Folder:          c.PostForm("folder"),
		DurationSeconds: duration,
		Reader:          file,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidType):
			response.BadRequest(c, "invalid upload type")
		case errors.Is(err, service.ErrInvalidExtension):
			response.BadRequest(c, "file extension not allowed for this type")
		case errors.Is(err, service.ErrFileTooLarge):
			response.BadRequest(c, "file exceeds the size limit for this type")
		default:
			l.Error().Err(err).Str("filename", fileHeader.Filename).Msg("upload failed")
			response.InternalError(c, "failed to store file")
		}
		return
	}

	response.Created(c, result)
}
