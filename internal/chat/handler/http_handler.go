package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fidel-otieno2/KinKeep.app/internal/chat/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/chat/service"
	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
	"github.com/fidel-otieno2/KinKeep.app/pkg/middleware"
	"github.com/fidel-otieno2/KinKeep.app/pkg/response"
)

const (
	defaultMessageLimit = 50
	maxMessageLimit     = 100
)

// Handler handles HTTP requests for conversations and messages.
type Handler struct {
	chatService    service.ChatService
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler creates a new HTTP handler.
func NewHandler(chatService service.ChatService, authMiddleware *middleware.AuthMiddleware) *Handler {
	return &Handler{
		chatService:    chatService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers conversation routes.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	conversations := api.Group("/conversations")
	conversations.Use(h.authMiddleware.RequireAuth())
	{
		conversations.GET("", h.ListConversations)
		conversations.POST("", h.CreateConversation)
		conversations.GET("/:id/messages", h.ListMessages)
		conversations.POST("/:id/messages", h.SendMessage)
	}

	search := api.Group("/search")
	search.Use(h.authMiddleware.RequireAuth())
	{
		search.GET("/users", h.SearchUsers)
	}
}

// ListConversations lists the caller's conversations, most recent activity
// first.
func (h *Handler) ListConversations(c *gin.Context) {
	ctx := c.Request.Context()
	summaries, err := h.chatService.ListConversations(ctx, middleware.GetUserID(c))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("list conversations failed")
		response.InternalError(c, "failed to list conversations")
		return
	}
	response.Success(c, summaries)
}

// CreateConversation starts a direct or group conversation. Creating a
// direct conversation that already exists returns the existing one.
func (h *Handler) CreateConversation(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid create conversation request")
		response.BadRequest(c, err.Error())
		return
	}

	summary, err := h.chatService.CreateConversation(ctx, middleware.GetUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoParticipants):
			response.BadRequest(c, "conversation needs at least one other participant")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "user not found")
		default:
			l.Error().Err(err).Msg("create conversation failed")
			response.InternalError(c, "failed to create conversation")
		}
		return
	}

	response.Created(c, summary)
}

// ListMessages returns one page of the conversation history and marks it
// read for the caller.
func (h *Handler) ListMessages(c *gin.Context) {
	ctx := c.Request.Context()
	conversationID, ok := pathConversationID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)

	messages, err := h.chatService.ListMessages(ctx, middleware.GetUserID(c), conversationID, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrNotParticipant) {
			response.Forbidden(c, "not a participant of this conversation")
			return
		}
		log.Ctx(ctx).Error().Err(err).Uint("conversation_id", conversationID).Msg("list messages failed")
		response.InternalError(c, "failed to list messages")
		return
	}

	response.Success(c, messages)
}

// SendMessage posts a message into the conversation.
func (h *Handler) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	conversationID, ok := pathConversationID(c)
	if !ok {
		return
	}
	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid send message request")
		response.BadRequest(c, err.Error())
		return
	}

	message, err := h.chatService.SendMessage(ctx, middleware.GetUserID(c), conversationID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotParticipant):
			response.Forbidden(c, "not a participant of this conversation")
		case errors.Is(err, service.ErrEmptyMessage):
			response.BadRequest(c, "message needs content or media")
		default:
			l.Error().Err(err).Uint("conversation_id", conversationID).Msg("send message failed")
			response.InternalError(c, "failed to send message")
		}
		return
	}

	response.Created(c, message)
}

// SearchUsers finds users by username substring for starting conversations.
func (h *Handler) SearchUsers(c *gin.Context) {
	ctx := c.Request.Context()
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "q is required")
		return
	}

	users, err := h.chatService.SearchUsers(ctx, middleware.GetUserID(c), query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("search users failed")
		response.InternalError(c, "failed to search users")
		return
	}

	response.Success(c, users)
}

func pathConversationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid conversation id")
		return 0, false
	}
	return uint(id), true
}

func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultMessageLimit)))
	if err != nil || limit < 1 {
		limit = defaultMessageLimit
	}
	if limit > maxMessageLimit {
		limit = maxMessageLimit
	}
	return page, limit
}
