package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rental-hub/internal/service"
)

// ConversationHandler expone el directorio de conversaciones y sus mensajes.
type ConversationHandler struct {
	logger   *zap.Logger
	convServ *service.ConversationService
	msgServ  *service.MessageService
}

func NewConversationHandler(logger *zap.Logger, convServ *service.ConversationService, msgServ *service.MessageService) *ConversationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversationHandler{
		logger:   logger,
		convServ: convServ,
		msgServ:  msgServ,
	}
}

// OpenConversation maneja POST /listings/:id/conversation. Responde 201 si la
// conversación se creó y 200 si ya existía.
func (h *ConversationHandler) OpenConversation(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	conv, created, err := h.convServ.GetOrCreate(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeServiceError(c, h.logger, "open conversation", err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"conversation": conv, "created": created})
}

// ListConversations maneja GET /conversations.
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	summaries, err := h.convServ.List(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, h.logger, "list conversations", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

// GetConversation maneja GET /conversations/:id.
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	conv, err := h.convServ.Get(c.Request.Context(), conversationID(c), userID)
	if err != nil {
		writeServiceError(c, h.logger, "get conversation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": conv})
}

// ListMessages maneja GET /conversations/:id/messages.
func (h *ConversationHandler) ListMessages(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	messages, err := h.msgServ.ListFor(c.Request.Context(), conversationID(c), userID)
	if err != nil {
		writeServiceError(c, h.logger, "list messages", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage maneja POST /conversations/:id/messages.
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "send message", err)
		return
	}
	msg, err := h.msgServ.Send(c.Request.Context(), conversationID(c), userID, req.Content)
	if err != nil {
		writeServiceError(c, h.logger, "send message", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// conversationID devuelve 0 si el parámetro no es numérico; el servicio lo
// trata como inexistente.
func conversationID(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
