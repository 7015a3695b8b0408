package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quitmate/quitmate-backend/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (ch *ChatHandler) SendMessage(c *gin.Context) {
	var body struct {
		SenderID    uuid.UUID `json:"sender_id"`
		RecipientID uuid.UUID `json:"recipient_id"`
		Body        string    `json:"body"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	message, err := ch.chatService.SendMessage(c.Request.Context(), body.SenderID, body.RecipientID, body.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": message})
}

func (ch *ChatHandler) ListConversation(c *gin.Context) {
	userA, ok := queryUUID(c, "user_a")
	if !ok {
		return
	}
	userB, ok := queryUUID(c, "user_b")
	if !ok {
		return
	}
	messages, err := ch.chatService.ListConversation(c.Request.Context(), userA, userB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (ch *ChatHandler) MarkConversationRead(c *gin.Context) {
	var body struct {
		ReaderID uuid.UUID `json:"reader_id"`
		SenderID uuid.UUID `json:"sender_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ch.chatService.MarkConversationRead(c.Request.Context(), body.ReaderID, body.SenderID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}
