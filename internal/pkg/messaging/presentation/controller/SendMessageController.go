package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zennajjames/TheVillage/internal/auth"
	"github.com/zennajjames/TheVillage/internal/pkg/messaging/application/usecase"
)

// SendMessageController handles the send-message endpoint (one controller per endpoint)
type SendMessageController struct {
	UC *usecase.SendMessageUseCase
}

func NewSendMessageController(uc *usecase.SendMessageUseCase) *SendMessageController {
	return &SendMessageController{UC: uc}
}

// sendMessageRequest is the DTO for the HTTP request body
type sendMessageRequest struct {
	Content string `json:"content"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("id")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msg, err := h.UC.Execute(ctx, usecase.SendMessageInput{
			RequesterID:    auth.UserID(c),
			ConversationID: conversationID,
			Content:        req.Content,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, messageJSON(*msg))
	}
}
