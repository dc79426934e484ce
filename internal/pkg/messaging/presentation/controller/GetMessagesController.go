package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zennajjames/TheVillage/internal/auth"
	"github.com/zennajjames/TheVillage/internal/pkg/messaging/application/usecase"
)

// GetMessagesController handles fetching a conversation's history (one controller per endpoint).
// Fetching doubles as the read acknowledgment: messages not sent by the
// requester are marked read as a side effect.
type GetMessagesController struct {
	UC *usecase.FetchMessagesUseCase
}

func NewGetMessagesController(uc *usecase.FetchMessagesUseCase) *GetMessagesController {
	return &GetMessagesController{UC: uc}
}

func (h *GetMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("id")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, usecase.FetchMessagesInput{
			RequesterID:    auth.UserID(c),
			ConversationID: conversationID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, messageJSON(m))
		}
		c.JSON(http.StatusOK, out)
	}
}
