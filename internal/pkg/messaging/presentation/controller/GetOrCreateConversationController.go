package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zennajjames/TheVillage/internal/auth"
	"github.com/zennajjames/TheVillage/internal/pkg/messaging/application/usecase"
)

// GetOrCreateConversationController handles opening a thread with another user (one controller per endpoint)
type GetOrCreateConversationController struct {
	UC *usecase.GetOrCreateConversationUseCase
}

func NewGetOrCreateConversationController(uc *usecase.GetOrCreateConversationUseCase) *GetOrCreateConversationController {
	return &GetOrCreateConversationController{UC: uc}
}

func (h *GetOrCreateConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		// :id is the other user's identity on this route.
		otherUserID := c.Param("id")
		if otherUserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "otherUserId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		conv, created, err := h.UC.Execute(ctx, usecase.GetOrCreateConversationInput{
			RequesterID: auth.UserID(c),
			OtherUserID: otherUserID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, conv)
	}
}
