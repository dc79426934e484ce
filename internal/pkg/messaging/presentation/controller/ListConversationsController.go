package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zennajjames/TheVillage/internal/auth"
	"github.com/zennajjames/TheVillage/internal/pkg/messaging/application/usecase"
)

// ListConversationsController handles the conversation-list endpoint (one controller per endpoint)
type ListConversationsController struct {
	UC *usecase.ListConversationsUseCase
}

func NewListConversationsController(uc *usecase.ListConversationsUseCase) *ListConversationsController {
	return &ListConversationsController{UC: uc}
}

func (h *ListConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		summaries, err := h.UC.Execute(ctx, usecase.ListConversationsInput{
			RequesterID: auth.UserID(c),
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, summaries)
	}
}
