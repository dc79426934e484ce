package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	messaging "github.com/zennajjames/TheVillage/internal/pkg/messaging/application/domain"
	"github.com/zennajjames/TheVillage/internal/pkg/messaging/application/usecase"
)

// respondError maps use case failures onto the REST error taxonomy. A missing
// conversation and a requester outside it produce the same 404 so handlers
// never leak whether a conversation exists.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, messaging.ErrSelfConversation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot message yourself"})
	case errors.Is(err, messaging.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content required"})
	case errors.Is(err, messaging.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
	case errors.Is(err, usecase.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
