package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/zennajjames/TheVillage/internal/pkg/messaging/application/usecase"
)

func messageJSON(v usecase.MessageView) gin.H {
	h := gin.H{
		"id":             v.ID,
		"conversationId": v.ConversationID,
		"senderId":       v.SenderID,
		"content":        v.Content,
		"isRead":         v.IsRead,
		"createdAt":      v.CreatedAt,
	}
	if v.Sender != nil {
		h["sender"] = v.Sender
	}
	return h
}
