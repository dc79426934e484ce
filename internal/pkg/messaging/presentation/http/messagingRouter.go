package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/zennajjames/TheVillage/internal/auth"
	"github.com/zennajjames/TheVillage/internal/infrastructure/realtime"
	"github.com/zennajjames/TheVillage/internal/pkg/messaging/application/usecase"
	"github.com/zennajjames/TheVillage/internal/pkg/messaging/presentation/controller"
)

// Dependencies bundles everything the messaging routes need.
type Dependencies struct {
	Verifier *auth.TokenVerifier
	Hub      *realtime.Hub
	Log      *logrus.Logger

	ListConversations *usecase.ListConversationsUseCase
	GetOrCreate       *usecase.GetOrCreateConversationUseCase
	FetchMessages     *usecase.FetchMessagesUseCase
	SendMessage       *usecase.SendMessageUseCase
	JoinConversation  *usecase.JoinConversationUseCase
}

// RegisterRoutes mounts the messaging endpoints under the given router group.
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, deps Dependencies) {
	listCtl := controller.NewListConversationsController(deps.ListConversations)
	getOrCreateCtl := controller.NewGetOrCreateConversationController(deps.GetOrCreate)
	getMsgCtl := controller.NewGetMessagesController(deps.FetchMessages)
	sendMsgCtl := controller.NewSendMessageController(deps.SendMessage)
	socketCtl := controller.NewSocketController(deps.Hub, deps.Verifier, deps.JoinConversation, deps.Log)

	messages := g.Group("/messages")

	// The websocket endpoint authenticates during its own handshake so the
	// token can also arrive as a query parameter.
	messages.GET("/ws", socketCtl.Handle())

	authed := messages.Group("", auth.Middleware(deps.Verifier))

	// GET  /messages/conversations                -> list summaries
	authed.GET("/conversations", listCtl.Handle())

	// GET  /messages/conversations/:id            -> get-or-create with user :id
	authed.GET("/conversations/:id", getOrCreateCtl.Handle())

	// GET  /messages/conversations/:id/messages   -> history (marks read)
	authed.GET("/conversations/:id/messages", getMsgCtl.Handle())

	// POST /messages/conversations/:id/messages   -> send a message
	authed.POST("/conversations/:id/messages", sendMsgCtl.Handle())
}
