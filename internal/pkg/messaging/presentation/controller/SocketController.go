package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/zennajjames/TheVillage/internal/auth"
	"github.com/zennajjames/TheVillage/internal/infrastructure/realtime"
	messaging "github.com/zennajjames/TheVillage/internal/pkg/messaging/application/domain"
	"github.com/zennajjames/TheVillage/internal/pkg/messaging/application/usecase"
)

// SocketController handles the websocket endpoint for realtime messaging
// traffic. The socket is a relay channel only: messages are persisted via
// REST first, then the client emits send_message to fan the payload out to
// connected peers. Relay failures never touch durable state.
type SocketController struct {
	hub             *realtime.Hub
	verifier        *auth.TokenVerifier
	joinUC          *usecase.JoinConversationUseCase
	log             *logrus.Logger
	inflightTimeout time.Duration
}

func NewSocketController(hub *realtime.Hub, verifier *auth.TokenVerifier, joinUC *usecase.JoinConversationUseCase, log *logrus.Logger) *SocketController {
	return &SocketController{
		hub:             hub,
		verifier:        verifier,
		joinUC:          joinUC,
		log:             log,
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The bearer token is the access control; origin is not.
		return true
	},
}

type inboundFrame struct {
	Type           string          `json:"type"`
	ConversationID string          `json:"conversationId,omitempty"`
	Message        json.RawMessage `json:"message,omitempty"`
	IsTyping       bool            `json:"isTyping,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type ackFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversationId,omitempty"`
}

type newMessageFrame struct {
	Type           string          `json:"type"`
	ConversationID string          `json:"conversationId"`
	Message        json.RawMessage `json:"message"`
}

type typingFrame struct {
	Type     string `json:"type"`
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

const defaultReadTimeout = 60 * time.Second

// Handle authenticates the handshake, upgrades to websocket and processes
// frames until the client disconnects. A bad credential is rejected before
// the upgrade; no room membership is ever established for it.
func (ctl *SocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := ctl.verifier.Verify(auth.TokenFromRequest(c.Request))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response.
			return
		}

		conn := realtime.NewConnection(userID, ws)
		ctl.hub.Attach(conn)
		conn.Start()
		defer func() {
			ctl.hub.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		ctl.sendAck(conn, ackFrame{Type: "connected"})
		ctl.log.WithField("user_id", userID).Debug("socket connected")

		// Rooms this session has joined, owned by the read loop. Relay and
		// typing frames are only honored for rooms whose membership was
		// verified on join.
		joined := make(map[string]struct{})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				ctl.log.WithField("user_id", userID).WithError(err).Debug("socket read ended")
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "join_conversation":
				ctl.handleJoin(c, conn, frame, joined)
			case "leave_conversation":
				ctl.handleLeave(conn, frame, joined)
			case "send_message":
				ctl.handleRelayMessage(conn, frame, joined)
			case "typing":
				ctl.handleTyping(conn, frame, joined)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *SocketController) handleJoin(c *gin.Context, conn *realtime.Connection, frame inboundFrame, joined map[string]struct{}) {
	if frame.ConversationID == "" {
		ctl.replyError(conn, "bad_request", "conversationId is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	err := ctl.joinUC.Execute(ctx, usecase.JoinConversationInput{
		ConversationID: frame.ConversationID,
		UserID:         conn.UserID,
	})
	if err != nil {
		if errors.Is(err, messaging.ErrNotParticipant) {
			ctl.replyError(conn, "forbidden", "user is not a participant in this conversation")
		} else {
			ctl.replyError(conn, "internal_error", "unexpected persistence error")
		}
		return
	}

	ctl.hub.Join(frame.ConversationID, conn)
	joined[frame.ConversationID] = struct{}{}
	ctl.sendAck(conn, ackFrame{Type: "joined", ConversationID: frame.ConversationID})
}

func (ctl *SocketController) handleLeave(conn *realtime.Connection, frame inboundFrame, joined map[string]struct{}) {
	if frame.ConversationID == "" {
		ctl.replyError(conn, "bad_request", "conversationId is required")
		return
	}
	ctl.hub.Leave(frame.ConversationID, conn)
	delete(joined, frame.ConversationID)
	ctl.sendAck(conn, ackFrame{Type: "left", ConversationID: frame.ConversationID})
}

// handleRelayMessage forwards an already-persisted message to the other room
// members. The payload is relayed verbatim; the REST response is the durable
// record and peers must deduplicate by message id. Only rooms this session
// joined (and so passed the membership check) may be relayed into.
func (ctl *SocketController) handleRelayMessage(conn *realtime.Connection, frame inboundFrame, joined map[string]struct{}) {
	if frame.ConversationID == "" || len(frame.Message) == 0 {
		ctl.replyError(conn, "bad_request", "conversationId and message are required")
		return
	}
	if _, ok := joined[frame.ConversationID]; !ok {
		ctl.replyError(conn, "forbidden", "join the conversation before sending")
		return
	}

	payload, err := json.Marshal(newMessageFrame{
		Type:           "new_message",
		ConversationID: frame.ConversationID,
		Message:        frame.Message,
	})
	if err != nil {
		ctl.replyError(conn, "internal_error", "failed to encode message")
		return
	}

	ctl.hub.Broadcast(frame.ConversationID, payload, conn.UserID)
}

func (ctl *SocketController) handleTyping(conn *realtime.Connection, frame inboundFrame, joined map[string]struct{}) {
	if frame.ConversationID == "" {
		return
	}
	if _, ok := joined[frame.ConversationID]; !ok {
		return
	}

	payload, err := json.Marshal(typingFrame{
		Type:     "user_typing",
		UserID:   conn.UserID,
		IsTyping: frame.IsTyping,
	})
	if err != nil {
		return
	}

	// Transient state: no ack, no persistence, no delivery guarantee.
	ctl.hub.Broadcast(frame.ConversationID, payload, conn.UserID)
}

func (ctl *SocketController) sendAck(conn *realtime.Connection, ack ackFrame) {
	if payload, err := json.Marshal(ack); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *SocketController) replyError(conn *realtime.Connection, code string, message string) {
	frame := errorFrame{Type: "error", Code: code, Error: message}
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}
