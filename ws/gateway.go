package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"openchat/contract"
	"openchat/domain"
	"openchat/domain/event"
	"openchat/services"
)

// TokenVerifier authenticates the handshake token. The connection is
// refused when verification fails; a client-asserted user id is never
// accepted.
type TokenVerifier interface {
	Verify(token string) (domain.UserID, error)
}

// Gateway upgrades connections, authenticates them, registers sessions and
// dispatches inbound frames to the services. It holds no per-connection
// state itself; the Registry does.
type Gateway struct {
	log      *slog.Logger
	registry contract.IRegistry
	chats    services.IChatService
	calls    contract.ICallBroker
	tokens   TokenVerifier

	upgrader   websocket.Upgrader
	sendBuffer int
	maxMessage int64
}

func NewGateway(
	log *slog.Logger,
	registry contract.IRegistry,
	chats services.IChatService,
	calls contract.ICallBroker,
	tokens TokenVerifier,
	sendBuffer int,
	maxMessage int64,
) *Gateway {
	return &Gateway{
		log:      log,
		registry: registry,
		chats:    chats,
		calls:    calls,
		tokens:   tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sendBuffer: sendBuffer,
		maxMessage: maxMessage,
	}
}

// ServeHTTP is the /ws endpoint.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "websocket endpoint only accepts GET", http.StatusMethodNotAllowed)
		return
	}

	token := r.URL.Query().Get("token")
	userID, err := g.tokens.Verify(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(g.maxMessage)

	client := NewClient(conn, g.log, g.sendBuffer)
	sessionID := g.registry.Register(userID, client)
	g.log.Info("session registered", "user_id", string(userID), "session_id", sessionID)

	go client.writePump()
	_ = client.Consume(r.Context(), event.Connected{SessionID: sessionID, UserID: userID})

	g.readPump(client, sessionID, userID)
}

// readPump parses inbound frames until the connection dies, then tears the
// session down: deregistration removes all subscriptions atomically. Call
// pairs involving this user are ended only when this was the user's last
// session, so an idle second device dropping does not kill a call the other
// device is on; only the affected peer hears about the teardown.
func (g *Gateway) readPump(client *Client, sessionID string, userID domain.UserID) {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		g.registry.Deregister(sessionID)
		client.close()
		if len(g.registry.SessionsOf(userID)) == 0 {
			g.calls.EndCallsOf(context.Background(), userID)
		}
		g.log.Info("session deregistered", "user_id", string(userID), "session_id", sessionID)
	}()

	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.log.Debug("unexpected close", "session_id", sessionID, "error", err)
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			client.sendError("malformed frame")
			continue
		}
		g.dispatch(ctx, client, sessionID, userID, frame)
	}
}

func (g *Gateway) dispatch(ctx context.Context, client *Client, sessionID string, userID domain.UserID, frame Frame) {
	switch frame.Event {
	case evtJoinChat:
		var p roomPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.ChatID == "" {
			client.sendError("join-chat requires chatId")
			return
		}
		if err := g.registry.JoinRoom(sessionID, domain.ChatID(p.ChatID)); err != nil {
			client.sendError(err.Error())
		}

	case evtLeaveChat:
		var p roomPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.ChatID == "" {
			client.sendError("leave-chat requires chatId")
			return
		}
		if err := g.registry.LeaveRoom(sessionID, domain.ChatID(p.ChatID)); err != nil {
			client.sendError(err.Error())
		}

	case evtSendMessage:
		var p sendMessagePayload
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.ChatID == "" {
			client.sendError("send-message requires chatId and content")
			return
		}
		if _, err := g.chats.SendMessage(ctx, userID, domain.ChatID(p.ChatID), p.Content); err != nil {
			client.sendError(err.Error())
		}

	case evtTyping:
		var p roomPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.ChatID == "" {
			return
		}
		g.chats.Typing(ctx, userID, domain.ChatID(p.ChatID))

	case evtStopTyping:
		var p roomPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.ChatID == "" {
			return
		}
		g.chats.StopTyping(ctx, userID, domain.ChatID(p.ChatID))

	case evtCallUser:
		var p callPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.ToUserID == "" {
			client.sendError("call-user requires toUserId")
			return
		}
		if err := g.calls.CallUser(ctx, userID, domain.UserID(p.ToUserID), p.Payload); err != nil {
			client.sendError(err.Error())
		}

	case evtAnswerCall:
		var p callPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.ToUserID == "" {
			client.sendError("answer-call requires toUserId")
			return
		}
		if err := g.calls.AnswerCall(ctx, userID, domain.UserID(p.ToUserID), p.Payload); err != nil {
			client.sendError(err.Error())
		}

	default:
		client.sendError("unknown event: " + frame.Event)
	}
}
