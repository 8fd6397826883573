package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/nmehta6/shopassist/internal/api/middleware"
	"github.com/nmehta6/shopassist/internal/api/response"
	"github.com/nmehta6/shopassist/internal/assistant"
	"github.com/nmehta6/shopassist/internal/bus"
	"github.com/nmehta6/shopassist/internal/domain"
	"github.com/nmehta6/shopassist/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsMaxMessage = 4096
)

// Client frame types, in addition to the bus event types forwarded as-is
const (
	wsFrameJoin    = "join"
	wsFrameMessage = "message"
)

// WSHandler upgrades chat clients to a websocket and bridges them onto the
// conversation event bus.
type WSHandler struct {
	chatService *service.ChatService
	events      bus.Bus
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new websocket handler
func NewWSHandler(chatService *service.ChatService, events bus.Bus) *WSHandler {
	return &WSHandler{
		chatService: chatService,
		events:      events,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type wsFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id,omitempty"`
	Message        string `json:"message,omitempty"`
	Payload        any    `json:"payload,omitempty"`
}

// wsSession is one connected client. Writes are serialized through mu; the
// bus forwarder and the read loop both produce frames.
type wsSession struct {
	conn   *websocket.Conn
	userID uuid.UUID

	mu     sync.Mutex
	joined uuid.UUID
	cancel func()
}

// Serve handles one websocket connection
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	sess := &wsSession{conn: conn, userID: userID}
	defer sess.close()

	conn.SetReadLimit(wsMaxMessage)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	stop := make(chan struct{})
	defer close(stop)
	go sess.pingLoop(stop)

	// The request context is cancelled by the timeout middleware long before
	// the socket closes, so pipeline calls get a fresh one.
	ctx := context.Background()

	for {
		var frame wsFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("user_id", userID.String()).Msg("websocket closed")
			}
			return
		}

		switch frame.Type {
		case wsFrameJoin:
			h.join(ctx, sess, frame.ConversationID)
		case wsFrameMessage:
			h.message(ctx, sess, frame)
		default:
			sess.send(wsFrame{Type: bus.EventError, Payload: "unknown frame type"})
		}
	}
}

// join subscribes the client to a conversation's events after checking the
// conversation belongs to them. Joining again replaces the subscription.
func (h *WSHandler) join(ctx context.Context, sess *wsSession, conversationID string) {
	id, err := uuid.Parse(conversationID)
	if err != nil {
		sess.send(wsFrame{Type: bus.EventError, Payload: "invalid conversation ID"})
		return
	}

	if _, err := h.chatService.GetConversation(ctx, sess.userID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			sess.send(wsFrame{Type: bus.EventError, Payload: "conversation not found"})
			return
		}
		sess.send(wsFrame{Type: bus.EventError, Payload: "failed to join conversation"})
		return
	}

	events, cancel := h.events.Subscribe(ctx, id.String())
	sess.setSubscription(id, cancel)

	go func() {
		for event := range events {
			sess.send(wsFrame{Type: event.Type, ConversationID: id.String(), Payload: event.Payload})
		}
	}()
}

// message runs an inbound chat message through the pipeline. Replies reach
// joined subscribers via the bus; a client that hasn't joined the target
// conversation gets the reply directly.
func (h *WSHandler) message(ctx context.Context, sess *wsSession, frame wsFrame) {
	conversationID := uuid.Nil
	if frame.ConversationID != "" {
		parsed, err := uuid.Parse(frame.ConversationID)
		if err != nil {
			sess.send(wsFrame{Type: bus.EventError, Payload: "invalid conversation ID"})
			return
		}
		conversationID = parsed
	}

	reply, err := h.chatService.SendMessage(ctx, sess.userID, conversationID, frame.Message)
	if err != nil {
		var rateErr *assistant.RateLimitError
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			sess.send(wsFrame{Type: bus.EventError, Payload: "message is required"})
		case errors.As(err, &rateErr):
			sess.send(wsFrame{Type: bus.EventError, Payload: rateErr.Error()})
		case errors.Is(err, domain.ErrNotFound):
			sess.send(wsFrame{Type: bus.EventError, Payload: "conversation not found"})
		default:
			sess.send(wsFrame{Type: bus.EventError, Payload: "failed to process message"})
		}
		return
	}

	if sess.subscribedTo() != reply.Conversation.ID {
		sess.send(wsFrame{
			Type:           bus.EventMessage,
			ConversationID: reply.Conversation.ID.String(),
			Payload:        reply,
		})
	}
}

func (s *wsSession) send(frame wsFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Debug().Err(err).Msg("websocket write failed")
	}
}

func (s *wsSession) setSubscription(id uuid.UUID, cancel func()) {
	s.mu.Lock()
	prev := s.cancel
	s.joined = id
	s.cancel = cancel
	s.mu.Unlock()

	if prev != nil {
		prev()
	}
}

func (s *wsSession) subscribedTo() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.joined
}

func (s *wsSession) pingLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			err := s.conn.WriteMessage(websocket.PingMessage, nil)
			s.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (s *wsSession) close() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.conn.Close()
}
