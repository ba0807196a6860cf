package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vietanh2810/occurrence-registration-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	clientBuffer   = 16
	broadcastQueue = 256
)

var ErrFeedBackpressure = errors.New("feed broadcast queue is full")

// FeedMessage is what feed subscribers receive. It only says that something
// changed, clients refetch their reservations and participants.
type FeedMessage struct {
	ID         string           `json:"id"`
	Kind       domain.EventKind `json:"kind"`
	EventID    uint             `json:"event_id"`
	OccurredAt time.Time        `json:"occurred_at"`
}

type feedClient struct {
	conn    *websocket.Conn
	send    chan []byte
	eventID uint
}

type feedBroadcast struct {
	eventID uint
	payload []byte
}

// FeedHub fans registration events out to the websocket clients watching
// the event they belong to.
type FeedHub struct {
	upgrader     websocket.Upgrader
	clients      map[uint]map[*feedClient]struct{}
	clientsMutex sync.RWMutex
	broadcast    chan feedBroadcast
	register     chan *feedClient
	unregister   chan *feedClient
	done         chan struct{}
	stopOnce     sync.Once
}

func NewFeedHub(allowedOrigins []string) *FeedHub {
	return &FeedHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		clients:    make(map[uint]map[*feedClient]struct{}),
		broadcast:  make(chan feedBroadcast, broadcastQueue),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
		done:       make(chan struct{}),
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}

		return slices.Contains(allowed, origin)
	}
}

// Run serves registrations and broadcasts until Stop is called.
func (h *FeedHub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAll()
			return
		case client := <-h.register:
			h.clientsMutex.Lock()
			if h.clients[client.eventID] == nil {
				h.clients[client.eventID] = make(map[*feedClient]struct{})
			}
			h.clients[client.eventID][client] = struct{}{}
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			h.remove(client)
			h.clientsMutex.Unlock()
		case msg := <-h.broadcast:
			h.clientsMutex.Lock()
			for client := range h.clients[msg.eventID] {
				select {
				case client.send <- msg.payload:
				default:
					// Slow reader, drop it. It reconnects and refetches.
					h.remove(client)
				}
			}
			h.clientsMutex.Unlock()
		}
	}
}

func (h *FeedHub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// remove must be called with clientsMutex held.
func (h *FeedHub) remove(client *feedClient) {
	watchers, ok := h.clients[client.eventID]
	if !ok {
		return
	}
	if _, ok := watchers[client]; !ok {
		return
	}

	delete(watchers, client)
	close(client.send)
	if len(watchers) == 0 {
		delete(h.clients, client.eventID)
	}
}

func (h *FeedHub) closeAll() {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()

	for _, watchers := range h.clients {
		for client := range watchers {
			h.remove(client)
		}
	}
}

func (h *FeedHub) clientCount(eventID uint) int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()

	return len(h.clients[eventID])
}

// Deliver is the event bus listener of the hub. It never blocks the
// publishing request: when the queue is full the event is dropped.
func (h *FeedHub) Deliver(_ context.Context, env domain.Envelope) error {
	eventID := env.Payload.AggregateID()

	payload, err := json.Marshal(FeedMessage{
		ID:         env.ID,
		Kind:       env.Kind,
		EventID:    eventID,
		OccurredAt: env.OccurredAt,
	})
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- feedBroadcast{eventID: eventID, payload: payload}:
		return nil
	default:
		return ErrFeedBackpressure
	}
}

// HandleFeed godoc
// @Summary      Registration feed of an event
// @Description  Websocket pushing a message every time a registration of the event is created, updated or cancelled.
// @Description  Browsers may pass the bearer token in the access_token query parameter.
// @Tags         events
// @Produce      json
// @Param        eventID  path      int     true  "event ID"
// @Success      101      {object}  FeedMessage
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Router       /events/{eventID}/feed [get]
// @Security BearerAuth
func (h *FeedHub) HandleFeed(ctx *gin.Context) {
	if _, respErr := identityFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := paramID(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	// Upgrade writes its own error response.
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Debug("feed upgrade failed", zap.Error(err))
		return
	}

	client := &feedClient{
		conn:    conn,
		send:    make(chan []byte, clientBuffer),
		eventID: eventID,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(h)
}

func (c *feedClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only consumes control frames. The feed is one way.
func (c *feedClient) readPump(h *FeedHub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("feed client closed", zap.Uint("event_id", c.eventID), zap.Error(err))
			}
			return
		}
	}
}
