package websocket

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"chat-rooms-backend/internal/env"
	"chat-rooms-backend/internal/hub"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const announcementChannel = "chat.announcements"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewRedisClient builds the chat Redis client from the environment, or nil
// when no Redis is configured. Everything that touches Redis is nil-safe.
func NewRedisClient() *redis.Client {
	addr := env.Get(env.ChatRedisURL)
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: env.Get(env.ChatRedisPass),
		DB:       0,
	})
}

// Handler owns the socket lifecycle: bind, command dispatch, disconnect.
type Handler struct {
	hub         *hub.Hub
	gateway     *ClientGateway
	redisClient *redis.Client
}

func NewHandler(h *hub.Hub, gateway *ClientGateway, redisClient *redis.Client) *Handler {
	registerRoomsGauge(h.RoomCount)
	return &Handler{
		hub:         h,
		gateway:     gateway,
		redisClient: redisClient,
	}
}

// Connect upgrades the request for an identity the caller already verified
// and binds it. The session is registered with the gateway before the hub so
// the bind acknowledgment has somewhere to land.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request, user hub.User) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("websocket upgrade: %w", err)
	}

	cl := newWSClient(conn, uuid.NewString())
	h.gateway.add(cl)
	h.hub.Register(cl.connID, user)

	go cl.keepAlive()
	go cl.writeEvents()
	go cl.readCommands(h)
	return nil
}

func (h *Handler) dispatch(connID string, cmd Command) {
	var err error
	switch cmd.Action {
	case ActionCreateRoom:
		_, err = h.hub.CreateRoom(connID, cmd.Name)
	case ActionJoinRoom:
		err = h.hub.JoinRoom(connID, cmd.RoomID)
	case ActionSendMessage:
		err = h.hub.SendMessage(connID, cmd.Text)
	default:
		h.sendError(connID, "Unknown action")
		return
	}

	if err != nil {
		h.sendError(connID, err.Error())
	}
}

func (h *Handler) sendError(connID, message string) {
	h.gateway.Unicast(connID, hub.Event{
		Name: hub.EventError,
		Data: hub.ErrorPayload{Message: message},
	})
}

func (h *Handler) dropConnection(cl *WSClient) {
	h.gateway.remove(cl.connID)
	h.hub.Disconnect(cl.connID)
}

// RunAnnouncements relays operator messages published on the announcement
// channel to every connected client. Blocks until the context is done or
// the subscription closes.
func (h *Handler) RunAnnouncements(ctx context.Context) {
	if h.redisClient == nil {
		return
	}

	subscriber := h.redisClient.Subscribe(ctx, announcementChannel)
	defer subscriber.Close()

	ch := subscriber.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				log.Printf("announcement subscription closed")
				return
			}
			h.gateway.Broadcast(hub.Event{
				Name: EventAnnouncement,
				Data: AnnouncementPayload{Text: msg.Payload},
			})
		}
	}
}
