// Package hub owns the room and connection directories of the chat server.
// Every mutation of shared chat state goes through a Hub operation; the
// transport layer only binds identities, feeds commands in, and delivers the
// events the hub fans out.
package hub

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Hub serializes all directory mutation behind one lock. That single
// serialization point is what gives every room a total order of message and
// membership events: events are emitted in lock order and the gateway keeps
// per-connection delivery order.
type Hub struct {
	mu      sync.Mutex
	rooms   map[string]*Room
	conns   map[string]*Connection
	gateway Gateway

	now   func() time.Time
	newID func() string
}

func New(gateway Gateway) *Hub {
	return NewWithClock(gateway, time.Now, uuid.NewString)
}

// NewWithClock injects the clock and id generator. Tests pin both.
func NewWithClock(gateway Gateway, now func() time.Time, newID func() string) *Hub {
	if gateway == nil {
		gateway = NopGateway{}
	}
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &Hub{
		rooms:   make(map[string]*Room),
		conns:   make(map[string]*Connection),
		gateway: gateway,
		now:     now,
		newID:   newID,
	}
}

// Register creates a connection for an already verified identity and
// acknowledges the bind. The transport owns the connection id and refuses
// unverified sessions before registration ever happens.
func (h *Hub) Register(connID string, user User) *Connection {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn := &Connection{
		ID:   connID,
		User: user,
	}
	h.conns[conn.ID] = conn

	h.gateway.Unicast(conn.ID, Event{Name: EventLoginSuccess, Data: user})
	return conn
}

// CreateRoom allocates a room with a fresh random id. The creator is
// acknowledged directly and does not join; everyone gets the new room list.
func (h *Hub) CreateRoom(connID, name string) (RoomCreatedPayload, error) {
	name = strings.TrimSpace(name)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[connID]; !ok {
		return RoomCreatedPayload{}, newError(ErrorCodeNotAuthenticated, "User not authenticated")
	}
	if name == "" {
		return RoomCreatedPayload{}, newError(ErrorCodeValidation, "Room name is required")
	}

	room := &Room{
		ID:        h.newID(),
		Name:      name,
		Messages:  make([]Message, 0),
		Members:   make(map[string]struct{}),
		CreatedAt: h.now(),
	}
	h.rooms[room.ID] = room

	payload := RoomCreatedPayload{ID: room.ID, Name: room.Name}
	h.gateway.Unicast(connID, Event{Name: EventRoomCreated, Data: payload})
	h.broadcastRoomListLocked()
	return payload, nil
}

// JoinRoom moves a connection into a room, leaving its previous room first.
// The leave notice to the old room is emitted before any join event, so no
// observer ever sees the connection in two rooms.
func (h *Hub) JoinRoom(connID, roomID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok {
		return newError(ErrorCodeNotAuthenticated, "User not authenticated")
	}
	room, ok := h.rooms[roomID]
	if !ok {
		return newError(ErrorCodeRoomNotFound, "Room not found")
	}

	h.leaveCurrentRoomLocked(conn)

	room.Members[conn.ID] = struct{}{}
	conn.RoomID = room.ID

	h.gateway.Unicast(conn.ID, Event{Name: EventRoomJoined, Data: RoomJoinedPayload{
		RoomID:   room.ID,
		RoomName: room.Name,
		Messages: append([]Message(nil), room.Messages...),
		Users:    h.roomUsersLocked(room),
	}})
	h.gateway.Multicast(h.memberIDsLocked(room, conn.ID), Event{Name: EventUserJoined, Data: UserJoinedPayload{
		UserID:    conn.User.ID,
		UserName:  conn.User.Name,
		UserPhoto: conn.User.Photo,
	}})
	h.broadcastRoomListLocked()
	return nil
}

// SendMessage appends to the room history and room-casts the message to all
// members, the sender included. The client renders its own echo.
func (h *Hub) SendMessage(connID, text string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok {
		return newError(ErrorCodeNotAuthenticated, "User not authenticated")
	}
	if conn.RoomID == "" {
		return newError(ErrorCodeNotInRoom, "User not in a room")
	}
	room, ok := h.rooms[conn.RoomID]
	if !ok {
		return newError(ErrorCodeRoomNotFound, "Room not found")
	}
	if strings.TrimSpace(text) == "" {
		return newError(ErrorCodeValidation, "Message text is required")
	}

	message := Message{
		ID:        h.newID(),
		Text:      text,
		UserID:    conn.User.ID,
		UserName:  conn.User.Name,
		UserPhoto: conn.User.Photo,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}
	room.Messages = append(room.Messages, message)

	h.gateway.Multicast(h.memberIDsLocked(room, ""), Event{Name: EventNewMessage, Data: message})
	return nil
}

// Disconnect removes the connection and its room membership. It is the
// single authoritative removal path and is safe to call for a connection
// that is already gone.
func (h *Hub) Disconnect(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok {
		return
	}

	h.leaveCurrentRoomLocked(conn)
	delete(h.conns, connID)
	h.broadcastRoomListLocked()
}

// ListRooms returns a consistent snapshot of every room, in creation order.
func (h *Hub) ListRooms() []RoomSummary {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.roomListLocked()
}

func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

func (h *Hub) ConnectionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) leaveCurrentRoomLocked(conn *Connection) {
	if conn.RoomID == "" {
		return
	}

	room, ok := h.rooms[conn.RoomID]
	conn.RoomID = ""
	if !ok {
		return
	}

	delete(room.Members, conn.ID)
	h.gateway.Multicast(h.memberIDsLocked(room, ""), Event{Name: EventUserLeft, Data: UserLeftPayload{
		UserID:   conn.User.ID,
		UserName: conn.User.Name,
	}})
}

func (h *Hub) memberIDsLocked(room *Room, except string) []string {
	ids := make([]string, 0, len(room.Members))
	for id := range room.Members {
		if id == except {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (h *Hub) roomUsersLocked(room *Room) []RoomUser {
	users := make([]RoomUser, 0, len(room.Members))
	for id := range room.Members {
		conn, ok := h.conns[id]
		if !ok {
			continue
		}
		users = append(users, RoomUser{
			ID:    conn.User.ID,
			Name:  conn.User.Name,
			Photo: conn.User.Photo,
		})
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users
}

func (h *Hub) roomListLocked() []RoomSummary {
	rooms := make([]*Room, 0, len(h.rooms))
	for _, room := range h.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if !rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
		}
		return rooms[i].ID < rooms[j].ID
	})

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, RoomSummary{
			ID:        room.ID,
			Name:      room.Name,
			UserCount: len(room.Members),
			Users:     h.roomUsersLocked(room),
		})
	}
	return summaries
}

func (h *Hub) broadcastRoomListLocked() {
	h.gateway.Broadcast(Event{Name: EventRoomsUpdated, Data: h.roomListLocked()})
}
