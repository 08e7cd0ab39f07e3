package endpoints

import (
	"net/http"

	"chat-rooms-backend/internal/hub"
	internaljwt "chat-rooms-backend/internal/jwt"
	"chat-rooms-backend/internal/websocket"
)

type RoomEndpoints interface {
	Rooms(http.ResponseWriter, *http.Request) error
	Websocket(http.ResponseWriter, *http.Request) error
}

type roomEndpoints struct {
	hub       *hub.Hub
	wsHandler *websocket.Handler
}

func NewRoomEndpoints(h *hub.Hub, wsHandler *websocket.Handler) RoomEndpoints {
	return &roomEndpoints{
		hub:       h,
		wsHandler: wsHandler,
	}
}

func (h *roomEndpoints) Rooms(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleListRooms,
	})
}

func (h *roomEndpoints) handleListRooms(w http.ResponseWriter, r *http.Request) error {
	return WriteJSON(w, http.StatusOK, h.hub.ListRooms())
}

// Websocket is the session bind point: a connection without a valid token is
// refused here, before any hub state exists for it.
func (h *roomEndpoints) Websocket(w http.ResponseWriter, r *http.Request) error {
	user, err := internaljwt.VerifyUser(ExtractToken(r))
	if err != nil {
		return unauthorizedError(err)
	}

	return h.wsHandler.Connect(w, r, hub.User{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Photo: user.Photo,
	})
}
