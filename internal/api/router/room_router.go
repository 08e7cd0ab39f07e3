package router

import (
	"net/http"

	"chat-rooms-backend/internal/api"
	"chat-rooms-backend/internal/api/endpoints"
	"chat-rooms-backend/internal/api/middleware"
)

func RoomRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		roomEndpoints := endpoints.NewRoomEndpoints(s.Hub(), s.WSHandler())
		mux.HandleFunc(prefix+"/rooms", s.MakeHTTPHandleFunc(roomEndpoints.Rooms, middleware.ValidateUserJWT))
		// Token validation for the websocket happens in the endpoint itself:
		// browsers cannot set headers on the handshake, so the token arrives
		// as a query parameter.
		mux.HandleFunc(prefix+"/ws", s.MakeHTTPHandleFunc(roomEndpoints.Websocket))
	}
}
