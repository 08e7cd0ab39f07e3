package router

import (
	"net/http"

	"chat-rooms-backend/internal/api"
	"chat-rooms-backend/internal/api/endpoints"
	"chat-rooms-backend/internal/api/middleware"
)

func AuthRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		authEndpoints := endpoints.NewAuthEndpoints()
		mux.HandleFunc(prefix+"/auth/login", s.MakeHTTPHandleFunc(authEndpoints.Login))
		mux.HandleFunc(prefix+"/auth/verify", s.MakeHTTPHandleFunc(authEndpoints.Verify, middleware.ValidateUserJWT))
		mux.HandleFunc(prefix+"/auth/profile", s.MakeHTTPHandleFunc(authEndpoints.Profile, middleware.ValidateUserJWT))
	}
}
