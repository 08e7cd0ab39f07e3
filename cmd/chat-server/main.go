package main

import (
	"context"
	"log"

	"chat-rooms-backend/internal/api"
	"chat-rooms-backend/internal/api/router"
	"chat-rooms-backend/internal/env"
	"chat-rooms-backend/internal/hub"
	"chat-rooms-backend/internal/queue"
	"chat-rooms-backend/internal/websocket"
)

func main() {
	if err := env.Validate(); err != nil {
		log.Fatalf("config check failed: %v", err)
	}

	queueManager := queue.NewRequestQueueManager(10, 10)

	redisClient := websocket.NewRedisClient()
	publisher := websocket.NewPublisher(redisClient, "chat.events")
	gateway := websocket.NewGateway(publisher)
	chatHub := hub.New(gateway)
	wsHandler := websocket.NewHandler(chatHub, gateway, redisClient)

	go wsHandler.RunAnnouncements(context.Background())

	server := api.NewAPIServer(
		env.GetOrDefault(env.ListenAddr, ":3001"),
		queueManager,
		chatHub,
		wsHandler,
		router.UtilsRoutes("/api/v1"),
		router.AuthRoutes("/api/v1"),
		router.RoomRoutes("/api/v1"),
	)

	server.Run()
}
