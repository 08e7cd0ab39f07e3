package websocket

import (
	"context"
	"encoding/json"
	"log"

	"chat-rooms-backend/internal/hub"

	"github.com/go-redis/redis/v8"
)

// Publisher mirrors room-cast and broadcast events onto a Redis channel so
// external consumers (ops tooling, analytics) can tail the event stream.
// Mirroring is best effort: events are queued to a background worker and
// dropped when the queue is full, so the hub never waits on Redis.
type Publisher struct {
	client  *redis.Client
	channel string
	queue   chan hub.Event
}

func NewPublisher(client *redis.Client, channel string) *Publisher {
	p := &Publisher{
		client:  client,
		channel: channel,
	}
	if client != nil {
		p.queue = make(chan hub.Event, 256)
		go p.run()
	}
	return p
}

func (p *Publisher) Mirror(event hub.Event) {
	if p == nil || p.queue == nil {
		return
	}
	select {
	case p.queue <- event:
	default:
		log.Printf("event mirror: queue full, dropping %s", event.Name)
	}
}

func (p *Publisher) run() {
	for event := range p.queue {
		payload, err := json.Marshal(event)
		if err != nil {
			log.Printf("event mirror: marshal %s: %v", event.Name, err)
			continue
		}
		if err := p.client.Publish(context.Background(), p.channel, payload).Err(); err != nil {
			log.Printf("event mirror: publish %s: %v", event.Name, err)
		}
	}
}
