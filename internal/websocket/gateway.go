package websocket

import (
	"sync"

	"chat-rooms-backend/internal/hub"
)

// ClientGateway implements hub.Gateway over the registry of live sockets.
// Delivery is a non-blocking channel send: a client whose buffer is full is
// cut loose rather than allowed to stall the room.
type ClientGateway struct {
	mu        sync.RWMutex
	clients   map[string]*WSClient
	publisher *Publisher
}

func NewGateway(publisher *Publisher) *ClientGateway {
	return &ClientGateway{
		clients:   make(map[string]*WSClient),
		publisher: publisher,
	}
}

func (g *ClientGateway) add(cl *WSClient) {
	g.mu.Lock()
	g.clients[cl.connID] = cl
	g.mu.Unlock()
	incConnections()
}

func (g *ClientGateway) remove(connID string) {
	g.mu.Lock()
	cl, ok := g.clients[connID]
	if ok {
		delete(g.clients, connID)
	}
	g.mu.Unlock()

	if ok {
		cl.shutdown()
		decConnections()
	}
}

func (g *ClientGateway) Unicast(connID string, event hub.Event) {
	g.mu.RLock()
	cl := g.clients[connID]
	g.mu.RUnlock()

	if cl != nil {
		g.deliver(cl, event)
	}
}

func (g *ClientGateway) Multicast(connIDs []string, event hub.Event) {
	g.mu.RLock()
	targets := make([]*WSClient, 0, len(connIDs))
	for _, id := range connIDs {
		if cl, ok := g.clients[id]; ok {
			targets = append(targets, cl)
		}
	}
	g.mu.RUnlock()

	for _, cl := range targets {
		g.deliver(cl, event)
	}
	g.publisher.Mirror(event)
}

func (g *ClientGateway) Broadcast(event hub.Event) {
	g.mu.RLock()
	targets := make([]*WSClient, 0, len(g.clients))
	for _, cl := range g.clients {
		targets = append(targets, cl)
	}
	g.mu.RUnlock()

	for _, cl := range targets {
		g.deliver(cl, event)
	}
	g.publisher.Mirror(event)
}

func (g *ClientGateway) deliver(cl *WSClient, event hub.Event) {
	select {
	case cl.events <- event:
	default:
		// Buffer full: the peer stopped draining. Evict it; the read pump
		// notices the shutdown and runs the normal disconnect path.
		addDropped(1)
		cl.shutdown()
	}
}
