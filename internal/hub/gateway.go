package hub

// Gateway delivers events produced by the hub. The hub computes the target
// set under its own lock and hands explicit connection ids; implementations
// must never block the caller on a slow consumer.
type Gateway interface {
	// Unicast delivers to exactly one connection.
	Unicast(connID string, event Event)
	// Multicast delivers to the listed connections.
	Multicast(connIDs []string, event Event)
	// Broadcast delivers to every connected session.
	Broadcast(event Event)
}

// NopGateway discards everything. Used when wiring a hub that has no
// transport yet.
type NopGateway struct{}

func (NopGateway) Unicast(string, Event)     {}
func (NopGateway) Multicast([]string, Event) {}
func (NopGateway) Broadcast(Event)           {}
