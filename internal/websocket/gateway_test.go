package websocket

import (
	"testing"

	"chat-rooms-backend/internal/hub"
)

func newRegisteredClient(g *ClientGateway, connID string) *WSClient {
	cl := newWSClient(nil, connID)
	g.add(cl)
	return cl
}

func drain(cl *WSClient) []hub.Event {
	var out []hub.Event
	for {
		select {
		case ev := <-cl.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestUnicastReachesOnlyTarget(t *testing.T) {
	g := NewGateway(nil)
	a := newRegisteredClient(g, "a")
	b := newRegisteredClient(g, "b")

	g.Unicast("a", hub.Event{Name: "ping"})

	if got := drain(a); len(got) != 1 || got[0].Name != "ping" {
		t.Fatalf("target missed the event: %+v", got)
	}
	if got := drain(b); len(got) != 0 {
		t.Fatalf("bystander received %+v", got)
	}
}

func TestUnicastUnknownConnectionIsNoop(t *testing.T) {
	g := NewGateway(nil)
	g.Unicast("ghost", hub.Event{Name: "ping"})
}

func TestMulticastPreservesProductionOrder(t *testing.T) {
	g := NewGateway(nil)
	a := newRegisteredClient(g, "a")

	g.Multicast([]string{"a"}, hub.Event{Name: "first"})
	g.Multicast([]string{"a"}, hub.Event{Name: "second"})
	g.Multicast([]string{"a"}, hub.Event{Name: "third"})

	got := drain(a)
	if len(got) != 3 || got[0].Name != "first" || got[1].Name != "second" || got[2].Name != "third" {
		t.Fatalf("delivery order broken: %+v", got)
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	g := NewGateway(nil)
	clients := []*WSClient{
		newRegisteredClient(g, "a"),
		newRegisteredClient(g, "b"),
		newRegisteredClient(g, "c"),
	}

	g.Broadcast(hub.Event{Name: "rooms_updated"})

	for _, cl := range clients {
		if got := drain(cl); len(got) != 1 {
			t.Fatalf("client %s got %d events", cl.connID, len(got))
		}
	}
}

func TestSlowClientIsEvictedNotBlocked(t *testing.T) {
	g := NewGateway(nil)
	slow := newRegisteredClient(g, "slow")

	// Fill the buffer without a write pump draining it.
	for i := 0; i < eventBuffer; i++ {
		g.Unicast("slow", hub.Event{Name: "filler"})
	}

	done := make(chan struct{})
	go func() {
		g.Unicast("slow", hub.Event{Name: "overflow"})
		close(done)
	}()

	select {
	case <-done:
	case <-slow.done:
	}
	// The overflow delivery must not block and must shut the client down.
	<-slow.done

	select {
	case <-done:
	default:
		t.Fatal("delivery blocked on a full client buffer")
	}
}

func TestRemoveShutsClientDown(t *testing.T) {
	g := NewGateway(nil)
	cl := newRegisteredClient(g, "a")

	g.remove("a")

	select {
	case <-cl.done:
	default:
		t.Fatal("removed client was not shut down")
	}

	g.Unicast("a", hub.Event{Name: "ping"})
	if got := drain(cl); len(got) != 0 {
		t.Fatalf("removed client still receiving: %+v", got)
	}

	// Removing twice is fine.
	g.remove("a")
}
