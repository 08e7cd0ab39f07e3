package websocket

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	wsConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_rooms_ws_connections",
			Help: "Current number of active websocket connections.",
		},
	)
	wsEventsDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_rooms_ws_events_delivered_total",
			Help: "Total events written to websocket clients.",
		},
	)
	wsEventsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_rooms_ws_events_dropped_total",
			Help: "Events dropped because a client stopped draining its buffer.",
		},
	)
)

var roomsGaugeOnce sync.Once

func init() {
	prometheus.MustRegister(wsConnections, wsEventsDelivered, wsEventsDropped)
}

func registerRoomsGauge(count func() int) {
	roomsGaugeOnce.Do(func() {
		prometheus.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "chat_rooms_ws_rooms",
				Help: "Current number of chat rooms.",
			},
			func() float64 {
				return float64(count())
			},
		))
	})
}

func incConnections() {
	wsConnections.Inc()
}

func decConnections() {
	wsConnections.Dec()
}

func addDelivered(count int) {
	wsEventsDelivered.Add(float64(count))
}

func addDropped(count int) {
	wsEventsDropped.Add(float64(count))
}
