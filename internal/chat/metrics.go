package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	connectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "driftchat_connected_clients",
		Help: "Number of live websocket connections.",
	})

	waitingClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "driftchat_waiting_clients",
		Help: "Depth of the waiting queue.",
	})

	activePairings = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "driftchat_active_pairings",
		Help: "Number of active pairings.",
	})

	pairingsFormed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driftchat_pairings_formed_total",
		Help: "Total pairings formed since start.",
	})

	messagesRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driftchat_messages_relayed_total",
		Help: "Total chat messages relayed between partners.",
	})

	skipsHandled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driftchat_skips_total",
		Help: "Total skip requests handled.",
	})
)
