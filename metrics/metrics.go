// Package metrics exposes the prometheus counters and gauges the router
// and service manager update as they forward, drop, and multiplex
// traffic. It is the same Namespace/MustRegister-in-init shape
// cloudflared's metrics package uses for its UDP session counters,
// generalized from one counter pair to the router's full drop/forward
// taxonomy.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "netmesh"

var (
	DatagramsForwarded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "router",
		Name:      "datagrams_forwarded_total",
		Help:      "Datagrams forwarded to a next-hop neighbor, by router name.",
	}, []string{"router"})

	DatagramsDelivered = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "router",
		Name:      "datagrams_delivered_total",
		Help:      "Datagrams that reached their destination router locally.",
	}, []string{"router"})

	DatagramsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "router",
		Name:      "datagrams_dropped_total",
		Help:      "Datagrams dropped, labeled by reason (malformed, unroutable).",
	}, []string{"router", "reason"})

	RouterInboundQueueDepth = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "router",
		Name:      "inbound_queue_depth",
		Help:      "Datagrams currently queued for local delivery, by router name.",
	}, []string{"router"})

	ServicePacketsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "service",
		Name:      "packets_sent_total",
		Help:      "Packets handed from a service to the router, by protocol.",
	}, []string{"router", "protocol"})

	ServicePacketsReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "service",
		Name:      "packets_received_total",
		Help:      "Packets demultiplexed to a registered service, by protocol.",
	}, []string{"router", "protocol"})

	ServicePacketsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "service",
		Name:      "packets_dropped_total",
		Help:      "Packets dropped at the service layer, labeled by reason (invalid, unregistered).",
	}, []string{"router", "reason"})
)

func init() {
	prometheus.MustRegister(
		DatagramsForwarded,
		DatagramsDelivered,
		DatagramsDropped,
		RouterInboundQueueDepth,
		ServicePacketsSent,
		ServicePacketsReceived,
		ServicePacketsDropped,
	)
}
