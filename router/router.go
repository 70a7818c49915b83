package router

import (
	"encoding/hex"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vrutsky/netmesh/internal/queue"
	"github.com/vrutsky/netmesh/internal/shutdown"
	"github.com/vrutsky/netmesh/link"
	"github.com/vrutsky/netmesh/metrics"
	"github.com/vrutsky/netmesh/routing"
	"github.com/vrutsky/netmesh/wire"
)

// DefaultSleep is the scheduling quantum the worker sleeps between
// iterations when the caller does not supply one; see spec §6's
// thread_sleep_time.
const DefaultSleep = 10 * time.Millisecond

// Delivered pairs a locally-destined datagram with the neighbor that
// handed it to this router (self, for locally-originated datagrams that
// loop back to their own router).
type Delivered struct {
	From     uint32
	Datagram wire.Datagram
}

// Router is the per-router forwarding worker: C5 of the design. It owns
// its inbound/outbound queues and a swap-on-write routing-table slot, and
// runs a single background goroutine for its lifetime.
type Router struct {
	name        uint32
	linkManager link.Manager
	sleep       time.Duration
	log         zerolog.Logger

	tableMu sync.RWMutex
	table   routing.Table

	outbound *queue.Queue[wire.Datagram]
	inbound  *queue.Queue[Delivered]

	shutdown *shutdown.Token
}

// New allocates a router's queues, spawns its worker, and starts
// forwarding immediately. A nil table defaults to routing.NewLoopback(name).
func New(name uint32, linkManager link.Manager, table routing.Table, sleep time.Duration, log zerolog.Logger) *Router {
	if table == nil {
		table = routing.NewLoopback(name)
	}
	if sleep <= 0 {
		sleep = DefaultSleep
	}
	r := &Router{
		name:        name,
		linkManager: linkManager,
		sleep:       sleep,
		log:         log,
		table:       table,
		outbound:    queue.New[wire.Datagram](),
		inbound:     queue.New[Delivered](),
		shutdown:    shutdown.NewToken(),
	}
	go r.run()
	return r
}

// Name returns this router's immutable identity.
func (r *Router) Name() uint32 {
	return r.name
}

// Send enqueues a locally-originated datagram onto the outbound queue. It
// never blocks.
func (r *Router) Send(dg wire.Datagram) error {
	if r.shutdown.Stopped() {
		return ErrTerminated
	}
	r.outbound.Push(dg)
	return nil
}

// Receive pops the next locally-destined datagram. With block=false it
// returns ok=false immediately if none is queued.
func (r *Router) Receive(block bool) (from uint32, dg wire.Datagram, ok bool) {
	d, ok := r.inbound.Pop(block)
	if !ok {
		return 0, wire.Datagram{}, false
	}
	return d.From, d.Datagram, true
}

// SetRoutingTable atomically replaces the active routing table. Datagrams
// mid-forward may observe either the old or the new table; forwarding is
// stateless per datagram so this is not a correctness issue.
func (r *Router) SetRoutingTable(table routing.Table) {
	r.tableMu.Lock()
	r.table = table
	r.tableMu.Unlock()
}

// Terminate signals the worker to exit and waits for it to do so. It is
// idempotent.
func (r *Router) Terminate() {
	r.shutdown.Stop()
	r.shutdown.WaitDone()
}

func (r *Router) run() {
	defer r.shutdown.MarkDone()
	for {
		if r.shutdown.Stopped() {
			return
		}

		neighbors := r.linkManager.ConnectedLinks()

		r.inboundSweep(neighbors)
		r.outboundSweep(neighbors)

		metrics.RouterInboundQueueDepth.WithLabelValues(r.routerLabel()).Set(float64(r.inbound.Len()))

		time.Sleep(r.sleep)
	}
}

// inboundSweep drains every connected neighbor's link non-blockingly
// before the outbound sweep runs, preserving per-link arrival order.
func (r *Router) inboundSweep(neighbors map[uint32]link.Link) {
	for from, l := range neighbors {
		for {
			frame, ok := l.Receive(false)
			if !ok {
				break
			}
			dg, err := wire.Decode(frame)
			if err != nil {
				r.log.Warn().
					Uint32("neighbor", from).
					Str("frame", hex.EncodeToString(frame)).
					Err(err).
					Msg("dropping malformed datagram")
				metrics.DatagramsDropped.WithLabelValues(r.routerLabel(), "malformed").Inc()
				continue
			}
			r.handle(from, dg, neighbors)
		}
	}
}

// outboundSweep drains the local send queue to empty.
func (r *Router) outboundSweep(neighbors map[uint32]link.Link) {
	for {
		dg, ok := r.outbound.Pop(false)
		if !ok {
			break
		}
		r.handle(r.name, dg, neighbors)
	}
}

func (r *Router) handle(from uint32, dg wire.Datagram, neighbors map[uint32]link.Link) {
	r.tableMu.RLock()
	table := r.table
	next := table.NextHop(dg.Dest)
	r.tableMu.RUnlock()

	if next == r.name {
		r.inbound.Push(Delivered{From: from, Datagram: dg})
		metrics.DatagramsDelivered.WithLabelValues(r.routerLabel()).Inc()
		return
	}

	if l, connected := neighbors[next]; connected {
		dg.Time = nowSeconds()
		if err := l.Send(wire.Encode(dg)); err != nil {
			r.log.Warn().Uint32("next_hop", next).Err(err).Msg("link send failed")
			return
		}
		metrics.DatagramsForwarded.WithLabelValues(r.routerLabel()).Inc()
		return
	}

	r.log.Warn().
		Uint32("from", from).
		Uint32("dest", dg.Dest).
		Uint32("next_hop", next).
		Interface("routing_table", table.Snapshot()).
		Msg("dropping unroutable datagram")
	metrics.DatagramsDropped.WithLabelValues(r.routerLabel(), "unroutable").Inc()
}

func (r *Router) routerLabel() string {
	return uint32ToString(r.name)
}
