package service

import (
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vrutsky/netmesh/internal/shutdown"
	"github.com/vrutsky/netmesh/metrics"
	"github.com/vrutsky/netmesh/router"
)

// DefaultDrainRounds bounds how many egress rounds a single worker
// iteration runs before yielding, matching the source's unexplained cap.
// A Manager constructed with rounds<=0 drains to empty instead.
const DefaultDrainRounds = 100

// Manager is the per-router Service Manager: C6 of the design. It owns a
// protocol->Handle table and runs a single background goroutine that
// shuttles packets between registered services and the Datagram Router.
type Manager struct {
	router *router.Router
	sleep  time.Duration
	rounds int
	log    zerolog.Logger

	mu       sync.RWMutex
	services map[uint16]*Handle

	shutdown *shutdown.Token
}

// NewManager spawns a Service Manager atop an already-running router.Router.
// rounds<=0 means drain each egress sweep to empty instead of bounding it.
func NewManager(r *router.Router, sleep time.Duration, rounds int, log zerolog.Logger) *Manager {
	if sleep <= 0 {
		sleep = router.DefaultSleep
	}
	m := &Manager{
		router:   r,
		sleep:    sleep,
		rounds:   rounds,
		log:      log,
		services: make(map[uint16]*Handle),
		shutdown: shutdown.NewToken(),
	}
	go m.run()
	return m
}

// Name delegates to the underlying router.
func (m *Manager) Name() uint32 {
	return m.router.Name()
}

// RegisterService allocates a Handle for protocol. Registering the same
// protocol twice is a programmer error, returned as ErrDuplicateProtocol
// rather than panicking.
func (m *Manager) RegisterService(protocol uint16) (*Handle, error) {
	if m.shutdown.Stopped() {
		return nil, ErrTerminated
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.services[protocol]; exists {
		return nil, ErrDuplicateProtocol
	}
	h := newHandle(protocol, m.router.Name())
	m.services[protocol] = h
	return h, nil
}

// Terminate signals the worker to exit and waits for it to do so. It is
// idempotent.
func (m *Manager) Terminate() {
	m.shutdown.Stop()
	m.shutdown.WaitDone()
}

type protoHandle struct {
	protocol uint16
	handle   *Handle
}

func (m *Manager) snapshot() ([]protoHandle, map[uint16]*Handle) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]protoHandle, 0, len(m.services))
	byProtocol := make(map[uint16]*Handle, len(m.services))
	for protocol, h := range m.services {
		list = append(list, protoHandle{protocol, h})
		byProtocol[protocol] = h
	}
	return list, byProtocol
}

func (m *Manager) run() {
	defer m.shutdown.MarkDone()
	for {
		if m.shutdown.Stopped() {
			return
		}

		list, byProtocol := m.snapshot()

		m.egress(list)
		m.ingress(byProtocol)

		time.Sleep(m.sleep)
	}
}

// egress round-robins each registered service's send queue, popping at
// most one packet per service per round, so one busy service cannot
// starve the others. It stops once a full round yields nothing, and
// additionally caps at m.rounds when that is positive.
func (m *Manager) egress(services []protoHandle) {
	round := 0
	for {
		sentAny := false
		for _, ph := range services {
			p, ok := ph.handle.outgoing.Pop(false)
			if !ok {
				continue
			}
			dg := packetToDatagram(p, ph.protocol)
			if err := m.router.Send(dg); err != nil {
				m.log.Warn().Err(err).Uint16("protocol", ph.protocol).Msg("failed to hand packet to router")
				continue
			}
			metrics.ServicePacketsSent.WithLabelValues(m.routerLabel(), protocolLabel(ph.protocol)).Inc()
			sentAny = true
		}
		if !sentAny {
			return
		}
		round++
		if m.rounds > 0 && round >= m.rounds {
			return
		}
	}
}

// ingress drains every locally-destined datagram the router holds,
// demultiplexing each by protocol tag.
func (m *Manager) ingress(byProtocol map[uint16]*Handle) {
	for {
		from, dg, ok := m.router.Receive(false)
		if !ok {
			return
		}

		p, err := datagramToPacket(dg, from)
		if err != nil {
			m.log.Warn().Err(err).Uint16("protocol", dg.Protocol).Uint32("from", from).Msg("dropping invalid packet")
			metrics.ServicePacketsDropped.WithLabelValues(m.routerLabel(), "invalid").Inc()
			continue
		}

		h, registered := byProtocol[dg.Protocol]
		if !registered {
			m.log.Warn().Uint16("protocol", dg.Protocol).Uint32("from", from).Msg("dropping datagram for unregistered protocol")
			metrics.ServicePacketsDropped.WithLabelValues(m.routerLabel(), "unregistered").Inc()
			continue
		}

		h.incoming.Push(p)
		metrics.ServicePacketsReceived.WithLabelValues(m.routerLabel(), protocolLabel(dg.Protocol)).Inc()
	}
}

func (m *Manager) routerLabel() string {
	return strconv.FormatUint(uint64(m.router.Name()), 10)
}

func protocolLabel(p uint16) string {
	return strconv.FormatUint(uint64(p), 10)
}
