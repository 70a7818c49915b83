// Package netmesh_test exercises a multi-router topology end to end,
// using config.BuildNetwork to wire an in-memory network and
// golang.org/x/sync/errgroup to drive several concurrent conversations
// the way datagramsession's manager tests drive concurrent sessions.
package netmesh_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/vrutsky/netmesh/config"
	"github.com/vrutsky/netmesh/router"
	"github.com/vrutsky/netmesh/routing"
	"github.com/vrutsky/netmesh/service"
)

const testSleep = time.Millisecond

func waitForData(t *testing.T, h *service.Handle) (uint32, []byte) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if src, data, ok := h.ReceiveData(false); ok {
			return src, data
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for packet")
		case <-time.After(testSleep):
		}
	}
}

// TestThreeRouterMeshConcurrentServices builds a fully-meshed 3-router
// topology from a declarative Topology (routing.Local only resolves
// directly-connected neighbors, so every pair that exchanges traffic
// needs its own link) and drives three independent protocols
// concurrently end to end, asserting FIFO delivery and service isolation
// hold across the whole topology at once.
func TestThreeRouterMeshConcurrentServices(t *testing.T) {
	topo := config.Topology{
		ThreadSleepTime: 0.001,
		Routers:         []uint32{1, 2, 3},
		Links: []config.LinkSpec{
			{A: 1, B: 2},
			{A: 2, B: 3},
			{A: 1, B: 3},
		},
	}
	managers := config.BuildNetwork(topo)
	sleep := topo.SleepDuration()
	log := zerolog.Nop()

	routers := make(map[uint32]*router.Router, len(managers))
	for name, lm := range managers {
		routers[name] = router.New(name, lm, routing.NewLocal(name, lm), sleep, log)
	}

	services := make(map[uint32]*service.Manager, len(routers))
	for name, r := range routers {
		services[name] = service.NewManager(r, sleep, service.DefaultDrainRounds, log)
	}
	t.Cleanup(func() {
		for _, m := range services {
			m.Terminate()
		}
		for _, r := range routers {
			r.Terminate()
		}
	})

	protocols := []uint16{100, 200, 300}
	handles := make(map[uint16]map[uint32]*service.Handle, len(protocols))
	for _, p := range protocols {
		handles[p] = make(map[uint32]*service.Handle)
		for name, m := range services {
			h, err := m.RegisterService(p)
			require.NoError(t, err)
			handles[p][name] = h
		}
	}

	var g errgroup.Group
	for _, p := range protocols {
		p := p
		g.Go(func() error {
			sender := handles[p][1]
			receiver := handles[p][3]
			for i := 0; i < 4; i++ {
				sender.SendData(3, []byte{byte(p), byte(i)})
			}
			for i := 0; i < 4; i++ {
				_, data := waitForData(t, receiver)
				require.Equal(t, []byte{byte(p), byte(i)}, data, "protocol %d packet %d out of order", p, i)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// cross-protocol isolation: every router registered every protocol,
	// and no protocol's traffic leaks into another's mailbox at router 3.
	for _, p := range protocols {
		_, _, ok := handles[p][3].ReceiveData(false)
		require.False(t, ok, "protocol %d receiver should have no leftover backlog", p)
	}
}
