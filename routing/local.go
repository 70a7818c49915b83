package routing

import "github.com/vrutsky/netmesh/link"

// Local treats every directly-connected neighbor (per the link manager's
// current snapshot) as reachable in one hop, and loops back anything
// destined for the local router itself. It performs no multi-hop route
// discovery: a destination that is neither self nor currently connected
// is passed through unchanged, which the router then drops as
// unroutable. This mirrors the original's LocalRoutingTable, built for
// small, directly-peered topologies in the test suite.
type Local struct {
	self    uint32
	manager link.Manager
}

// NewLocal returns a table for self backed by manager's live neighbor set.
func NewLocal(self uint32, manager link.Manager) *Local {
	return &Local{self: self, manager: manager}
}

func (l *Local) NextHop(dest uint32) uint32 {
	if dest == l.self {
		return l.self
	}
	return dest
}

func (l *Local) Snapshot() any {
	neighbors := make([]uint32, 0)
	for id := range l.manager.ConnectedLinks() {
		neighbors = append(neighbors, id)
	}
	return map[string]any{
		"self":      l.self,
		"neighbors": neighbors,
	}
}
