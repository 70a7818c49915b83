package routing

// Loopback resolves every destination to the local router. It is the Go
// counterpart of the original's loopback_routing_table: useful as the
// default table for a router with no neighbors yet, or for isolated
// single-router tests.
type Loopback struct {
	self uint32
}

// NewLoopback returns a table that forwards everything to self.
func NewLoopback(self uint32) *Loopback {
	return &Loopback{self: self}
}

func (l *Loopback) NextHop(uint32) uint32 {
	return l.self
}

func (l *Loopback) Snapshot() any {
	return map[string]uint32{"loopback": l.self}
}
