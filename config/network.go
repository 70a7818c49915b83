package config

import "github.com/vrutsky/netmesh/link"

// BuildNetwork wires an in-memory link.MemoryManager per router named in
// t.Routers and connects every LinkSpec with a MemoryLink duplex pair.
// It is a convenience for tests and local experimentation, not a
// substitute for a production link manager.
func BuildNetwork(t Topology) map[uint32]*link.MemoryManager {
	managers := make(map[uint32]*link.MemoryManager, len(t.Routers))
	for _, name := range t.Routers {
		managers[name] = link.NewMemoryManager()
	}

	for _, spec := range t.Links {
		a, aOK := managers[spec.A]
		b, bOK := managers[spec.B]
		if !aOK || !bOK {
			continue
		}
		linkA, linkB := link.NewDuplex()
		a.AddLink(spec.B, linkA)
		b.AddLink(spec.A, linkB)
	}

	return managers
}
