package link

import "github.com/vrutsky/netmesh/internal/queue"

// MemoryLink is an in-process, in-memory Link backed by an unbounded
// frame queue. It is the Go counterpart of the original test suite's
// FullDuplexLink/SimpleFrameTransmitter pair: two MemoryLink values
// returned by NewDuplex feed each other directly, with no framing,
// loss, or reordering — link-level impairment is the framing layer's
// job, not the core's.
type MemoryLink struct {
	out *queue.Queue[[]byte]
	in  *queue.Queue[[]byte]
}

// NewDuplex returns a connected pair of MemoryLinks: frames sent on a
// are observed by Receive on b, and vice versa.
func NewDuplex() (a, b *MemoryLink) {
	ab := queue.New[[]byte]()
	ba := queue.New[[]byte]()
	a = &MemoryLink{out: ab, in: ba}
	b = &MemoryLink{out: ba, in: ab}
	return a, b
}

func (l *MemoryLink) Send(frame []byte) error {
	cp := make([]byte, len(frame))
	copy(cp, frame)
	l.out.Push(cp)
	return nil
}

func (l *MemoryLink) Receive(block bool) ([]byte, bool) {
	return l.in.Pop(block)
}

// InjectRaw pushes frame directly into this link's receive side,
// bypassing Send on the peer. Used to simulate a corrupted frame
// arriving on an otherwise healthy link (spec scenario S6).
func (l *MemoryLink) InjectRaw(frame []byte) {
	l.in.Push(frame)
}

// MemoryManager is a mutable, thread-unsafe-by-design registry of connected
// links meant for single-goroutine test setup before a Router starts its
// worker; callers that mutate it concurrently with a running Router must
// guard it themselves, as the original RouterLinkManager does not.
type MemoryManager struct {
	links map[uint32]Link
}

// NewMemoryManager returns a manager with no connected neighbors.
func NewMemoryManager() *MemoryManager {
	return &MemoryManager{links: make(map[uint32]Link)}
}

// AddLink registers neighbor as reachable via l.
func (m *MemoryManager) AddLink(neighbor uint32, l Link) {
	m.links[neighbor] = l
}

// RemoveLink drops neighbor from the registry, simulating a link going down.
func (m *MemoryManager) RemoveLink(neighbor uint32) {
	delete(m.links, neighbor)
}

func (m *MemoryManager) ConnectedLinks() map[uint32]Link {
	snapshot := make(map[uint32]Link, len(m.links))
	for id, l := range m.links {
		snapshot[id] = l
	}
	return snapshot
}
