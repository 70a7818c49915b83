package link

// Link is a bidirectional frame transport between exactly two routers.
// Send never blocks the caller; Receive with block=false returns
// immediately when no frame is queued.
type Link interface {
	Send(frame []byte) error
	Receive(block bool) (frame []byte, ok bool)
}

// Manager is a snapshot-on-demand registry of currently-connected
// neighbors. The core never caches the returned map across worker
// iterations, and treats the Link values as shared read-only references
// valid only for the duration of one iteration.
type Manager interface {
	// ConnectedLinks returns neighbor-id -> Link for every neighbor
	// currently reachable. The core treats the result as an independent
	// snapshot; mutating it does not affect the Manager.
	ConnectedLinks() map[uint32]Link
}
