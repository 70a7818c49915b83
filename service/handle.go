package service

import "github.com/vrutsky/netmesh/internal/queue"

// Handle is the caller-facing endpoint returned by RegisterService. It
// owns, jointly with the Manager, two unbounded FIFO mailboxes: outgoing
// (producer = caller, consumer = manager) and incoming (producer =
// manager, consumer = caller). No other component retains them.
type Handle struct {
	protocol   uint16
	routerName uint32

	outgoing *queue.Queue[Packet]
	incoming *queue.Queue[Packet]
}

func newHandle(protocol uint16, routerName uint32) *Handle {
	return &Handle{
		protocol:   protocol,
		routerName: routerName,
		outgoing:   queue.New[Packet](),
		incoming:   queue.New[Packet](),
	}
}

// Protocol returns the tag this handle was registered under.
func (h *Handle) Protocol() uint16 {
	return h.protocol
}

// Send enqueues p for delivery by the manager. Time is stamped with the
// current wall-clock time, marking when the packet entered the pipeline;
// it never blocks.
func (h *Handle) Send(p Packet) {
	p.Time = nowSeconds()
	h.outgoing.Push(p)
}

// Receive pops the next packet addressed to this service. With
// block=false it returns ok=false immediately if none is queued.
func (h *Handle) Receive(block bool) (Packet, bool) {
	return h.incoming.Pop(block)
}

// SendData is a convenience wrapper over Send that builds a Packet using
// this handle's own router name as both Src and DeliveredFrom.
func (h *Handle) SendData(dest uint32, data []byte) {
	h.Send(Packet{
		Src:           h.routerName,
		Dest:          dest,
		Data:          data,
		DeliveredFrom: h.routerName,
	})
}

// ReceiveData is a convenience wrapper over Receive that destructures the
// Packet into its source router and payload.
func (h *Handle) ReceiveData(block bool) (src uint32, data []byte, ok bool) {
	p, ok := h.Receive(block)
	if !ok {
		return 0, nil, false
	}
	return p.Src, p.Data, true
}
