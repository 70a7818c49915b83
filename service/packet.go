package service

import "fmt"

// Packet is the unit exchanged between services above the datagram
// layer. Equal ignores Time: on send it carries the wall-clock epoch at
// which the packet entered the pipeline, on receive the same field is
// overwritten with the observed one-way latency in seconds, and neither
// value is part of a packet's identity.
type Packet struct {
	Src           uint32
	Dest          uint32
	Data          []byte
	DeliveredFrom uint32
	Time          float64
}

// Equal compares Src, Dest, Data and DeliveredFrom, ignoring Time.
func (p Packet) Equal(o Packet) bool {
	if p.Src != o.Src || p.Dest != o.Dest || p.DeliveredFrom != o.DeliveredFrom {
		return false
	}
	if len(p.Data) != len(o.Data) {
		return false
	}
	for i := range p.Data {
		if p.Data[i] != o.Data[i] {
			return false
		}
	}
	return true
}

func (p Packet) String() string {
	return fmt.Sprintf("Packet(src=%d, dest=%d, delivered_from=%d, time=%f, %d bytes)",
		p.Src, p.Dest, p.DeliveredFrom, p.Time, len(p.Data))
}
