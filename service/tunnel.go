package service

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/vrutsky/netmesh/wire"
)

// timestampTrailerLen is the width of the little-endian f64 send-time
// appended to every tunneled packet payload.
const timestampTrailerLen = 8

func nowSeconds() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

// packetToDatagram tunnels p as protocol's payload: data ++ le_f64(p.Time).
func packetToDatagram(p Packet, protocol uint16) wire.Datagram {
	data := make([]byte, len(p.Data)+timestampTrailerLen)
	copy(data, p.Data)
	binary.LittleEndian.PutUint64(data[len(p.Data):], math.Float64bits(p.Time))

	return wire.Datagram{
		Protocol: protocol,
		Src:      p.Src,
		Dest:     p.Dest,
		Time:     nowSeconds(),
		Data:     data,
	}
}

// datagramToPacket reverses packetToDatagram: it requires at least
// timestampTrailerLen payload bytes and sets Packet.Time to the observed
// one-way latency (now - send time).
func datagramToPacket(dg wire.Datagram, deliveredFrom uint32) (Packet, error) {
	if len(dg.Data) < timestampTrailerLen {
		return Packet{}, ErrInvalidPacket
	}
	split := len(dg.Data) - timestampTrailerLen
	sendTime := math.Float64frombits(binary.LittleEndian.Uint64(dg.Data[split:]))

	payload := make([]byte, split)
	copy(payload, dg.Data[:split])

	return Packet{
		Src:           dg.Src,
		Dest:          dg.Dest,
		Data:          payload,
		DeliveredFrom: deliveredFrom,
		Time:          nowSeconds() - sendTime,
	}, nil
}
