package wire

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
)

// FixedOverhead is the number of bytes an encoded Datagram carries besides
// its payload: protocol(2) + src(4) + dest(4) + time(8) + len(4) + crc(4).
const FixedOverhead = 2 + 4 + 4 + 8 + 4 + 4

const headerLen = FixedOverhead - 4 // everything before the payload

// Datagram is the unit exchanged between routers. Time is refreshed on
// every hop and is excluded from Equal, since a timestamp is not part of
// a datagram's identity.
type Datagram struct {
	Protocol uint16
	Src      uint32
	Dest     uint32
	Time     float64
	Data     []byte
}

// Equal compares two datagrams ignoring Time.
func (d Datagram) Equal(o Datagram) bool {
	if d.Protocol != o.Protocol || d.Src != o.Src || d.Dest != o.Dest {
		return false
	}
	if len(d.Data) != len(o.Data) {
		return false
	}
	for i := range d.Data {
		if d.Data[i] != o.Data[i] {
			return false
		}
	}
	return true
}

func (d Datagram) String() string {
	return fmt.Sprintf("Datagram(protocol=%d, src=%d, dest=%d, time=%f, %d bytes)",
		d.Protocol, d.Src, d.Dest, d.Time, len(d.Data))
}

// MalformedError reports why Decode rejected a buffer. It always carries
// enough detail to reproduce the failure without re-hexdumping the frame;
// the caller (the router's inbound sweep) is responsible for logging the
// payload itself.
type MalformedError struct {
	Reason   string
	Observed uint32
	Expected uint32
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed datagram: %s (observed=%d, expected=%d)", e.Reason, e.Observed, e.Expected)
}

// Is lets callers match with errors.Is(err, wire.ErrMalformed).
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

// ErrMalformed is the sentinel all MalformedError values satisfy errors.Is against.
var ErrMalformed = fmt.Errorf("malformed datagram")

// Encode serializes d into the canonical wire format: it writes the fixed
// header and payload with crc=0, computes CRC-32 (IEEE 802.3 polynomial)
// over the whole buffer, then overwrites the trailing four bytes with it.
func Encode(d Datagram) []byte {
	buf := make([]byte, headerLen+len(d.Data)+4)
	binary.LittleEndian.PutUint16(buf[0:2], d.Protocol)
	binary.LittleEndian.PutUint32(buf[2:6], d.Src)
	binary.LittleEndian.PutUint32(buf[6:10], d.Dest)
	binary.LittleEndian.PutUint64(buf[10:18], math.Float64bits(d.Time))
	binary.LittleEndian.PutUint32(buf[18:22], uint32(len(d.Data)))
	copy(buf[22:22+len(d.Data)], d.Data)
	// trailing 4 bytes are already zero; compute CRC over the full buffer
	crc := crc32.ChecksumIEEE(buf)
	binary.LittleEndian.PutUint32(buf[len(buf)-4:], crc)
	return buf
}

// Decode parses a wire frame into a Datagram. It fails with a
// *MalformedError when the buffer is shorter than FixedOverhead, the
// embedded length disagrees with the actual payload length, or the
// trailing CRC-32 does not match one recomputed with the CRC field
// zeroed.
func Decode(buf []byte) (Datagram, error) {
	if len(buf) < FixedOverhead {
		return Datagram{}, &MalformedError{
			Reason:   "buffer shorter than fixed header",
			Observed: uint32(len(buf)),
			Expected: FixedOverhead,
		}
	}

	dataLen := len(buf) - FixedOverhead
	declaredLen := binary.LittleEndian.Uint32(buf[18:22])
	if int(declaredLen) != dataLen {
		return Datagram{}, &MalformedError{
			Reason:   "embedded length disagrees with buffer size",
			Observed: declaredLen,
			Expected: uint32(dataLen),
		}
	}

	gotCRC := binary.LittleEndian.Uint32(buf[len(buf)-4:])

	zeroed := make([]byte, len(buf))
	copy(zeroed, buf)
	zeroed[len(zeroed)-4] = 0
	zeroed[len(zeroed)-3] = 0
	zeroed[len(zeroed)-2] = 0
	zeroed[len(zeroed)-1] = 0
	wantCRC := crc32.ChecksumIEEE(zeroed)

	if gotCRC != wantCRC {
		return Datagram{}, &MalformedError{
			Reason:   "CRC-32 mismatch",
			Observed: gotCRC,
			Expected: wantCRC,
		}
	}

	data := make([]byte, dataLen)
	copy(data, buf[22:22+dataLen])

	return Datagram{
		Protocol: binary.LittleEndian.Uint16(buf[0:2]),
		Src:      binary.LittleEndian.Uint32(buf[2:6]),
		Dest:     binary.LittleEndian.Uint32(buf[6:10]),
		Time:     math.Float64frombits(binary.LittleEndian.Uint64(buf[10:18])),
		Data:     data,
	}, nil
}
