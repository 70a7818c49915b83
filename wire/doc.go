// Package wire defines the router-to-router datagram and its binary
// encoding: a fixed little-endian header, an opaque payload, and a
// trailing CRC-32 over the whole frame.
package wire
