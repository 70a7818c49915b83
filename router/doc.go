// Package router implements the Datagram Router: a per-router worker that
// serializes outbound datagrams onto the wire format, validates inbound
// frames (including CRC), and forwards by routing-table lookup until a
// datagram reaches its destination or is dropped as unreachable.
package router
