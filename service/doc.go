// Package service implements the Service Manager: a per-router
// multiplexer that demultiplexes inbound datagrams by protocol tag into
// per-service mailboxes, and funnels service-originated packets down into
// the Datagram Router, attaching and stripping the per-hop latency
// timestamp.
package service
