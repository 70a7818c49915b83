// Package routing specifies the next-hop lookup the Datagram Router
// consults on every datagram, plus the two implementations the original
// test suite exercises: a loopback table (everything resolves to the
// local router) and a local table (the local router's own name loops
// back, every other destination is its own next hop, so only neighbors
// connected via the link manager are reachable). Production
// topologies are expected to supply their own Table and swap it in at
// runtime with router.Router.SetRoutingTable.
package routing
