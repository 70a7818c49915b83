// Package link specifies the external collaborators the Datagram Router
// borrows on every worker iteration: a per-neighbor byte/frame transport
// (Link) and a registry of currently-connected neighbors (Manager). It
// also ships an in-memory implementation of both, used by the bundled
// tests and the network-topology harness; production deployments are
// expected to supply their own (e.g. backed by the sliding-window framing
// layer below the datagram layer, which is out of scope here).
package link
