// Package domain defines the core types of the topomap network topology engine.
//
// # Core Types
//
// Node is a network element (cell tower, router, switch, server, gateway)
// placed on the diagram. It carries its operational Status, the mutable
// physics state (Position, Velocity) and an optional Pinned position that
// overrides the physics while a user drags it.
//
// Link connects two nodes by id. Links are undirected for layout and
// highlighting; the Source/Target orientation is kept for arrowheads.
//
// Topology is the wire shape supplied by loaders: plain node and link records
// without any physics state.
//
// # Fallback Data
//
// FallbackTopology returns the fixed 9-node sample network used when the
// initial topology load fails, so the engine is never left uninitialized.
//
// # Design Principles
//
// - Links refer to nodes by id, never by pointer
// - No I/O, no logging, no external dependencies
// - Enumerations are typed strings with Valid/Parse helpers
package domain
