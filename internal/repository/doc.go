// Package repository defines the persistence interface for layout state.
//
// Topology data itself is never stored: it always comes from the loader.
// What is stored is presentation state that should survive a restart:
//
// - the last settled position of each node, used as a warm start when a
//   topology with the same node ids is loaded again
// - the viewport transform
//
// The sqlite subpackage implements Repository on an embedded SQLite file
// with WAL mode. Tests use in-memory databases.
package repository
