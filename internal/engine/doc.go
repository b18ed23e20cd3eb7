// Package engine ties the graph model, force simulation, drag controller,
// viewport and overlay into one value.
//
// The core is pure: State is advanced with Step, changed by Apply/Update
// with an explicit Event, and rendered with Project into an immutable
// Frame. Engine is the runtime that owns a single State on one goroutine,
// interleaving ticks from a timer with events from a queue so that a tick
// never observes a half-applied event.
package engine
