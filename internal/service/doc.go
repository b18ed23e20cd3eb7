// Package service holds the application logic between the HTTP surface and
// the engine.
//
// TopologyService loads topologies from the configured source, forwards
// user and status events to the engine, persists the settled layout and
// viewport, and republishes engine frames and notices on the EventBus.
// Handlers talk to the service; nothing outside this package sends events
// to the engine directly.
package service
