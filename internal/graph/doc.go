// Package graph holds the Graph Model: the nodes and links of one loaded
// topology, stored as an arena indexed by node id.
//
// A Model is built wholesale by Load, which rejects duplicate node ids and
// links whose endpoints do not resolve with a *ValidationError. Lookups miss
// with errors.ErrNotFound. Links are matched in either orientation.
package graph
