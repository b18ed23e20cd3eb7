// Package layout is the force simulation that positions topology nodes.
//
// Each tick sums the contributions of an ordered list of forces into node
// velocities (link springs, many-body repulsion, centering), integrates
// velocity and position with friction, runs the collision constraint as a
// corrective pass and finally decays alpha. Ticking stops once alpha drops
// below AlphaMin. Pinned nodes are held at their pinned position every tick
// but still exert force on the others.
//
// The simulation is deterministic: zero-distance degeneracies are broken
// with a seeded linear congruential jitter carried in the State value, so
// two runs from the same inputs produce identical layouts.
package layout
