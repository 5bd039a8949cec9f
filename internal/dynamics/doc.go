// Package dynamics provides discrete-time multi-player linear systems and
// trajectory rollout.
//
// Single-player building blocks ([SingleIntegrator1D], [DoubleIntegrator1D],
// [DoubleIntegrator2D]) are stacked with [Concatenate] into one joint system
// whose state is the concatenation of the players' sub-states. [Rollout]
// applies solved strategies to reconstruct a trajectory.
package dynamics
